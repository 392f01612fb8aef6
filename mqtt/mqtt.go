// mqtt.go - MQTT client used to publish blog events

package mqtt // Declares the package name

import ( // Import required packages
	"encoding/json" // Event payloads are JSON
	"fmt"
	"time"

	"go-blog-backend/logger" // Leveled logging

	paho "github.com/eclipse/paho.mqtt.golang" // MQTT client library
)

// Topics the backend publishes on.
const (
	TopicPostCreated    = "blog/posts/created"
	TopicPostDeleted    = "blog/posts/deleted"
	TopicCommentCreated = "blog/comments/created"
	TopicUserRegistered = "blog/users/registered"
)

const publishTimeout = 5 * time.Second

// Publisher sends an event payload to a topic.
type Publisher interface {
	Publish(topic string, payload any) error
}

// Client is a Publisher backed by a broker connection.
type Client struct {
	client paho.Client
}

// Connect dials broker and returns a connected Client.
func Connect(broker, clientID string) (*Client, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			logger.Warningf("mqtt connection lost: %v", err)
		}).
		SetOnConnectHandler(func(_ paho.Client) {
			logger.Infof("mqtt connected to %s", broker)
		})

	return connect(paho.NewClient(opts), broker, publishTimeout)
}

// connect waits for the first connection. On failure the client is shut down
// so its retry loop does not outlive the call.
func connect(c paho.Client, broker string, timeout time.Duration) (*Client, error) {
	token := c.Connect()
	if !token.WaitTimeout(timeout) {
		c.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		c.Disconnect(0)
		return nil, err
	}
	return &Client{client: c}, nil
}

// Publish encodes payload as JSON (strings and byte slices go out as-is) and
// sends it with QoS 0.
func (c *Client) Publish(topic string, payload any) error {
	var body []byte
	switch p := payload.(type) {
	case string:
		body = []byte(p)
	case []byte:
		body = p
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		body = b
	}

	token := c.client.Publish(topic, 0, false, body)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt publish to %s timed out", topic)
	}
	return token.Error()
}

// Disconnect closes the broker connection, waiting up to 250ms for in-flight work.
func (c *Client) Disconnect() {
	c.client.Disconnect(250)
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(string, any) error { return nil }
