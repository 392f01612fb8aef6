// main.go - Entry point for the blog backend server

package main // Declares the package name

import ( // Import required packages
	"context" // Bucket setup on startup
	"fmt"     // Error wrapping
	"os"      // Exit status
	"time"    // Token lifetime

	"go-blog-backend/auth"       // Bearer tokens
	"go-blog-backend/config"     // Project config management
	"go-blog-backend/database"   // Database connection and setup
	"go-blog-backend/handlers"   // HTTP handlers for API endpoints
	"go-blog-backend/logger"     // Leveled logging
	"go-blog-backend/media"      // Image storage
	"go-blog-backend/metrics"    // Prometheus collectors
	"go-blog-backend/middleware" // Identity, request logging
	"go-blog-backend/mqtt"       // Event publishing
	"go-blog-backend/repository" // Persistence
	"go-blog-backend/service"    // Blog workflows

	"github.com/gin-contrib/gzip"                             // Response compression
	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // /metrics handler
)

func main() { // Main function, program entry point
	cfg := config.Load()
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel), cfg.LogDir)

	err := run(cfg)
	if err != nil {
		logger.Error(err)
	}
	logger.CloseLogger()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// STEP 1: Establish connections
	if err := database.Connect(cfg); err != nil { // Connect to the database
		return fmt.Errorf("DB connection error: %w", err)
	}

	store, err := newMediaStore(cfg)
	if err != nil {
		return fmt.Errorf("media store error: %w", err)
	}

	var events mqtt.Publisher = mqtt.Nop{}
	if cfg.MQTTBroker != "" {
		client, err := mqtt.Connect(cfg.MQTTBroker, cfg.MQTTClientID)
		if err != nil { // Events are best effort; keep serving without them
			logger.Warning("MQTT connection error, events disabled: ", err)
		} else {
			defer client.Disconnect()
			events = client
		}
	}

	// STEP 2: Wire repositories, services and routes
	tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	users := repository.NewUserRepository(database.DB)
	posts := repository.NewPostRepository(database.DB)
	likes := repository.NewLikeRepository(database.DB)
	comments := repository.NewCommentRepository(database.DB)

	h := &handlers.Handler{
		Users:        service.NewUserService(users, store, tokens, events),
		Posts:        service.NewPostService(users, posts, store, events),
		Likes:        service.NewLikeService(users, posts, likes),
		Comments:     service.NewCommentService(users, posts, comments, events),
		UserRepo:     users,
		AuthRequired: cfg.AuthRequired,
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	if local, ok := store.(*media.LocalStore); ok {
		r.Static("/uploads", local.Dir()) // Serve locally stored images
	}
	r.Use(middleware.Identity(tokens))
	h.RegisterRoutes(r)

	// STEP 3: Start the web server
	logger.Infof("blog backend listening on %s", cfg.Port)
	return r.Run(cfg.Port)
}

// newMediaStore picks the image backend named by MEDIA_DRIVER.
func newMediaStore(cfg *config.Config) (media.Store, error) {
	if cfg.MediaDriver != "minio" {
		return media.NewLocalStore(cfg.MediaDir, cfg.MediaBaseURL)
	}

	store, err := media.NewMinioStore(media.MinioConfig{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Bucket:    cfg.S3Bucket,
	})
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
