package media

import (
	"bytes"
	"context"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// PublicURL overrides the URL prefix handed out for stored objects.
	// Defaults to <scheme>://<endpoint>/<bucket>.
	PublicURL string
}

// MinioStore keeps images in an S3-compatible bucket.
type MinioStore struct {
	cfg     MinioConfig
	client  *minio.Client
	baseURL string
}

func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	cl, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	baseURL := cfg.PublicURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = scheme + "://" + endpoint + "/" + cfg.Bucket
	}
	return &MinioStore{cfg: cfg, client: cl, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// EnsureBucket creates the bucket on first start.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *MinioStore) Upload(ctx context.Context, folder string, f File) (string, error) {
	if len(f.Data) == 0 {
		return "", ErrEmptyFile
	}
	key := folder + "/" + newObjectName(f.Name)
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key,
		bytes.NewReader(f.Data), int64(len(f.Data)),
		minio.PutObjectOptions{ContentType: f.ContentType})
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

func (s *MinioStore) Delete(ctx context.Context, folder, url string) error {
	key, ok := KeyFromURL(folder, url)
	if !ok {
		return nil
	}
	return s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{})
}
