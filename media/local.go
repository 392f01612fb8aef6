package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes uploads below a directory that the HTTP server exposes
// under baseURL.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Upload(ctx context.Context, folder string, f File) (string, error) {
	if len(f.Data) == 0 {
		return "", ErrEmptyFile
	}
	if err := os.MkdirAll(filepath.Join(s.dir, folder), 0o755); err != nil {
		return "", err
	}
	key := folder + "/" + newObjectName(f.Name)
	if err := os.WriteFile(filepath.Join(s.dir, filepath.FromSlash(key)), f.Data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

func (s *LocalStore) Delete(ctx context.Context, folder, url string) error {
	key, ok := KeyFromURL(folder, url)
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
