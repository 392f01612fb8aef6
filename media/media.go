// Package media is the Media Store: it hosts uploaded images and hands back a
// stable public URL.
package media

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	PostFolder = "blog_posts"
	UserFolder = "blog_users"
)

var ErrEmptyFile = errors.New("empty file")

// File is an uploaded image held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Store interface {
	// Upload stores f under folder and returns its public URL.
	Upload(ctx context.Context, folder string, f File) (string, error)
	// Delete removes the object that url points at inside folder.
	Delete(ctx context.Context, folder, url string) error
}

// newObjectName returns a collision-free name that keeps the upload's extension.
func newObjectName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}

// KeyFromURL derives the object key of url inside folder: the last path
// segment of the URL, prefixed by folder.
func KeyFromURL(folder, url string) (string, bool) {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	name := path.Base(url)
	if name == "" || name == "." || name == "/" {
		return "", false
	}
	return folder + "/" + name, true
}
