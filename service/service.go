// Package service holds the blog workflows. Services validate their inputs
// against the Entity Store at call time and report failures as *apperrors.Error.
package service

import (
	"context"

	"go-blog-backend/logger"
	"go-blog-backend/media"
	"go-blog-backend/mqtt"
)

// publish sends an event and only logs a failure; events never fail a request.
func publish(p mqtt.Publisher, topic string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(topic, payload); err != nil {
		logger.Warningf("publish %s: %v", topic, err)
	}
}

// removeImage deletes a hosted image, logging instead of failing.
func removeImage(ctx context.Context, store media.Store, folder string, url *string) {
	if url == nil || *url == "" {
		return
	}
	if err := store.Delete(ctx, folder, *url); err != nil {
		logger.Warningf("delete image %s: %v", *url, err)
	}
}
