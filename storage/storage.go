package storage

import (
	"context"
	"errors"
	"io"
)

// BlobStore keeps uploaded images outside the relational store.
type BlobStore interface {
	Store(ctx context.Context, filename string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

var ErrNotConfigured = errors.New("blob storage is not configured")

// Disabled rejects every operation. It stands in when no bucket is configured
// so the rest of the API keeps working.
type Disabled struct{}

func (Disabled) Store(context.Context, string, io.Reader, string) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) Delete(context.Context, string) error {
	return ErrNotConfigured
}

// Upload is an image received from a client, ready to hand to a BlobStore.
type Upload struct {
	Filename    string
	Body        io.Reader
	ContentType string
}
