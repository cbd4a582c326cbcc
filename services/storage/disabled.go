package storage

import (
	"context"
	"errors"
	"io"
)

// ErrStoreDisabled is returned by the disabled store. Handlers surface
// it as a 500 like any other store failure.
var ErrStoreDisabled = errors.New("file store is not configured")

// DisabledStore stands in when Spaces credentials are absent, so the
// API can run without a file store. Every upload fails cleanly.
type DisabledStore struct{}

func NewDisabledStore() *DisabledStore {
	return &DisabledStore{}
}

func (*DisabledStore) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	return "", ErrStoreDisabled
}

func (*DisabledStore) Delete(ctx context.Context, key string) error {
	return ErrStoreDisabled
}

func (*DisabledStore) URL(key string) string {
	return ""
}
