package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// NewStorageClient creates the single long-lived Cloud Storage client shared
// by the asset store. It is safe for concurrent use by independent requests.
func NewStorageClient(ctx context.Context) (*storage.Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Storage client: %w", err)
	}
	return client, nil
}
