package storage

import (
	"context"

	getter "github.com/hashicorp/go-getter"
)

// FetchFunc downloads the single file at src to dst.
type FetchFunc func(ctx context.Context, dst, src string) error

// Fetch downloads a seed base list from any go-getter source (http, s3,
// gcs, git::, local paths, ...).
func Fetch(ctx context.Context, dst, src string) error {
	return getter.GetFile(dst, src, getter.WithContext(ctx))
}
