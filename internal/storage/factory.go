package storage

import (
	"context"
	"fmt"

	cfgpkg "github.com/ryo-aien/recruiting-screening-assistant/internal/config"
)

// New builds the Store selected by cfg.Backend.
func New(ctx context.Context, cfg cfgpkg.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.File.BasePath)
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
