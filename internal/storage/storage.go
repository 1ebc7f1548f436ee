// Package storage keeps uploaded case documents in a blob store. The
// database only records the returned location.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aldoetobex/legal-practice-backend/pkg/config"
)

// Store is a blob backend.
type Store interface {
	// Put writes r under key and returns where the object can be reached.
	Put(ctx context.Context, key string, r io.Reader, contentType string, size int64) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ObjectKey builds a collision-free key: cases/<caseID>/<uuid><ext>.
func ObjectKey(caseID uint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("cases", strconv.FormatUint(uint64(caseID), 10), uuid.NewString()+ext)
}

// New picks the backend named by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.StorageDriver {
	case "supabase":
		if cfg.SupabaseURL == "" || cfg.SupabaseBucket == "" {
			return nil, fmt.Errorf("supabase storage: SUPABASE_URL and SUPABASE_BUCKET are required")
		}
		logger.Info("storage ready", slog.String("driver", "supabase"), slog.String("bucket", cfg.SupabaseBucket))
		return NewSupabase(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseBucket), nil
	case "s3":
		s, err := NewS3(ctx, S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("storage ready", slog.String("driver", "s3"), slog.String("bucket", cfg.S3Bucket))
		return s, nil
	default:
		logger.Info("storage ready", slog.String("driver", "local"), slog.String("dir", cfg.UploadDir))
		return NewLocal(cfg.UploadDir), nil
	}
}
