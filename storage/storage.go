package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Store is a durable key-value store for draft state. Get reports absence
// through the bool rather than an error so callers can treat "missing" and
// "unreadable" uniformly.
type Store interface {
	// Get retrieves a value; the bool is false when the key is absent
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes a value, replacing any previous one
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key; removing an absent key is not an error
	Remove(ctx context.Context, key string) error
}

// Keys used by the draft engine. Both live in the same store; the draft key
// holds the JSON-serialized form and the content key holds the raw editor
// markup.
const (
	DraftKey   = "legal-form-draft"
	ContentKey = "legal-editor-content"
)

// StoreType represents the storage backend type
type StoreType string

const (
	StoreTypeLocal    StoreType = "local"
	StoreTypePostgres StoreType = "postgres"
	StoreTypeS3       StoreType = "s3"
)

// StoreConfig holds configuration for the store
type StoreConfig struct {
	Type         StoreType
	LocalPath    string // For local storage
	DatabaseURL  string // For Postgres storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	S3Prefix     string // Optional key prefix inside the bucket
	AWSAccessKey string
	AWSSecretKey string
}

// NewStore creates a store instance based on configuration
func NewStore(cfg StoreConfig) (Store, error) {
	switch cfg.Type {
	case StoreTypeLocal:
		return NewLocalStore(cfg.LocalPath)
	case StoreTypePostgres:
		return NewPostgresStore(context.Background(), cfg.DatabaseURL)
	case StoreTypeS3:
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewStoreFromEnv creates a store instance from environment variables
func NewStoreFromEnv() (Store, error) {
	storeType := os.Getenv("STORAGE_TYPE")
	if storeType == "" {
		storeType = "local" // Default to local for development
	}

	cfg := StoreConfig{
		Type: StoreType(storeType),
	}

	switch StoreType(storeType) {
	case StoreTypeLocal:
		localPath := os.Getenv("STORAGE_LOCAL_PATH")
		if localPath == "" {
			localPath = "./storage/drafts"
		}
		cfg.LocalPath = localPath
		return NewLocalStore(cfg.LocalPath)

	case StoreTypePostgres:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL environment variable is required for postgres storage")
		}
		return NewPostgresStore(context.Background(), cfg.DatabaseURL)

	case StoreTypeS3:
		cfg.S3Bucket = os.Getenv("AWS_S3_BUCKET")
		cfg.S3Region = os.Getenv("AWS_REGION")
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1" // Default region
		}
		cfg.S3Prefix = os.Getenv("AWS_S3_PREFIX")
		cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}

		return NewS3Store(cfg)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", storeType)
	}
}
