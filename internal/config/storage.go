package config

// StorageConfig selects and configures the object storage backend
// used to hold raw uploads, extracted text, and evidence artifacts.
type StorageConfig struct {
	Backend string          `yaml:"backend"` // "file" or "s3"
	File    FileBlobConfig  `yaml:"file"`
	S3      S3BlobConfig    `yaml:"s3"`
}

// FileBlobConfig configures the local-filesystem storage backend.
type FileBlobConfig struct {
	BasePath string `yaml:"base_path"`
}

// S3BlobConfig configures the AWS S3 storage backend.
type S3BlobConfig struct {
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// DefaultStorageConfig returns the baseline storage configuration.
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend: "file",
		File: FileBlobConfig{
			BasePath: "/var/lib/screeningworker/storage",
		},
	}
}

// Validate checks that the selected backend carries the fields it needs.
func (c StorageConfig) Validate() error {
	switch c.Backend {
	case "file":
		if c.File.BasePath == "" {
			return NewValidationError("storage", "file.base_path", ErrMissingRequired)
		}
	case "s3":
		if c.S3.Bucket == "" {
			return NewValidationError("storage", "s3.bucket", ErrMissingRequired)
		}
	default:
		return NewValidationError("storage", "backend", ErrInvalidValue)
	}
	return nil
}
