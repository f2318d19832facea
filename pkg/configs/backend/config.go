// Package backend holds the configuration of the aicored server.
package backend

import (
	"errors"
	"fmt"
	"os"

	xe "github.com/pronas-suite/aicore/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("backend: invalid config")

const (
	DefaultPort             = 8800
	DefaultRetrainThreshold = 100
)

type Config struct {
	// Port the HTTP API listens on.
	Port int32 `yaml:"port"`

	// Database is the postgres connection string.
	Database string `yaml:"database"`

	// ModelServer is the base URL of the model-server which backs the
	// embedding, sentiment, entity, OCR and rendering capabilities.
	ModelServer string `yaml:"modelServer"`

	// CatalogFile optionally overrides the built-in synthesis catalog.
	CatalogFile string `yaml:"catalogFile,omitempty"`

	// GuidelineFiles are text files fed to the guideline structurer.
	// Without any, the built-in guideline set is served.
	GuidelineFiles []string `yaml:"guidelineFiles,omitempty"`

	// GuidelineVersionFile, when set, is watched; each modification
	// invalidates the guideline cache.
	GuidelineVersionFile string `yaml:"guidelineVersionFile,omitempty"`

	// RetrainThreshold is how many pending feedback entries schedule
	// a retraining run.
	RetrainThreshold int `yaml:"retrainThreshold"`

	// AuthKey, when set, is the HMAC key requests must be signed with.
	// Empty disables authentication.
	AuthKey string `yaml:"authKey,omitempty"`
}

// LoadBackendConfig reads a Config from a yaml file, applying defaults
// for optional fields and rejecting incomplete ones.
func LoadBackendConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := &Config{
		Port:             DefaultPort,
		RetrainThreshold: DefaultRetrainThreshold,
	}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, xe.Wrap(err)
	}

	if c.Database == "" {
		return nil, xe.Wrap(fmt.Errorf("%w: database is required", ErrInvalidConfig))
	}
	if c.ModelServer == "" {
		return nil, xe.Wrap(fmt.Errorf("%w: modelServer is required", ErrInvalidConfig))
	}
	if c.Port <= 0 {
		return nil, xe.Wrap(fmt.Errorf("%w: port must be positive", ErrInvalidConfig))
	}
	if c.RetrainThreshold <= 0 {
		return nil, xe.Wrap(fmt.Errorf("%w: retrainThreshold must be positive", ErrInvalidConfig))
	}

	return c, nil
}
