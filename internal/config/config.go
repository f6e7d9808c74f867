package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"curator/internal/application"
	"curator/internal/domain"
)

// DefaultPath is where the config file is looked up when CURATOR_CONFIG is
// not set.
const DefaultPath = "curator.yaml"

// Config is the whole application configuration. Secrets may be written as
// ${VAR} references and are expanded from the environment on load.
type Config struct {
	Storage    Storage    `yaml:"storage"`
	Classifier Classifier `yaml:"classifier"`
	Organize   Organize   `yaml:"organize"`

	// Labels overrides the default category vocabulary. Uncategorized is
	// always part of the set.
	Labels []string `yaml:"labels"`

	// PageSize tunes listing page size; it trades request count against
	// per-request latency and does not affect correctness.
	PageSize int `yaml:"page_size"`
}

// Storage configures the S3-compatible file-storage service.
type Storage struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Classifier configures the LLM classification backend.
type Classifier struct {
	APIKey            string `yaml:"api_key"`
	BaseURL           string `yaml:"base_url"`
	Model             string `yaml:"model"`
	MaxAttempts       int    `yaml:"max_attempts"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// Organize configures the organizing pass.
type Organize struct {
	// RootFolder is the organization root under which the
	// Year/Month/Category hierarchy is built.
	RootFolder string `yaml:"root_folder"`
}

// Path returns the config file path from the CURATOR_CONFIG env var,
// falling back to DefaultPath.
func Path() string {
	if env := os.Getenv("CURATOR_CONFIG"); env != "" {
		return env
	}
	return DefaultPath
}

// Load reads, expands and validates the configuration at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.expandEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// expandEnv resolves ${VAR} references in credential fields and lets
// CURATOR_* environment variables override them outright.
func (c *Config) expandEnv() {
	c.Storage.AccessKey = os.ExpandEnv(c.Storage.AccessKey)
	c.Storage.SecretKey = os.ExpandEnv(c.Storage.SecretKey)
	c.Classifier.APIKey = os.ExpandEnv(c.Classifier.APIKey)

	if v := os.Getenv("CURATOR_STORAGE_ACCESS_KEY"); v != "" {
		c.Storage.AccessKey = v
	}
	if v := os.Getenv("CURATOR_STORAGE_SECRET_KEY"); v != "" {
		c.Storage.SecretKey = v
	}
	if v := os.Getenv("CURATOR_CLASSIFIER_API_KEY"); v != "" {
		c.Classifier.APIKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Classifier.Model == "" {
		c.Classifier.Model = "gpt-4o-mini"
	}
	if c.Classifier.MaxAttempts == 0 {
		c.Classifier.MaxAttempts = 5
	}
	if c.Classifier.RequestsPerMinute == 0 {
		c.Classifier.RequestsPerMinute = 30
	}
	if c.Organize.RootFolder == "" {
		c.Organize.RootFolder = "Organized-Files"
	}
	if len(c.Labels) == 0 {
		c.Labels = append(c.Labels, domain.DefaultLabels...)
	}
	if c.PageSize == 0 {
		c.PageSize = 100
	}
}

// Validate surfaces missing credentials as blocking preconditions; a run
// must not start without them.
func (c *Config) Validate() error {
	switch {
	case c.Storage.Endpoint == "":
		return &application.ValidationError{Field: "storage.endpoint", Message: "storage endpoint is required"}
	case c.Storage.Bucket == "":
		return &application.ValidationError{Field: "storage.bucket", Message: "storage bucket is required"}
	case c.Storage.AccessKey == "" || c.Storage.SecretKey == "":
		return &application.ValidationError{Field: "storage.credentials", Message: "storage access and secret keys are required"}
	case c.Classifier.APIKey == "":
		return &application.ValidationError{Field: "classifier.api_key", Message: "classifier API key is required"}
	case c.PageSize < 0:
		return &application.ValidationError{Field: "page_size", Message: "page size must be positive"}
	}
	return nil
}

// LabelSet builds the closed label set from the configured vocabulary.
func (c *Config) LabelSet() domain.LabelSet {
	return domain.NewLabelSet(c.Labels...)
}
