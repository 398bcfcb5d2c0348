package gen

import "errors"

// Config holds the tool-level generation settings shared by every
// declaration. Per-declaration capabilities live in Type.
type Config struct {
	// Target is the output directory.
	Target string
	// Package is the output package import path.
	Package string
	// Header is the comment added at the top of each generated file.
	Header string
	// Features holds the enabled optional features.
	Features []Feature
	// SnapshotPath overrides the default snapshot file location.
	SnapshotPath string
}

// FeatureEnabled reports whether the named feature is enabled. Unknown
// feature names are configuration errors.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if _, ok := LookupFeature(name); !ok {
		return false, NewConfigError("Features", name, "unknown feature")
	}
	for _, f := range c.Features {
		if f.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// HasFeature reports whether the named feature is enabled, treating
// unknown names as disabled.
func (c *Config) HasFeature(name string) bool {
	enabled, _ := c.FeatureEnabled(name)
	return enabled
}

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the output package import path.
// For example: "github.com/org/project/ids".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := LookupFeature(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithSnapshotPath sets the snapshot file location.
func WithSnapshotPath(path string) Option {
	return func(c *Config) error {
		c.SnapshotPath = path
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
