package gen

import (
	"os"
	"path/filepath"
)

// FeatureStage describes the stability stage of a feature.
type FeatureStage int

// Feature stability stages.
const (
	Experimental FeatureStage = iota
	Alpha
	Beta
	Stable
)

// Feature is an optional code generation capability.
type Feature struct {
	// Name of the feature.
	Name string
	// Stage of the feature.
	Stage FeatureStage
	// Default values indicates if this feature is enabled by default.
	Default bool
	// A Description of this feature.
	Description string
	// cleanup used to cleanup all changes when a feature is removed.
	cleanup func(*Config) error
}

var (
	// FeatureSnapshot stores a snapshot of the resolved declarations next
	// to the generated code and skips regeneration when nothing changed.
	FeatureSnapshot = Feature{
		Name:        "snapshot",
		Stage:       Experimental,
		Default:     false,
		Description: "Snapshot stores the resolved declarations and skips regeneration when they are unchanged",
		cleanup: func(c *Config) error {
			return os.RemoveAll(filepath.Join(c.Target, SnapshotFile))
		},
	}

	// AllFeatures holds the references of all existing features.
	AllFeatures = []Feature{
		FeatureSnapshot,
	}
)

// LookupFeature returns the feature with the given name.
func LookupFeature(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
