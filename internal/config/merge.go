package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rshade/herdcarbon/internal/engine"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyLogging  = "logging"
	keyEngine   = "engine"
	keyFinance  = "finance"
	keyFeatures = "features"
	keyOutput   = "output"
)

// knownTopLevelKeys lists the YAML keys that correspond to Config fields.
// Keys not in this list are ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyLogging:  true,
	keyEngine:   true,
	keyFinance:  true,
	keyFeatures: true,
	keyOutput:   true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A section present in the overlay replaces the whole section in
// target; absent sections are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes node into a fresh zero value of the section so
// that fields missing from the overlay do not survive from target.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyEngine:
		var v EngineConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Engine = v
	case keyFinance:
		var v FinanceConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Finance = v
	case keyFeatures:
		var v engine.FeatureFlags
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Features = v
	case keyOutput:
		var v OutputConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
