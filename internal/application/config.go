// Package application wires the transform together: format detection,
// score-schema resolution, registry building, round assembly, and the
// document assembler that composes the final tree.
package application

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// foldCaser folds style names once per lookup without allocating a caser
// each time.
var foldCaser = cases.Fold()

// StyleMapping describes how one source contest style translates to the
// output document.
type StyleMapping struct {
	// Canonical is the output style value. Empty means the style is known
	// but has no canonical equivalent, so no style is emitted.
	Canonical string `yaml:"canonical"`

	// FourSides marks parliamentary-format styles where four teams meet
	// per debate, which changes rank arithmetic tournament-wide.
	FourSides bool `yaml:"four_sides"`
}

// Config carries the converter's tunable behavior. Defaults reproduce the
// upstream converter; a YAML file can override individual fields.
type Config struct {
	// Styles maps source style names to their canonical output values.
	Styles map[string]StyleMapping `yaml:"styles" validate:"required"`

	// EliminationCutoff is the highest numeric round stage still counted
	// as preliminary under the detailed encoding.
	EliminationCutoff int `yaml:"elimination_cutoff" validate:"min=0"`

	// UnknownTeamName is the display-name placeholder for entries with
	// neither a full name nor a code.
	UnknownTeamName string `yaml:"unknown_team_name" validate:"required"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Styles: map[string]StyleMapping{
			"Policy":          {},
			"Parli":           {},
			"Lincoln-Douglas": {Canonical: "ld"},
			"WUDC":            {Canonical: "wudc", FourSides: true},
			"Public Forum":    {},
			"Other":           {},
		},
		EliminationCutoff: 9,
		UnknownTeamName:   "UNKNOWN",
	}
}

// LoadConfig returns the default configuration overlaid with the YAML file
// at path. An empty path loads the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// styleFor resolves a source style name case-insensitively.
func (c Config) styleFor(name string) (StyleMapping, bool) {
	folded := foldCaser.String(name)
	for k, v := range c.Styles {
		if foldCaser.String(k) == folded {
			return v, true
		}
	}
	return StyleMapping{}, false
}
