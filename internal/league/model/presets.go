package model

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/festy23/fantasy_roster/internal/rules"
)

//go:embed presets.yaml
var defaultPresetsYAML []byte

// Preset is a named league template loaded from YAML.
type Preset struct {
	Name                 string           `yaml:"name"`
	Slots                rules.SlotConfig `yaml:"slots"`
	ForeignerOnTeamLimit *int             `yaml:"foreigner_on_team_limit"`
	ForeignerActiveLimit *int             `yaml:"foreigner_active_limit"`
	AllowDirectToNA      bool             `yaml:"allow_direct_to_na"`
	WaiverDays           *int             `yaml:"waiver_days"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Settings holds what the league service needs besides storage.
type Settings struct {
	Presets           map[string]Preset
	DefaultWaiverDays int
}

// ParsePresets decodes a presets document and validates every entry.
func ParsePresets(data []byte) (map[string]Preset, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	presets := make(map[string]Preset, len(file.Presets))
	for _, p := range file.Presets {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("preset without a name")
		}
		if _, exists := presets[name]; exists {
			return nil, fmt.Errorf("preset %s is defined twice", name)
		}
		if err := p.Slots.Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		if p.Slots.TotalCapacity() == 0 {
			return nil, fmt.Errorf("preset %s: %w", name, ErrNoSlots)
		}
		presets[name] = p
	}
	return presets, nil
}

// DefaultPresets returns the presets bundled with the binary.
func DefaultPresets() map[string]Preset {
	presets, err := ParsePresets(defaultPresetsYAML)
	if err != nil {
		panic(fmt.Sprintf("bundled presets are invalid: %v", err))
	}
	return presets
}

// LoadPresets reads presets from path, or returns the bundled ones when path is empty.
func LoadPresets(path string) (map[string]Preset, error) {
	if path == "" {
		return DefaultPresets(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}
	return ParsePresets(data)
}
