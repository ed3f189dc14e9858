package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/octobadge/internal/model"
	"gopkg.in/yaml.v3"
)

type fileTier struct {
	Name        string `yaml:"name"`
	Color       string `yaml:"color"`
	Requirement string `yaml:"requirement"`
}

type fileBadge struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Icon        string     `yaml:"icon"`
	Category    string     `yaml:"category"`
	Rarity      string     `yaml:"rarity"`
	HowToEarn   string     `yaml:"how_to_earn"`
	Metric      string     `yaml:"metric"`
	Rule        string     `yaml:"rule"`
	Tiers       []fileTier `yaml:"tiers"`
	Retired     bool       `yaml:"retired"`
}

type catalogFile struct {
	Badges []fileBadge `yaml:"badges"`
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Decode parses a YAML catalog. Unknown categories, rarities, metrics and
// rules are rejected here so evaluation never has to.
func Decode(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(file.Badges) == 0 {
		return nil, fmt.Errorf("catalog defines no badges")
	}

	defs := make([]model.BadgeDefinition, 0, len(file.Badges))
	for i, fb := range file.Badges {
		def, err := fb.definition()
		if err != nil {
			return nil, fmt.Errorf("badge %d (%s): %w", i, fb.ID, err)
		}
		defs = append(defs, def)
	}
	return New(defs)
}

func (fb fileBadge) definition() (model.BadgeDefinition, error) {
	category, err := model.ParseCategory(fb.Category)
	if err != nil {
		return model.BadgeDefinition{}, err
	}
	rarity, err := model.ParseRarity(fb.Rarity)
	if err != nil {
		return model.BadgeDefinition{}, err
	}
	metric, err := model.ParseMetric(fb.Metric)
	if err != nil {
		return model.BadgeDefinition{}, err
	}
	rule, err := model.ParseRule(fb.Rule)
	if err != nil {
		return model.BadgeDefinition{}, err
	}

	def := model.BadgeDefinition{
		ID:          fb.ID,
		Name:        fb.Name,
		Description: fb.Description,
		Icon:        fb.Icon,
		Category:    category,
		Rarity:      rarity,
		HowToEarn:   fb.HowToEarn,
		Metric:      metric,
		Rule:        rule,
		Retired:     fb.Retired,
	}
	for _, ft := range fb.Tiers {
		def.Tiers = append(def.Tiers, model.TierDefinition{
			Name:        ft.Name,
			Color:       ft.Color,
			Requirement: ft.Requirement,
		})
	}
	return def, nil
}
