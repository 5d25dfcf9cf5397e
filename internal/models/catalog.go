package models

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/gamedata.yaml
var gameData []byte

// Catalog is the fixed game data: shop stock, terrains, treasure odds and
// difficulty presets.
type Catalog struct {
	Items        []Item              `yaml:"items"`
	Terrains     []Terrain           `yaml:"terrains"`
	Treasures    []TreasureWeight    `yaml:"treasures"`
	Difficulties map[string]Settings `yaml:"difficulties"`
	prices       map[string]Item
}

// LoadCatalog parses the embedded game data.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(gameData)
}

// ParseCatalog decodes and validates a game data document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse game data: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.prices = make(map[string]Item, len(c.Items))
	for _, it := range c.Items {
		c.prices[it.Name] = it
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Items) == 0 {
		return errors.New("game data has no items")
	}
	if len(c.Terrains) == 0 {
		return errors.New("game data has no terrains")
	}
	total := 0
	for _, tw := range c.Treasures {
		if tw.Weight < 0 {
			return fmt.Errorf("treasure %q has negative weight", tw.Kind)
		}
		total += tw.Weight
	}
	if total == 0 {
		return errors.New("game data has no treasure weights")
	}
	for _, d := range Difficulties {
		if _, ok := c.Difficulties[d.String()]; !ok {
			return fmt.Errorf("game data is missing difficulty %q", d)
		}
	}
	return nil
}

// Lookup returns the catalog entry for an item name.
func (c *Catalog) Lookup(name string) (Item, bool) {
	it, ok := c.prices[strings.ToLower(name)]
	return it, ok
}

// Settings returns the preset for a difficulty.
func (c *Catalog) Settings(d Difficulty) Settings {
	s := c.Difficulties[d.String()]
	s.Difficulty = d
	s.StarterKit = append([]string(nil), s.StarterKit...)
	return s
}

// TotalTreasureWeight is the sum of all treasure weights.
func (c *Catalog) TotalTreasureWeight() int {
	total := 0
	for _, tw := range c.Treasures {
		total += tw.Weight
	}
	return total
}

// TreasureForRoll maps a roll in [0, TotalTreasureWeight) to a treasure kind.
func (c *Catalog) TreasureForRoll(roll int) Treasure {
	cumulative := 0
	for _, tw := range c.Treasures {
		cumulative += tw.Weight
		if roll < cumulative {
			return tw.Kind
		}
	}
	return c.Treasures[len(c.Treasures)-1].Kind
}
