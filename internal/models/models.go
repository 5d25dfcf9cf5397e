package models

import (
	"fmt"
	"strings"
)

// Item names the rules refer to directly.
const (
	ItemSword   = "sword"
	ItemBoots   = "boots"
	ItemMachete = "machete"
	ItemShovel  = "shovel"
)

// TerrainJungle is the one terrain a sword can cut through.
const TerrainJungle = "Jungle"

// Item is a shop catalog entry.
type Item struct {
	Name        string `yaml:"name"`
	Price       int    `yaml:"price"`
	SamuraiOnly bool   `yaml:"samurai_only"` // only offered in samurai mode
}

// Terrain surrounds a town and needs one item to cross.
type Terrain struct {
	Name     string `yaml:"name"`
	Requires string `yaml:"requires"`
}

// InfoString describes what it takes to get past the terrain.
func (t Terrain) InfoString() string {
	return fmt.Sprintf("Beyond the town gates lies the %s. You'll need a %s to cross it.", t.Name, t.Requires)
}

// Treasure is the kind of treasure hidden in a town.
type Treasure string

const (
	TreasureDust   Treasure = "dust"
	TreasureCrown  Treasure = "crown"
	TreasureTrophy Treasure = "trophy"
	TreasureGem    Treasure = "gem"
)

// CollectibleTreasures are the kinds a hunter needs one of each to win.
var CollectibleTreasures = []Treasure{TreasureCrown, TreasureTrophy, TreasureGem}

// IsCollectible reports whether finding t counts toward victory.
func (t Treasure) IsCollectible() bool {
	return t != TreasureDust && t != ""
}

// TreasureWeight is one entry of the weighted treasure draw.
type TreasureWeight struct {
	Kind   Treasure `yaml:"kind"`
	Weight int      `yaml:"weight"`
}

// Difficulty is the closed set of game modes chosen at setup.
type Difficulty int

const (
	DifficultyNormal Difficulty = iota
	DifficultyHard
	DifficultyEasy
	DifficultySamurai
	DifficultyTest
)

// Difficulties lists every mode, in the order they are documented.
var Difficulties = []Difficulty{DifficultyHard, DifficultyNormal, DifficultyEasy, DifficultySamurai, DifficultyTest}

// String returns the mode name used in the game data file.
func (d Difficulty) String() string {
	switch d {
	case DifficultyHard:
		return "hard"
	case DifficultyEasy:
		return "easy"
	case DifficultySamurai:
		return "samurai"
	case DifficultyTest:
		return "test"
	default:
		return "normal"
	}
}

// ParseDifficulty maps the setup answer to a mode. Anything unrecognised,
// including an empty answer, is normal.
func ParseDifficulty(choice string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "h":
		return DifficultyHard
	case "e":
		return DifficultyEasy
	case "s":
		return DifficultySamurai
	case "test":
		return DifficultyTest
	default:
		return DifficultyNormal
	}
}

// Settings is the immutable economic configuration of a difficulty.
type Settings struct {
	Difficulty      Difficulty `yaml:"-"`
	StartingGold    int        `yaml:"starting_gold"`
	Markdown        float64    `yaml:"markdown"`
	Toughness       float64    `yaml:"toughness"`
	Samurai         bool       `yaml:"samurai"`
	UnbreakableGear bool       `yaml:"unbreakable_gear"`
	StarterKit      []string   `yaml:"starter_kit"`
	StarterKitPrice int        `yaml:"starter_kit_price"`
}
