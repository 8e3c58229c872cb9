// Package config provides YAML-based configuration loading for the
// mazetrace platform: assist budgets, feed and database locations and the
// authoring size table.
package config

// Config is the root configuration document.
type Config struct {
	Resources ResourcesConfig `yaml:"resources"`
	Feed      FeedConfig      `yaml:"feed"`
	Database  DatabaseConfig  `yaml:"database"`
	Forge     ForgeConfig     `yaml:"forge"`
}

// ResourcesConfig defines the session assist budgets.
type ResourcesConfig struct {
	Hints  ResourceConfig `yaml:"hints"`
	Slices ResourceConfig `yaml:"slices"`
}

// ResourceConfig defines one assist budget.
type ResourceConfig struct {
	Initial int `yaml:"initial"` // balance at session start
	Reward  int `yaml:"reward"`  // credited per solved puzzle
	Max     int `yaml:"max"`     // balance cap, 0 means uncapped
}

// FeedConfig locates the puzzle feed.
type FeedConfig struct {
	// Path overrides the feed search order when set. Empty means the usual
	// lookup: ~/.mazetrace/puzzles.jsonl, ./puzzles.jsonl, bundled feed.
	Path string `yaml:"path"`
}

// DatabaseConfig locates the run database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ForgeConfig holds the authoring size table: maze dimensions per skill
// tier and difficulty.
type ForgeConfig struct {
	Sizes map[string]map[string]SizeConfig `yaml:"sizes"`
}

// SizeConfig is one maze dimension pair.
type SizeConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SkillTier is a named audience level carried on every puzzle record.
type SkillTier string

const (
	TierBeginner     SkillTier = "beginner"
	TierIntermediate SkillTier = "intermediate"
	TierExpert       SkillTier = "expert"
)

// SkillTiers lists the tiers in ascending order.
var SkillTiers = []SkillTier{TierBeginner, TierIntermediate, TierExpert}

// ValidTier reports whether s names a known skill tier.
func ValidTier(s string) bool {
	for _, t := range SkillTiers {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Difficulty is a named challenge level within a tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the difficulties in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ValidDifficulty reports whether s names a known difficulty.
func ValidDifficulty(s string) bool {
	for _, d := range Difficulties {
		if string(d) == s {
			return true
		}
	}
	return false
}

// SizeFor returns the authoring dimensions for a tier/difficulty pair.
// Unknown pairs and degenerate entries fall back to the default table.
func (f ForgeConfig) SizeFor(tier, difficulty string) SizeConfig {
	if row, ok := f.Sizes[tier]; ok {
		if size, ok := row[difficulty]; ok && size.Width >= 2 && size.Height >= 2 {
			return size
		}
	}
	if size, ok := defaultSizes[tier][difficulty]; ok {
		return size
	}
	return SizeConfig{Width: 12, Height: 9}
}
