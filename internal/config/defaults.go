package config

import (
	_ "embed"
)

//go:embed defaults/mazetrace.yaml
var defaultYAML []byte

// defaultSizes mirrors the size table of the embedded default config.
// Beginner mazes fit an 80x24 terminal in their expanded form; expert
// mazes are meant for large windows or PNG export.
var defaultSizes = map[string]map[string]SizeConfig{
	"beginner": {
		"easy":   {Width: 8, Height: 5},
		"medium": {Width: 10, Height: 7},
		"hard":   {Width: 12, Height: 9},
	},
	"intermediate": {
		"easy":   {Width: 16, Height: 10},
		"medium": {Width: 20, Height: 12},
		"hard":   {Width: 24, Height: 15},
	},
	"expert": {
		"easy":   {Width: 30, Height: 18},
		"medium": {Width: 36, Height: 22},
		"hard":   {Width: 44, Height: 28},
	},
}

// DefaultConfig returns the hardcoded default configuration, used when the
// embedded YAML cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Resources: ResourcesConfig{
			Hints:  ResourceConfig{Initial: 3, Reward: 1, Max: 5},
			Slices: ResourceConfig{Initial: 1, Reward: 1, Max: 3},
		},
		Feed: FeedConfig{
			Path: "",
		},
		Database: DatabaseConfig{
			Path: "~/.mazetrace/mazetrace.db",
		},
		Forge: ForgeConfig{
			Sizes: defaultSizes,
		},
	}
}
