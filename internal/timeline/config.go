package timeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the pixel constants of the desktop layout.
type Config struct {
	PixelsPerMonth float64 `yaml:"pixels_per_month"` // vertical scale of the time axis
	PaddingMonths  int     `yaml:"padding_months"`   // months added before the earliest and after the latest date
	MainLineX      float64 `yaml:"main_line_x"`      // preferred x of the central axis
	BranchSpacing  float64 `yaml:"branch_spacing"`   // distance between adjacent lanes
	NodeRadius     float64 `yaml:"node_radius"`
	CardWidth      float64 `yaml:"card_width"`
	CardHeight     float64 `yaml:"card_height"`  // height reserved per card during lane assignment
	CardPadding    float64 `yaml:"card_padding"` // minimum gap between two cards
	CardGap        float64 `yaml:"card_gap"`     // gap between a branch line and its card
	MaxLanes       int     `yaml:"max_lanes"`    // tiers tried per side before overflowing
	LegendOffset   float64 `yaml:"legend_offset"`
	LegendHeight   float64 `yaml:"legend_height"`
	BottomPadding  float64 `yaml:"bottom_padding"`
	SideMargin     float64 `yaml:"side_margin"`
	DateSpread     float64 `yaml:"date_spread"` // per-item nudge for entries sharing a start or end date
	MaxCurveRadius float64 `yaml:"max_curve_radius"`
}

// DefaultConfig returns the compact layout used on the site.
func DefaultConfig() Config {
	return Config{
		PixelsPerMonth: 18,
		PaddingMonths:  2,
		MainLineX:      500,
		BranchSpacing:  90,
		NodeRadius:     6,
		CardWidth:      260,
		CardHeight:     120,
		CardPadding:    25,
		CardGap:        15,
		MaxLanes:       6,
		LegendOffset:   80,
		LegendHeight:   60,
		BottomPadding:  60,
		SideMargin:     60,
		DateSpread:     8,
		MaxCurveRadius: 12,
	}
}

// LoadConfig returns DefaultConfig overlaid with the YAML file at configPath.
// An empty path yields the defaults.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("error reading layout config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing layout config: %w", err)
	}
	if config.MaxLanes < 1 {
		config.MaxLanes = 1
	}
	return config, nil
}
