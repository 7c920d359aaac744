package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Toggle overrides a boolean setting or defers to the loaded config.
type Toggle int

const (
	FromConfig Toggle = iota
	On
	Off
)

// Variant is a named rule preset layered over the loaded configuration.
type Variant struct {
	ID          string
	Title       string
	Description string
	Boundary    core.Boundary // Empty keeps the configured policy
	Speed       Toggle
}

// Apply returns cfg with the variant's overrides.
func (v Variant) Apply(cfg core.RuntimeConfig) core.RuntimeConfig {
	if v.Boundary != "" {
		cfg.Boundary = v.Boundary
	}
	switch v.Speed {
	case On:
		cfg.Speed.Enabled = true
	case Off:
		cfg.Speed.Enabled = false
	}
	return cfg
}

// DefaultVariant is played when no variant is named.
const DefaultVariant = "classic"

// Variants lists the built-in presets in menu order.
var Variants = []Variant{
	{
		ID:          "classic",
		Title:       "Classic",
		Description: "Walls are deadly, constant speed",
		Boundary:    core.BoundaryClamp,
		Speed:       Off,
	},
	{
		ID:          "speedy",
		Title:       "Speedy",
		Description: "Walls are deadly, speeds up as you score",
		Boundary:    core.BoundaryClamp,
		Speed:       On,
	},
	{
		ID:          "wrap",
		Title:       "Wraparound",
		Description: "Pass through walls to the other side",
		Boundary:    core.BoundaryWrap,
		Speed:       Off,
	},
	{
		ID:          "marathon",
		Title:       "Marathon",
		Description: "Wraparound walls and rising speed",
		Boundary:    core.BoundaryWrap,
		Speed:       On,
	},
	{
		ID:          "custom",
		Title:       "Custom",
		Description: "Rules taken entirely from the config file",
	},
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
