package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/ascii3d/internal/config"
	"github.com/Faultbox/ascii3d/internal/engine/raycast"
	"github.com/Faultbox/ascii3d/internal/world"
)

// ErrUnknownColor is returned for colour names tcell does not know.
var ErrUnknownColor = errors.New("render: unknown color")

// ColorPair holds the two shades of a wall symbol.
type ColorPair struct {
	Light tcell.Color // X side
	Dark  tcell.Color // Y side
}

// Pick returns the shade for the side a ray hit.
func (p ColorPair) Pick(side raycast.Side) tcell.Color {
	if side == raycast.SideY {
		return p.Dark
	}
	return p.Light
}

// Palette is the symbol to colour lookup table plus the scene colours.
type Palette struct {
	walls    map[world.Symbol]ColorPair
	fallback ColorPair

	CeilingFar tcell.Color
	Ceiling    tcell.Color
	FloorFar   tcell.Color
	Floor      tcell.Color
	Background tcell.Color
	Text       tcell.Color
}

// ParseColor resolves a tcell colour name or "#rrggbb".
func ParseColor(name string) (tcell.Color, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" || name == "default" || name == "reset" {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}

// NewPalette builds the lookup table from configuration.
func NewPalette(cfg config.PaletteConfig) (*Palette, error) {
	p := &Palette{walls: make(map[world.Symbol]ColorPair, len(cfg.Walls))}

	var errs []error
	pair := func(what string, wc config.WallColors) ColorPair {
		light, err := ParseColor(wc.Light)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s light: %w", what, err))
		}
		dark, err := ParseColor(wc.Dark)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s dark: %w", what, err))
		}
		return ColorPair{Light: light, Dark: dark}
	}
	color := func(what, name string) tcell.Color {
		c, err := ParseColor(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
		}
		return c
	}

	for sym, wc := range cfg.Walls {
		r := []rune(sym)
		if len(r) != 1 {
			errs = append(errs, fmt.Errorf("palette key %q: want one character", sym))
			continue
		}
		p.walls[world.Symbol(r[0])] = pair("wall "+sym, wc)
	}
	p.fallback = pair("fallback", cfg.Fallback)
	p.CeilingFar = color("ceiling_far", cfg.CeilingFar)
	p.Ceiling = color("ceiling", cfg.Ceiling)
	p.FloorFar = color("floor_far", cfg.FloorFar)
	p.Floor = color("floor", cfg.Floor)
	p.Background = color("background", cfg.Background)
	p.Text = color("text", cfg.Text)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return p, nil
}

// Pair returns the colours of a wall symbol, or the fallback pair.
func (p *Palette) Pair(sym world.Symbol) ColorPair {
	if c, ok := p.walls[sym]; ok {
		return c
	}
	return p.fallback
}

// WallColor returns the colour of a hit.
func (p *Palette) WallColor(hit raycast.Hit) tcell.Color {
	return p.Pair(hit.Symbol).Pick(hit.Side)
}
