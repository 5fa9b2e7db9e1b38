// Package formats provides parsers for ASCII map descriptions.
package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Map format errors.
var (
	ErrNoRows     = errors.New("map has no rows")
	ErrBadSymbol  = errors.New("symbol must be exactly one character")
	ErrUnknownExt = errors.New("unknown map file extension")
)

// Default symbols used when a map description does not name its own.
const (
	DefaultEmpty  = ' '
	DefaultPlayer = 'p'
)

// ASCIIMap is a parsed map description. Rows are kept verbatim; shape
// validation happens when the rows are turned into a world grid.
type ASCIIMap struct {
	Name   string
	Empty  rune
	Player rune
	Rows   []string
}

// Size returns the column count of the widest row and the row count.
func (m *ASCIIMap) Size() (width, height int) {
	for _, row := range m.Rows {
		if n := utf8.RuneCountInString(row); n > width {
			width = n
		}
	}
	return width, len(m.Rows)
}

// mapYAML is the on-disk layout of a .yaml map.
type mapYAML struct {
	Name   string   `yaml:"name"`
	Empty  string   `yaml:"empty"`
	Player string   `yaml:"player"`
	Rows   []string `yaml:"rows"`
}

// ParseMapText parses a plain text map: one row per line. Spaces are
// significant, carriage returns and a single trailing newline are dropped.
func ParseMapText(data []byte, empty, player rune) (*ASCIIMap, error) {
	text := strings.ReplaceAll(string(data), "\r", "")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, ErrNoRows
	}

	return &ASCIIMap{
		Empty:  empty,
		Player: player,
		Rows:   strings.Split(text, "\n"),
	}, nil
}

// ParseMapYAML parses a YAML map description.
func ParseMapYAML(data []byte) (*ASCIIMap, error) {
	var raw mapYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding map yaml: %w", err)
	}
	if len(raw.Rows) == 0 {
		return nil, ErrNoRows
	}

	empty, err := parseSymbol(raw.Empty, DefaultEmpty)
	if err != nil {
		return nil, fmt.Errorf("empty symbol: %w", err)
	}
	player, err := parseSymbol(raw.Player, DefaultPlayer)
	if err != nil {
		return nil, fmt.Errorf("player symbol: %w", err)
	}

	return &ASCIIMap{
		Name:   raw.Name,
		Empty:  empty,
		Player: player,
		Rows:   raw.Rows,
	}, nil
}

// ParseMap dispatches on the file extension of name. Text maps take their
// symbols from empty and player.
func ParseMap(name string, data []byte, empty, player rune) (*ASCIIMap, error) {
	var (
		m   *ASCIIMap
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		m, err = ParseMapYAML(data)
	case ".txt", ".map", "":
		m, err = ParseMapText(data, empty, player)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExt, name)
	}
	if err != nil {
		return nil, err
	}

	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return m, nil
}

// ParseMapFile parses a map file from disk.
func ParseMapFile(path string, empty, player rune) (*ASCIIMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	return ParseMap(path, data, empty, player)
}

// ParseSymbol converts a one-character config string into a rune. An empty
// string yields def.
func ParseSymbol(s string, def rune) (rune, error) {
	return parseSymbol(s, def)
}

func parseSymbol(s string, def rune) (rune, error) {
	if s == "" {
		return def, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrBadSymbol, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
