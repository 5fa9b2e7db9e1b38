// Package assets resolves map names to map data from search directories and
// the maps built into the binary.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/Faultbox/ascii3d/internal/config"
	"github.com/Faultbox/ascii3d/internal/world"
	"github.com/Faultbox/ascii3d/pkg/formats"
)

//go:embed maps
var builtin embed.FS

// ErrNotFound is returned when no source holds a map.
var ErrNotFound = errors.New("map not found")

// BuiltinSource is the name of the embedded map source.
const BuiltinSource = "builtin"

// mapExts are tried in order when a map name has no extension.
var mapExts = []string{".yaml", ".yml", ".txt", ".map"}

type source struct {
	name string
	fsys fs.FS
}

// Manager handles map loading from directories and the built-in maps.
type Manager struct {
	sources []source
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a manager holding only the built-in maps.
func NewManager() *Manager {
	sub, err := fs.Sub(builtin, "maps")
	if err != nil {
		panic(err) // embed path is fixed at compile time
	}
	return &Manager{
		sources: []source{{name: BuiltinSource, fsys: sub}},
		cache:   NewCache(),
	}
}

// AddDir adds a directory of maps.
// Sources are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding map dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding map dir %s: not a directory", dir)
	}
	m.AddFS(dir, os.DirFS(dir))
	return nil
}

// AddFS adds a map source.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.sources = append(m.sources, source{name: name, fsys: fsys})
	m.mu.Unlock()
}

// candidates lists the file names tried for a map name.
func candidates(name string) []string {
	if path.Ext(name) != "" {
		return []string{name}
	}
	out := make([]string, len(mapExts))
	for i, ext := range mapExts {
		out[i] = name + ext
	}
	return out
}

// Load returns the raw bytes of a map and the file name they came from.
func (m *Manager) Load(name string) ([]byte, string, error) {
	if e, ok := m.cache.Get(name); ok {
		return e.Data, e.File, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		for _, file := range candidates(name) {
			data, err := fs.ReadFile(m.sources[i].fsys, file)
			if err == nil {
				m.cache.Set(name, Entry{Data: data, File: file, Source: m.sources[i].name})
				return data, file, nil
			}
		}
	}

	return nil, "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Source returns the name of the source a loaded map came from.
func (m *Manager) Source(name string) (string, bool) {
	e, ok := m.cache.Peek(name)
	return e.Source, ok
}

// LoadMap loads and parses a map. Text maps use the given symbols.
func (m *Manager) LoadMap(name string, empty, player rune) (*formats.ASCIIMap, error) {
	data, file, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	am, err := formats.ParseMap(file, data, empty, player)
	if err != nil {
		return nil, fmt.Errorf("parsing map %s: %w", name, err)
	}
	return am, nil
}

// List returns the names of every map in every source, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for _, src := range m.sources {
		entries, err := fs.ReadDir(src.fsys, ".")
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !isMapFile(e.Name()) {
				continue
			}
			seen[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = true
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func isMapFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range mapExts {
		if ext == e {
			return true
		}
	}
	return false
}

// Close drops every source and the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = nil
	m.cache.Clear()
}

// Cache returns the manager's cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// OpenGrid builds the world grid selected by a map config: an explicit
// path wins over a name, which is looked up through m.
func OpenGrid(m *Manager, mc config.MapConfig) (*world.Grid, error) {
	empty, err := formats.ParseSymbol(mc.Empty, formats.DefaultEmpty)
	if err != nil {
		return nil, fmt.Errorf("map.empty: %w", err)
	}
	player, err := formats.ParseSymbol(mc.Player, formats.DefaultPlayer)
	if err != nil {
		return nil, fmt.Errorf("map.player: %w", err)
	}

	var am *formats.ASCIIMap
	if mc.Path != "" {
		am, err = formats.ParseMapFile(mc.Path, empty, player)
	} else {
		am, err = m.LoadMap(mc.Name, empty, player)
	}
	if err != nil {
		return nil, err
	}

	return world.FromASCII(am)
}

// Entry is one cached map file.
type Entry struct {
	Data   []byte
	File   string
	Source string
}

// Cache is a simple in-memory cache for loaded maps.
type Cache struct {
	data map[string]Entry
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]Entry),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return e, ok
}

// Peek retrieves an item without touching the stats.
func (c *Cache) Peek(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.data[key]
	return e, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = e
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]Entry)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
