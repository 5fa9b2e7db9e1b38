package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/Faultbox/ascii3d/internal/config"
	"github.com/Faultbox/ascii3d/internal/world"
)

func TestBuiltinMaps(t *testing.T) {
	m := NewManager()

	names := m.List()
	want := []string{"cellar", "classic", "pillars"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}

	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			am, err := m.LoadMap(name, ' ', 'p')
			if err != nil {
				t.Fatalf("LoadMap: %v", err)
			}
			if am.Name != name {
				t.Errorf("expected name %s, got %s", name, am.Name)
			}
			if _, err := world.FromASCII(am); err != nil {
				t.Errorf("built-in map does not build: %v", err)
			}
		})
	}
}

func TestClassicMap(t *testing.T) {
	grid, err := OpenGrid(NewManager(), config.Default().Map)
	if err != nil {
		t.Fatalf("OpenGrid: %v", err)
	}
	if grid.Width() != 20 || grid.Height() != 12 {
		t.Errorf("expected 20x12, got %dx%d", grid.Width(), grid.Height())
	}
	// No spawn marker: the camera starts at the centre.
	if _, _, ok := grid.FindPlayer(); ok {
		t.Error("classic map should have no spawn marker")
	}
	if sym, _ := grid.CellAt(7, 4); sym != 'z' {
		t.Errorf("expected z at (7,4), got %q", sym)
	}
}

func TestLoadPriority(t *testing.T) {
	m := NewManager()
	m.AddFS("override", fstest.MapFS{
		"classic.txt": {Data: []byte("###\n# #\n###\n")},
	})

	data, file, err := m.Load("classic")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// .yaml is tried before .txt, but the later source wins first.
	if file != "classic.txt" || string(data) != "###\n# #\n###\n" {
		t.Errorf("expected override map, got %s: %q", file, data)
	}
	if src, ok := m.Source("classic"); !ok || src != "override" {
		t.Errorf("expected source override, got %q", src)
	}
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.map"), []byte("xxx\nxpx\nxxx"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatalf("AddDir: %v", err)
	}

	found := false
	for _, n := range m.List() {
		if n == "tiny" {
			found = true
		}
		if n == "notes" {
			t.Error("non-map file listed")
		}
	}
	if !found {
		t.Errorf("expected tiny in %v", m.List())
	}

	am, err := m.LoadMap("tiny", ' ', 'p')
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if len(am.Rows) != 3 || am.Rows[1] != "xpx" {
		t.Errorf("unexpected rows %q", am.Rows)
	}

	if err := m.AddDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for a missing dir")
	}
	if err := m.AddDir(filepath.Join(dir, "tiny.map")); err == nil {
		t.Error("expected error for a file")
	}
}

func TestLoadNotFound(t *testing.T) {
	m := NewManager()
	if _, _, err := m.Load("nowhere"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCacheStats(t *testing.T) {
	m := NewManager()

	for i := 0; i < 3; i++ {
		if _, _, err := m.Load("classic"); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}

	hits, misses := m.Cache().Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("expected 2 hits and 1 miss, got %d and %d", hits, misses)
	}
	if m.Cache().Len() != 1 {
		t.Errorf("expected 1 entry, got %d", m.Cache().Len())
	}

	m.Close()
	if m.Cache().Len() != 0 {
		t.Error("expected empty cache after Close")
	}
	if _, _, err := m.Load("classic"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after Close, got %v", err)
	}
}

func TestOpenGridFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.txt")
	if err := os.WriteFile(path, []byte("#####\r\n#.@.#\r\n#####\r\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	mc := config.Default().Map
	mc.Path = path
	mc.Empty = "."
	mc.Player = "@"

	grid, err := OpenGrid(NewManager(), mc)
	if err != nil {
		t.Fatalf("OpenGrid: %v", err)
	}
	if grid.Name() != "room" {
		t.Errorf("expected name room, got %s", grid.Name())
	}
	if x, y, ok := grid.FindPlayer(); !ok || x != 2 || y != 1 {
		t.Errorf("expected marker at (2,1), got (%d,%d) %v", x, y, ok)
	}
}

func TestOpenGridErrors(t *testing.T) {
	m := NewManager()
	m.AddFS("broken", fstest.MapFS{
		"open.txt": {Data: []byte("###\n#  \n###")},
	})

	mc := config.Default().Map
	mc.Name = "open"
	if _, err := OpenGrid(m, mc); !errors.Is(err, world.ErrOpenBorder) {
		t.Errorf("expected ErrOpenBorder, got %v", err)
	}

	mc = config.Default().Map
	mc.Empty = "ab"
	if _, err := OpenGrid(m, mc); err == nil {
		t.Error("expected symbol error")
	}

	mc = config.Default().Map
	mc.Name = "nowhere"
	if _, err := OpenGrid(m, mc); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
