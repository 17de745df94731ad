package catalogs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadDefault_Graph(t *testing.T) {
	c, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	ing := c.Ingredients

	edges := []struct {
		from string
		p    Process
		to   string
	}{
		{"Fish", ProcessChop, "Sashimi"},
		{"Fish", ProcessCook, "FriedFish"},
		{"FriedFish", ProcessChop, "FishFillet"},
		{"Lettuce", ProcessChop, "Salad"},
		{"Bread", ProcessChop, "BreadPiece"},
		{"Bread", ProcessCook, "Toast"},
		{"BreadPiece", ProcessCook, "Crouton"},
		// Missing edges are no-ops.
		{"FriedFish", ProcessCook, "FriedFish"},
		{"Lettuce", ProcessCook, "Lettuce"},
		{"BreadPiece", ProcessChop, "BreadPiece"},
		{"Unknown", ProcessChop, "Unknown"},
	}
	for _, e := range edges {
		if got := ing.Apply(e.from, e.p); got != e.to {
			t.Fatalf("%s %s -> %s want %s", e.p, e.from, got, e.to)
		}
	}

	for _, id := range []string{"Sashimi", "FishFillet", "Salad", "Crouton", "Toast"} {
		if !ing.Terminal(id) {
			t.Fatalf("%s should be terminal", id)
		}
	}
	if !ing.CanChop("Fish") || !ing.CanCook("Fish") || ing.CanCook("Lettuce") {
		t.Fatalf("capability flags wrong")
	}
}

func TestLoadDefault_PaletteOrderAndDigests(t *testing.T) {
	c, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	want := []string{"Sashimi", "FishFillet", "FriedFish", "Fish", "Salad", "Lettuce", "Crouton", "BreadPiece", "Toast", "Bread"}
	if strings.Join(c.Ingredients.Palette, ",") != strings.Join(want, ",") {
		t.Fatalf("palette=%v", c.Ingredients.Palette)
	}
	for i, id := range want {
		if c.Ingredients.Index[id] != uint16(i) {
			t.Fatalf("index[%s]=%d want %d", id, c.Ingredients.Index[id], i)
		}
	}
	if c.Ingredients.Color("Fish") != "#B245A5" {
		t.Fatalf("fish color=%s", c.Ingredients.Color("Fish"))
	}
	if len(c.Recipes.List) != 8 {
		t.Fatalf("recipes=%d want 8", len(c.Recipes.List))
	}
	if id, ok := c.Crates.Ingredient("BREAD_CRATE"); !ok || id != "Bread" {
		t.Fatalf("bread crate=%q %v", id, ok)
	}
	if len(c.Digest()) != 64 || c.Ingredients.PaletteDigest == "" {
		t.Fatalf("digests not populated")
	}

	again, _ := LoadDefault()
	if again.Digest() != c.Digest() {
		t.Fatalf("digest not stable")
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ingredients.yaml", "crates.yaml", "recipes.yaml"} {
		raw, err := defaultFS.ReadFile("defaults/" + name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def, _ := LoadDefault()
	if c.Digest() != def.Digest() {
		t.Fatalf("copied catalogs digest differs")
	}
}

func TestLoad_Rejects(t *testing.T) {
	base := func() fstest.MapFS {
		fsys := fstest.MapFS{}
		for _, name := range []string{"ingredients.yaml", "crates.yaml", "recipes.yaml"} {
			raw, _ := defaultFS.ReadFile("defaults/" + name)
			fsys[name] = &fstest.MapFile{Data: raw}
		}
		return fsys
	}

	cases := map[string]func(fstest.MapFS){
		"dangling edge": func(f fstest.MapFS) {
			f["ingredients.yaml"] = &fstest.MapFile{Data: []byte("- id: Fish\n  color: \"#000000\"\n  chop: Ghost\n")}
		},
		"bad color": func(f fstest.MapFS) {
			f["ingredients.yaml"] = &fstest.MapFile{Data: []byte("- id: Fish\n  color: red\n")}
		},
		"missing crate role": func(f fstest.MapFS) {
			f["crates.yaml"] = &fstest.MapFile{Data: []byte("FISH_CRATE: Fish\n")}
		},
		"unknown recipe ingredient": func(f fstest.MapFS) {
			f["recipes.yaml"] = &fstest.MapFile{Data: []byte("- name: Pie\n  requires: [Apple]\n")}
		},
		"missing file": func(f fstest.MapFS) {
			delete(f, "recipes.yaml")
		},
	}
	for name, mutate := range cases {
		fsys := base()
		mutate(fsys)
		if _, err := LoadFS(fsys); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
