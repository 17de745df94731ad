package catalogs

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"pixelcooked.dev/internal/schemas"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

type Catalogs struct {
	Ingredients IngredientCatalog
	Crates      CrateCatalog
	Recipes     RecipeCatalog
}

type IngredientCatalog struct {
	Palette       []string
	Index         map[string]uint16
	Defs          map[string]IngredientDef
	PaletteDigest string
	DefsDigest    string
}

type IngredientDef struct {
	ID    string `yaml:"id" json:"id"`
	Color string `yaml:"color" json:"color"`
	Glyph string `yaml:"glyph,omitempty" json:"glyph,omitempty"`
	Chop  string `yaml:"chop,omitempty" json:"chop,omitempty"`
	Cook  string `yaml:"cook,omitempty" json:"cook,omitempty"`
}

// CrateCatalog binds each crate role (FISH_CRATE, ...) to the ingredient it dispenses.
type CrateCatalog struct {
	ByRole map[string]string
	Digest string
}

type RecipeCatalog struct {
	List   []RecipeDef
	Digest string
}

type RecipeDef struct {
	Name     string   `yaml:"name" json:"name"`
	Requires []string `yaml:"requires" json:"requires"`
}

// Load reads ingredients.yaml, crates.yaml and recipes.yaml from configDir.
func Load(configDir string) (*Catalogs, error) {
	return LoadFS(os.DirFS(configDir))
}

// LoadDefault returns the catalogs compiled into the binary.
func LoadDefault() (*Catalogs, error) {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

func LoadFS(fsys fs.FS) (*Catalogs, error) {
	var c Catalogs
	if err := loadIngredients(fsys, "ingredients.yaml", &c.Ingredients); err != nil {
		return nil, err
	}
	if err := loadCrates(fsys, "crates.yaml", &c.Crates); err != nil {
		return nil, err
	}
	if err := loadRecipes(fsys, "recipes.yaml", &c.Recipes); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Digest covers every catalog file; it changes whenever any of them does.
func (c *Catalogs) Digest() string {
	return sha256Hex([]byte(c.Ingredients.DefsDigest + c.Crates.Digest + c.Recipes.Digest))
}

func (c *Catalogs) validate() error {
	ing := &c.Ingredients
	for _, id := range ing.Palette {
		d := ing.Defs[id]
		for _, edge := range []struct{ name, to string }{{"chop", d.Chop}, {"cook", d.Cook}} {
			if edge.to == "" {
				continue
			}
			if edge.to == id {
				return fmt.Errorf("ingredients.yaml: %s %s edge points to itself", id, edge.name)
			}
			if !ing.Has(edge.to) {
				return fmt.Errorf("ingredients.yaml: %s %s edge to unknown ingredient %q", id, edge.name, edge.to)
			}
		}
	}
	for role, id := range c.Crates.ByRole {
		if !ing.Has(id) {
			return fmt.Errorf("crates.yaml: %s dispenses unknown ingredient %q", role, id)
		}
	}
	for _, r := range c.Recipes.List {
		for _, id := range r.Requires {
			if !ing.Has(id) {
				return fmt.Errorf("recipes.yaml: %s requires unknown ingredient %q", r.Name, id)
			}
		}
	}
	return nil
}

func readValidated(fsys fs.FS, name, schema string) ([]byte, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateYAML(schema, raw); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return raw, nil
}

func loadIngredients(fsys fs.FS, name string, out *IngredientCatalog) error {
	raw, err := readValidated(fsys, name, "ingredients.schema.json")
	if err != nil {
		return err
	}
	out.DefsDigest = sha256Hex(raw)

	var defs []IngredientDef
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	out.Defs = map[string]IngredientDef{}
	out.Index = map[string]uint16{}
	out.Palette = out.Palette[:0]
	for _, d := range defs {
		if _, dup := out.Defs[d.ID]; dup {
			return fmt.Errorf("%s: duplicate id %s", name, d.ID)
		}
		out.Defs[d.ID] = d
		out.Index[d.ID] = uint16(len(out.Palette))
		out.Palette = append(out.Palette, d.ID)
	}
	palJSON, _ := json.Marshal(out.Palette)
	out.PaletteDigest = sha256Hex(palJSON)
	return nil
}

func loadCrates(fsys fs.FS, name string, out *CrateCatalog) error {
	raw, err := readValidated(fsys, name, "crates.schema.json")
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)
	out.ByRole = map[string]string{}
	if err := yaml.Unmarshal(raw, &out.ByRole); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func loadRecipes(fsys fs.FS, name string, out *RecipeCatalog) error {
	raw, err := readValidated(fsys, name, "recipes.schema.json")
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)
	out.List = nil
	if err := yaml.Unmarshal(raw, &out.List); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
