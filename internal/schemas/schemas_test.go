package schemas_test

import (
	"testing"

	"pixelcooked.dev/internal/schemas"
)

func TestSchemas_Compile(t *testing.T) {
	names := schemas.Names()
	if len(names) < 4 {
		t.Fatalf("expected embedded schemas, got %v", names)
	}
	for _, n := range names {
		if _, err := schemas.Get(n); err != nil {
			t.Fatalf("compile %s: %v", n, err)
		}
	}
}

func TestSchemas_ValidateYAML(t *testing.T) {
	good := []byte("tick_duration_ms: 15\nround_minutes: [5, 10]\ncanvas_length: 1000\n")
	if err := schemas.ValidateYAML("tuning.schema.json", good); err != nil {
		t.Fatalf("validate good tuning: %v", err)
	}

	for _, bad := range []string{
		"tick_duration_ms: 0\n",
		"round_minutes: []\n",
		"unknown_key: 1\n",
		"player_ratio: 1.5\n",
	} {
		if err := schemas.ValidateYAML("tuning.schema.json", []byte(bad)); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}

	recipes := []byte("- name: Toast\n  requires: [Toast]\n- name: Nothing\n  requires: []\n")
	if err := schemas.ValidateYAML("recipes.schema.json", recipes); err != nil {
		t.Fatalf("validate recipes: %v", err)
	}
	tooMany := []byte("- name: Big\n  requires: [A, B, C, D]\n")
	if err := schemas.ValidateYAML("recipes.schema.json", tooMany); err == nil {
		t.Fatalf("expected 4-slot recipe to fail")
	}
}

func TestSchemas_Unknown(t *testing.T) {
	if _, err := schemas.Get("nope.schema.json"); err == nil {
		t.Fatalf("expected error for missing schema")
	}
}
