package log

import (
	"testing"

	"pixelcooked.dev/internal/sim/catalogs"
)

func mustCats(t *testing.T) *catalogs.Catalogs {
	t.Helper()
	cats, err := catalogs.LoadDefault()
	if err != nil {
		t.Fatalf("catalogs: %v", err)
	}
	return cats
}
