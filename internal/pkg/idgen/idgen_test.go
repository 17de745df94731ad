package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelcooked.dev/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	g := idgen.NewUUID("round")
	a, b := g.Generate(), g.Generate()
	assert.NotEqual(t, a, b)
	require.True(t, strings.HasPrefix(a, "round_"))
	_, err := uuid.Parse(strings.TrimPrefix(a, "round_"))
	require.NoError(t, err)

	bare := idgen.NewUUID("").Generate()
	_, err = uuid.Parse(bare)
	assert.NoError(t, err)
}

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential("round")
	assert.Equal(t, "round_1", g.Generate())
	assert.Equal(t, "round_2", g.Generate())

	var gen idgen.Generator = idgen.NewSequential("")
	assert.Equal(t, "1", gen.Generate())
}
