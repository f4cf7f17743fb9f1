package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-roller/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("display")

	id := gen.Generate()
	require.True(t, strings.HasPrefix(id, "display_"))

	_, err := uuid.Parse(strings.TrimPrefix(id, "display_"))
	assert.NoError(t, err)
	assert.NotEqual(t, id, gen.Generate())
}

func TestUUIDGeneratorNoPrefix(t *testing.T) {
	_, err := uuid.Parse(idgen.NewUUID("").Generate())
	assert.NoError(t, err)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("display")
	assert.Equal(t, "display_1", gen.Generate())
	assert.Equal(t, "display_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestSequentialGeneratorConcurrent(t *testing.T) {
	gen := idgen.NewSequential("")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]struct{})
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.Generate()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}
