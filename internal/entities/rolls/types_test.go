package rolls_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
)

func TestRequestBounds(t *testing.T) {
	req := rolls.Request{Sides: 6, NumDice: 2, NumRolls: 10}

	assert.Equal(t, 2, req.MinTotal())
	assert.Equal(t, 12, req.MaxTotal())
	assert.Equal(t, 11, req.BinCount())

	single := rolls.Request{Sides: 1, NumDice: 3, NumRolls: 1}
	assert.Equal(t, 1, single.BinCount())
}

func TestFrequencyTableBin(t *testing.T) {
	table := &rolls.FrequencyTable{
		NumRolls: 5,
		Bins: []rolls.Bin{
			{Total: 2, Count: 1},
			{Total: 3, Count: 4},
			{Total: 4, Count: 0},
		},
	}

	bin, ok := table.Bin(3)
	assert.True(t, ok)
	assert.Equal(t, rolls.Bin{Total: 3, Count: 4}, bin)

	_, ok = table.Bin(1)
	assert.False(t, ok)
	_, ok = table.Bin(5)
	assert.False(t, ok)

	lo, hi := table.Range()
	assert.Equal(t, 2, lo)
	assert.Equal(t, 4, hi)
	assert.Equal(t, 4, table.MaxCount())
}

func TestFrequencyTableEmpty(t *testing.T) {
	table := &rolls.FrequencyTable{}

	_, ok := table.Bin(0)
	assert.False(t, ok)

	lo, hi := table.Range()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
	assert.Zero(t, table.MaxCount())
}

func TestViewer(t *testing.T) {
	v := rolls.NewViewer("tty-1")
	assert.Equal(t, "tty-1", v.GetID())
	assert.Equal(t, "viewer", v.GetType())

	assert.Equal(t, rolls.DefaultViewerID, rolls.NewViewer("").GetID())
}
