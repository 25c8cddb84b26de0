package tablebase_test

import (
	"testing"

	"github.com/herohde/tbprobe/pkg/tablebase"
	"github.com/stretchr/testify/assert"
)

func TestWDLNegationIsInvolutionAndOrderReversing(t *testing.T) {
	all := []tablebase.WDL{tablebase.Loss, tablebase.BlessedLoss, tablebase.Draw, tablebase.CursedWin, tablebase.Win}

	for _, w := range all {
		assert.Equal(t, w, w.Negate().Negate())
	}

	for i := range all {
		for j := range all {
			if all[i] < all[j] {
				assert.True(t, all[i].Negate() > all[j].Negate())
			}
		}
	}
}

func TestWDLNegationPairs(t *testing.T) {
	assert.Equal(t, tablebase.Win, tablebase.Loss.Negate())
	assert.Equal(t, tablebase.Loss, tablebase.Win.Negate())
	assert.Equal(t, tablebase.CursedWin, tablebase.BlessedLoss.Negate())
	assert.Equal(t, tablebase.BlessedLoss, tablebase.CursedWin.Negate())
	assert.Equal(t, tablebase.Draw, tablebase.Draw.Negate())
}

func TestWDLMin(t *testing.T) {
	assert.Equal(t, tablebase.Loss, tablebase.Draw.Min(tablebase.Loss))
	assert.Equal(t, tablebase.Draw, tablebase.Draw.Min(tablebase.Win))
}

func TestWDLString(t *testing.T) {
	assert.Equal(t, "Win", tablebase.Win.String())
	assert.Equal(t, "Loss", tablebase.Loss.String())
	assert.Equal(t, "Draw", tablebase.Draw.String())
}
