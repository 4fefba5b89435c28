package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineage_StringRoundTrip(t *testing.T) {
	for l := LineageNone; l <= LineageRestricted; l++ {
		assert.Equal(t, l, ParseLineage(l.String()), l.String())
	}
	assert.Equal(t, LineageNone, ParseLineage("vampire"))
	assert.Equal(t, "unknown", Lineage(42).String())
}

func TestLineage_StartsBlooded(t *testing.T) {
	assert.False(t, LineageUndetermined.StartsBlooded())
	assert.False(t, LineageUnblooded.StartsBlooded())
	assert.False(t, LineageGeneral.StartsBlooded())
	assert.True(t, LineagePack.StartsBlooded())
	assert.True(t, LineageRestricted.StartsBlooded())
}
