package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBalanceValidates(t *testing.T) {
	assert.NoError(t, DefaultBalance().Validate())

	b := DefaultBalance()
	delete(b.GenreMultipliers, GenrePrank)
	assert.Error(t, b.Validate())

	b = DefaultBalance()
	b.Decay = []DecayStep{{AfterSeconds: 300, Factor: 0.1}, {AfterSeconds: 60, Factor: 0.5}}
	assert.Error(t, b.Validate())

	b = DefaultBalance()
	b.ViewsPerXP = 0
	assert.Error(t, b.Validate())
}

func TestDecayFactor(t *testing.T) {
	b := DefaultBalance()
	assert.Equal(t, 1.0, b.decayFactor(0))
	assert.Equal(t, 1.0, b.decayFactor(60))
	assert.Equal(t, 0.5, b.decayFactor(60.5))
	assert.Equal(t, 0.5, b.decayFactor(300))
	assert.Equal(t, 0.1, b.decayFactor(301))
	assert.Equal(t, 0.01, b.decayFactor(601))
}
