package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	assert.Equal(t, "evening", s.Time)
	assert.Equal(t, "clear", s.Weather)
	assert.Equal(t, "tavern", s.Location)
	assert.Equal(t, "Arin", s.Player.Name)
	assert.Equal(t, "neutral", s.Player.Reputation)
	assert.Empty(t, s.Player.Inventory)
	assert.Empty(t, s.ActiveQuests)
}

func TestClone(t *testing.T) {
	s := DefaultState()
	s.Player.Inventory = []string{"coin"}
	s.ActiveQuests = []string{"find_the_ring"}

	c := s.Clone()
	c.Player.Inventory[0] = "dagger"
	c.ActiveQuests = append(c.ActiveQuests, "slay_the_wyrm")
	c.Player.Name = "Someone Else"

	assert.Equal(t, []string{"coin"}, s.Player.Inventory, "clone must not alias inventory")
	assert.Equal(t, []string{"find_the_ring"}, s.ActiveQuests)
	assert.Equal(t, "Arin", s.Player.Name)
}
