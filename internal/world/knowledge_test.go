package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger(t *testing.T) {
	t.Run("facts come back in discovery order", func(t *testing.T) {
		l := NewLedger()
		l.AddFact("player_01", "rag_01", "It is soft.")
		l.AddFact("player_01", "rag_01", "It smells of ale.")
		l.AddFact("player_01", "rag_01", "There is a stitched initial in one corner.")

		assert.Equal(t, []string{
			"It is soft.",
			"It smells of ale.",
			"There is a stitched initial in one corner.",
		}, l.Facts("player_01", "rag_01"))
	})

	t.Run("duplicate fact is a no-op", func(t *testing.T) {
		l := NewLedger()
		l.AddFact("player_01", "rag_01", "It is soft.")
		l.AddFact("player_01", "rag_01", "It is soft.")

		assert.Len(t, l.Facts("player_01", "rag_01"), 1)
	})

	t.Run("unknown pair yields empty, not nil panic", func(t *testing.T) {
		l := NewLedger()
		assert.Empty(t, l.Facts("nobody", "nothing"))
		assert.False(t, l.Knows("nobody", "nothing"))
	})

	t.Run("knowledge is scoped per knower", func(t *testing.T) {
		l := NewLedger()
		l.AddFact("player_01", "dagger_01", "The blade is rusted.")

		assert.True(t, l.Knows("player_01", "dagger_01"))
		assert.False(t, l.Knows("barkeep_01", "dagger_01"))
		assert.Empty(t, l.Facts("barkeep_01", "dagger_01"))
	})

	t.Run("same fact text for different subjects is kept for both", func(t *testing.T) {
		l := NewLedger()
		l.AddFact("player_01", "dagger_01", "It is old.")
		l.AddFact("player_01", "rag_01", "It is old.")

		assert.Len(t, l.Facts("player_01", "dagger_01"), 1)
		assert.Len(t, l.Facts("player_01", "rag_01"), 1)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		l := NewLedger()
		l.AddFact("player_01", "rag_01", "It is soft.")

		got := l.Facts("player_01", "rag_01")
		got[0] = "mutated"
		assert.Equal(t, []string{"It is soft."}, l.Facts("player_01", "rag_01"))
	})
}
