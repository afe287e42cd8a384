package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exchangeFixture(t *testing.T) (*Store, *Exchange) {
	t.Helper()
	store, err := FromData([]map[string]any{
		{
			"unique_id": "player_01", "entity_type": "player",
			"names": []any{"Player"},
			"inventory": map[string]any{
				"money": float64(10),
				"items": map[string]any{"rusty_dagger_01": float64(1)},
			},
		},
		{
			"unique_id": "barkeep_01", "entity_type": "character",
			"names": []any{"Greta", "Barkeep"},
			"inventory": map[string]any{
				"money": float64(50),
				"items": map[string]any{},
			},
		},
		{
			"unique_id": "pauper_01", "entity_type": "character",
			"names": []any{"Tom"},
		},
		{"unique_id": "tavern_01", "entity_type": "location", "name": "Tavern"},
	}, DuplicatesReject)
	require.NoError(t, err)
	return store, NewExchange(store, "player_01", nil)
}

func TestTransferMoney(t *testing.T) {
	t.Run("moves funds and names both parties", func(t *testing.T) {
		store, x := exchangeFixture(t)
		msg, ok := x.TransferMoney("player_01", "Greta", 4)
		assert.True(t, ok)
		assert.Equal(t, "(Player gives 4 gold to Greta)", msg)
		assert.Equal(t, 6, store.Get("player_01").Money())
		assert.Equal(t, 54, store.Get("barkeep_01").Money())
	})

	t.Run("exact funds drain to zero", func(t *testing.T) {
		store, x := exchangeFixture(t)
		_, ok := x.TransferMoney("player_01", "Greta", 10)
		assert.True(t, ok)
		assert.Equal(t, 0, store.Get("player_01").Money())
		assert.Equal(t, 60, store.Get("barkeep_01").Money())
	})

	t.Run("insufficient funds refuse without mutation", func(t *testing.T) {
		store, x := exchangeFixture(t)
		msg, ok := x.TransferMoney("player_01", "Greta", 11)
		assert.False(t, ok)
		assert.Equal(t, "(Player tries to give 11 gold but doesn't have enough)", msg)
		assert.Equal(t, 10, store.Get("player_01").Money())
		assert.Equal(t, 50, store.Get("barkeep_01").Money())
	})

	t.Run("non-positive amounts are refused", func(t *testing.T) {
		store, x := exchangeFixture(t)
		for _, amount := range []int{0, -5} {
			msg, ok := x.TransferMoney("player_01", "Greta", amount)
			assert.False(t, ok)
			assert.Equal(t, "(Cannot transfer zero or negative amount)", msg)
		}
		assert.Equal(t, 10, store.Get("player_01").Money())
	})

	t.Run("unknown sender", func(t *testing.T) {
		_, x := exchangeFixture(t)
		msg, ok := x.TransferMoney("ghost_01", "Greta", 1)
		assert.False(t, ok)
		assert.Equal(t, "(Error: Sender ghost_01 not found)", msg)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		store, x := exchangeFixture(t)
		msg, ok := x.TransferMoney("player_01", "Zanzibar", 1)
		assert.False(t, ok)
		assert.Equal(t, "(Cannot give money: Recipient Zanzibar not found)", msg)
		assert.Equal(t, 10, store.Get("player_01").Money())
	})

	t.Run("locations cannot receive money", func(t *testing.T) {
		_, x := exchangeFixture(t)
		_, ok := x.TransferMoney("player_01", "Tavern", 1)
		assert.False(t, ok)
	})

	t.Run("self transfer is refused", func(t *testing.T) {
		store, x := exchangeFixture(t)
		_, ok := x.TransferMoney("player_01", "player", 5)
		assert.False(t, ok)
		assert.Equal(t, 10, store.Get("player_01").Money())
	})

	t.Run("recipient 'player' routes to the player entity", func(t *testing.T) {
		store, x := exchangeFixture(t)
		_, ok := x.TransferMoney("barkeep_01", "player", 20)
		assert.True(t, ok)
		assert.Equal(t, 30, store.Get("player_01").Money())
		assert.Equal(t, 30, store.Get("barkeep_01").Money())
	})
}

func TestTransferItem(t *testing.T) {
	t.Run("moves one unit and deletes a zero entry", func(t *testing.T) {
		store, x := exchangeFixture(t)
		msg, ok := x.TransferItem("player_01", "Greta", "rusty_dagger_01")
		assert.True(t, ok)
		assert.Equal(t, "(Player gives rusty_dagger_01 to Greta)", msg)
		assert.Equal(t, 0, store.Get("player_01").ItemCount("rusty_dagger_01"))
		assert.Equal(t, 1, store.Get("barkeep_01").ItemCount("rusty_dagger_01"))

		// the sender's entry is gone, not left at zero
		inv := store.Get("player_01").Data["inventory"].(map[string]any)
		items := inv["items"].(map[string]any)
		_, present := items["rusty_dagger_01"]
		assert.False(t, present)
	})

	t.Run("recipient inventory is created on first use", func(t *testing.T) {
		store, x := exchangeFixture(t)
		_, ok := x.TransferItem("player_01", "Tom", "rusty_dagger_01")
		assert.True(t, ok)
		assert.Equal(t, 1, store.Get("pauper_01").ItemCount("rusty_dagger_01"))
	})

	t.Run("missing item refuses without mutation", func(t *testing.T) {
		store, x := exchangeFixture(t)
		msg, ok := x.TransferItem("player_01", "Greta", "crown_jewels")
		assert.False(t, ok)
		assert.Equal(t, "(Player tries to give crown_jewels but doesn't have it)", msg)
		assert.Equal(t, 0, store.Get("barkeep_01").ItemCount("crown_jewels"))
	})

	t.Run("unknown recipient", func(t *testing.T) {
		store, x := exchangeFixture(t)
		msg, ok := x.TransferItem("player_01", "Zanzibar", "rusty_dagger_01")
		assert.False(t, ok)
		assert.Equal(t, "(Cannot give item: Recipient Zanzibar not found)", msg)
		assert.Equal(t, 1, store.Get("player_01").ItemCount("rusty_dagger_01"))
	})
}
