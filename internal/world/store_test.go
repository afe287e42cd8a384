package world

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func charDef(id string, names ...string) map[string]any {
	aliases := make([]any, len(names))
	for i, n := range names {
		aliases[i] = n
	}
	return map[string]any{
		"unique_id":   id,
		"entity_type": "character",
		"names":       aliases,
	}
}

func TestFromData(t *testing.T) {
	t.Run("loads valid entities", func(t *testing.T) {
		store, err := FromData([]map[string]any{
			charDef("guard_01", "Gareth", "Guard"),
			{"unique_id": "tavern_01", "entity_type": "location", "name": "The Tavern"},
		}, DuplicatesReject)
		require.NoError(t, err)

		require.NotNil(t, store.Get("guard_01"))
		assert.Equal(t, "character", store.Get("guard_01").Type)
		assert.Equal(t, "The Tavern", store.Get("tavern_01").DisplayName())
	})

	t.Run("rejects missing unique_id", func(t *testing.T) {
		_, err := FromData([]map[string]any{
			{"entity_type": "item"},
		}, DuplicatesReject)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unique_id")
	})

	t.Run("rejects missing entity_type", func(t *testing.T) {
		_, err := FromData([]map[string]any{
			{"unique_id": "thing_01"},
		}, DuplicatesReject)
		require.Error(t, err)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := FromData([]map[string]any{
			charDef("guard_01", "Gareth"),
			charDef("guard_01", "Impostor"),
		}, DuplicatesReject)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate unique_id")
	})
}

func writeEntityFile(t *testing.T, dir, name string, defs []map[string]any) {
	t.Helper()
	raw, err := json.Marshal(defs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), raw, 0o644))
}

func TestLoadDirectories(t *testing.T) {
	t.Run("loads json files across directories", func(t *testing.T) {
		dirA := t.TempDir()
		dirB := t.TempDir()
		writeEntityFile(t, dirA, "characters.json", []map[string]any{
			charDef("guard_01", "Gareth", "Guard"),
		})
		writeEntityFile(t, dirB, "items.json", []map[string]any{
			{"unique_id": "dagger_01", "entity_type": "item", "names": []any{"Dagger"}},
		})

		store, err := LoadDirectories([]string{dirA, dirB}, DuplicatesReject)
		require.NoError(t, err)
		assert.Len(t, store.All(), 2)
	})

	t.Run("skips malformed files and invalid entities", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))
		writeEntityFile(t, dir, "mixed.json", []map[string]any{
			{"entity_type": "item"}, // no id, skipped
			charDef("guard_01", "Gareth"),
		})

		store, err := LoadDirectories([]string{dir}, DuplicatesSkip)
		require.NoError(t, err)
		assert.Len(t, store.All(), 1)
		assert.NotNil(t, store.Get("guard_01"))
	})

	t.Run("missing directory is not fatal", func(t *testing.T) {
		store, err := LoadDirectories([]string{"/does/not/exist"}, DuplicatesReject)
		require.NoError(t, err)
		assert.Empty(t, store.All())
	})

	t.Run("duplicate id aborts under reject", func(t *testing.T) {
		dir := t.TempDir()
		writeEntityFile(t, dir, "a.json", []map[string]any{charDef("guard_01", "Gareth")})
		writeEntityFile(t, dir, "b.json", []map[string]any{charDef("guard_01", "Impostor")})

		_, err := LoadDirectories([]string{dir}, DuplicatesReject)
		require.Error(t, err)
	})

	t.Run("duplicate id keeps first under skip", func(t *testing.T) {
		dir := t.TempDir()
		writeEntityFile(t, dir, "a.json", []map[string]any{charDef("guard_01", "Gareth")})
		writeEntityFile(t, dir, "b.json", []map[string]any{charDef("guard_01", "Impostor")})

		store, err := LoadDirectories([]string{dir}, DuplicatesSkip)
		require.NoError(t, err)
		require.NotNil(t, store.Get("guard_01"))
		assert.Equal(t, "Gareth", store.Get("guard_01").DisplayName())
	})
}

func TestStoreLookups(t *testing.T) {
	store, err := FromData([]map[string]any{
		charDef("bartender_01", "Greta", "Bartender"),
		charDef("guard_01", "Gareth", "Guard"),
		{
			"unique_id": "tavern_01", "entity_type": "Location",
			"name": "The Tavern",
		},
		{
			"unique_id": "dagger_01", "entity_type": "item",
			"names": []any{"Rusty Dagger"}, "location_id": "tavern_01",
		},
	}, DuplicatesReject)
	require.NoError(t, err)

	t.Run("Get is exact only", func(t *testing.T) {
		assert.NotNil(t, store.Get("guard_01"))
		assert.Nil(t, store.Get("guard"))
		assert.Nil(t, store.Get("GUARD_01"))
	})

	t.Run("ByType is case-insensitive", func(t *testing.T) {
		assert.Len(t, store.ByType("character"), 2)
		assert.Len(t, store.ByType("LOCATION"), 1)
		assert.Empty(t, store.ByType("dragon"))
	})

	t.Run("ByDataProperty matches payload values", func(t *testing.T) {
		found := store.ByDataProperty("location_id", "tavern_01")
		require.Len(t, found, 1)
		assert.Equal(t, "dagger_01", found[0].UniqueID)
	})
}

func TestStoreByName(t *testing.T) {
	store, err := FromData([]map[string]any{
		charDef("bartender_01", "Greta", "Bartender"),
		charDef("guard_01", "Gareth", "Guard"),
	}, DuplicatesReject)
	require.NoError(t, err)

	t.Run("exact match is case-insensitive", func(t *testing.T) {
		e := store.ByName("greta")
		require.NotNil(t, e)
		assert.Equal(t, "bartender_01", e.UniqueID)
	})

	t.Run("fuzzy match clears threshold", func(t *testing.T) {
		e := store.ByName("bartnder")
		require.NotNil(t, e)
		assert.Equal(t, "bartender_01", e.UniqueID)
	})

	t.Run("below threshold returns nil", func(t *testing.T) {
		assert.Nil(t, store.ByName("xyzzy"))
	})

	t.Run("empty lookup returns nil", func(t *testing.T) {
		assert.Nil(t, store.ByName("   "))
	})

	t.Run("shared alias resolves to lowest id", func(t *testing.T) {
		shared, err := FromData([]map[string]any{
			charDef("guard_02", "Gareth", "Guard"),
			charDef("guard_01", "Bertram", "Guard"),
		}, DuplicatesReject)
		require.NoError(t, err)

		e := shared.ByName("Guard")
		require.NotNil(t, e)
		assert.Equal(t, "guard_01", e.UniqueID)
	})

	t.Run("raised threshold blocks loose matches", func(t *testing.T) {
		strict, err := FromData([]map[string]any{
			charDef("bartender_01", "Bartender"),
		}, DuplicatesReject, WithMatchThreshold(99))
		require.NoError(t, err)

		assert.Nil(t, strict.ByName("bartnder"))
		assert.NotNil(t, strict.ByName("Bartender"))
	})
}
