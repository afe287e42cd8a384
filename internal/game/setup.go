package game

import (
	"fmt"

	"groundtruth/internal/config"
	"groundtruth/internal/debug"
	"groundtruth/internal/world"
)

// World bundles the mutable collaborators one game session owns. They are
// explicitly passed around, never ambient singletons.
type World struct {
	Store    *world.Store
	Ledger   *world.Ledger
	State    *world.State
	Exchange *world.Exchange
}

// SetupWorld loads the entity store from the configured directories and
// builds the session's ledger, state, and exchange around it. When the
// loaded data doesn't declare a player entity, one is synthesized with the
// starter inventory.
func SetupWorld(cfg config.Config, log *debug.Logger) (*World, error) {
	if log == nil {
		log = debug.NewNopLogger()
	}

	policy := world.DuplicatesSkip
	if cfg.Duplicates == "reject" {
		policy = world.DuplicatesReject
	}

	store, err := world.LoadDirectories(cfg.DataDirs, policy,
		world.WithMatchThreshold(cfg.MatchThreshold),
		world.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("loading entity directories: %w", err)
	}

	if store.Get(cfg.PlayerID) == nil {
		log.Printf("No player entity in data, synthesizing %s", cfg.PlayerID)
		player := &world.Entity{
			UniqueID: cfg.PlayerID,
			Type:     world.TypePlayer,
			Data: map[string]any{
				"names":       []any{"Player"},
				"description": "An adventurer, newly arrived.",
				"location_id": cfg.StartLocation,
				"inventory": map[string]any{
					"money": 10,
					"items": map[string]any{"rusty_dagger_01": 1},
				},
			},
		}
		if err := store.Add(player); err != nil {
			return nil, fmt.Errorf("synthesizing player entity: %w", err)
		}
	}

	return &World{
		Store:    store,
		Ledger:   world.NewLedger(),
		State:    world.NewState(store, cfg.PlayerID, cfg.StartLocation),
		Exchange: world.NewExchange(store, cfg.PlayerID, log),
	}, nil
}
