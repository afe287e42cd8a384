package game

import (
	"context"
	"encoding/json"
	"fmt"

	"groundtruth/internal/world"
)

// resolveTarget maps the player's free-text reference to exactly one of the
// candidate entity ids, using what the observer already knows about each
// candidate as disambiguating context. Returns "" when nothing matches,
// which is a normal outcome, not an error. The oracle is constrained to the supplied
// ids and its response is parsed strictly; any parse failure is "no match".
func (gm *GameMaster) resolveTarget(ctx context.Context, targetString string, knowerID string, candidates []*world.Entity) string {
	if len(candidates) == 0 {
		return ""
	}

	type option struct {
		EntityID   string   `json:"entity_id"`
		KnownFacts []string `json:"known_facts"`
	}
	options := make([]option, 0, len(candidates))
	allowed := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		options = append(options, option{
			EntityID:   c.UniqueID,
			KnownFacts: gm.ledger.Facts(knowerID, c.UniqueID),
		})
		allowed[c.UniqueID] = struct{}{}
	}

	optionsJSON, err := json.MarshalIndent(options, "", "  ")
	if err != nil {
		return ""
	}

	systemPrompt := `You are a helpful assistant in a text-based game. Your task is to figure out which object the player is referring to.

- Your response MUST be a valid JSON object containing a single key "entity_id".
- The value must be the single most likely 'entity_id' from the provided list.
- If no object is a good match, the value must be null.
- Never answer with an id that is not in the list.`

	userPrompt := fmt.Sprintf(`The player typed a command referring to: %q.

Available objects, with the facts the player already knows about each:
%s

Which 'entity_id' is the player most likely referring to?`, targetString, optionsJSON)

	content, err := gm.oracle.CompleteJSON(ctx, JSONRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    50,
	})
	if err != nil {
		gm.log.Printf("Entity resolution failed for %q: %v", targetString, err)
		return ""
	}

	id, ok := decodeSingleKey(content, "entity_id")
	if !ok {
		return ""
	}
	if _, known := allowed[id]; !known {
		gm.log.Printf("Entity resolution returned out-of-set id %q for %q", id, targetString)
		return ""
	}
	return id
}
