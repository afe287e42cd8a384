package game

import (
	"context"
	"encoding/json"
	"fmt"

	"groundtruth/internal/world"
)

// generateFacts asks the oracle what new information the knower learns from
// performing an action on the subject. Facts already known are supplied so
// the oracle does not repeat them; a repeated fact is harmless anyway since
// the ledger append is idempotent. Any failure degrades to no new
// information.
func (gm *GameMaster) generateFacts(ctx context.Context, knowerID, action string, subject *world.Entity) []string {
	currentKnowledge := gm.ledger.Facts(knowerID, subject.UniqueID)

	groundTruth, err := json.MarshalIndent(subject.Data, "", "  ")
	if err != nil {
		return []string{}
	}
	knownJSON, err := json.Marshal(currentKnowledge)
	if err != nil {
		return []string{}
	}

	systemPrompt := `You are a creative and subtle game master for a text-based interactive fiction game. Your goal is to reveal information about the world organically as the player interacts with it.

Based on the action performed, decide what new information the character would learn.
- Be concise and descriptive; write observational statements, never raw data dumps.
- New information may concern physical properties, purpose, history, or value.
- Formulate names as statements, e.g. "It looks like what most people would call a 'rusty key'."
- Never repeat a fact the character already knows.
- If the action would reveal nothing new, return an empty list.
- Your response MUST be a valid JSON list of strings. Example: ["This is a new fact.", "This is another new fact."]`

	userPrompt := fmt.Sprintf(`The character %q performs the action: %q on the object %q.

Object's Ground Truth (objective, hidden information):
%s

Character's Current Knowledge (do not repeat these):
%s`, knowerID, action, subject.UniqueID, groundTruth, knownJSON)

	content, err := gm.oracle.CompleteJSON(ctx, JSONRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    200,
	})
	if err != nil {
		gm.log.Printf("Fact generation failed for %s on %s: %v", knowerID, subject.UniqueID, err)
		return []string{}
	}

	return decodeStringList(content)
}
