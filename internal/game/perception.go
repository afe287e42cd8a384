package game

import (
	"context"
	"encoding/json"
	"fmt"
)

// placeholderPerception is rendered when the oracle cannot produce a first
// impression. A co-located entity must never be invisible.
const placeholderPerception = "A shimmering form is here, but it's difficult to make out."

// generatePerception mints exactly one short, deliberately vague sentence
// describing a first glance at an entity the observer has never perceived.
// The sentence must not name the entity or reveal its true purpose.
func (gm *GameMaster) generatePerception(ctx context.Context, subjectID string, subjectData map[string]any) string {
	groundTruth, err := json.MarshalIndent(subjectData, "", "  ")
	if err != nil {
		return placeholderPerception
	}

	systemPrompt := `You are a creative writer for a text-based game. A player has just entered a room and sees an object for the first time.

Write a brief, one-sentence first impression of the object from the player's perspective.
- Be evocative and mysterious.
- Do not reveal the object's name or true purpose.
- Focus on appearance and general impression.
- Your response MUST be a valid JSON object with a single key "perception" holding that sentence.`

	userPrompt := fmt.Sprintf("Object's Ground Truth (hidden from the player):\n%s", groundTruth)

	content, err := gm.oracle.CompleteJSON(ctx, JSONRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    100,
	})
	if err != nil {
		gm.log.Printf("Perception generation failed for %s: %v", subjectID, err)
		return placeholderPerception
	}

	perception, ok := decodeSingleKey(content, "perception")
	if !ok {
		gm.log.Printf("Perception parse failed for %s: %q", subjectID, content)
		return placeholderPerception
	}
	return perception
}
