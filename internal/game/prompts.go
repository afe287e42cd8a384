package game

import "fmt"

// Tool names form the interpreter's fixed vocabulary. The oracle picks from
// these and nothing else.
const (
	toolLookAround = "look_around"
	toolExamine    = "examine"
	toolGoTo       = "go_to"
	toolGiveMoney  = "give_money"
	toolGiveItem   = "give_item"
)

func toolSpecs() []ToolSpec {
	return []ToolSpec{
		{
			Name:        toolLookAround,
			Description: "Describe the player's current location and everything the player can see in it.",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        toolExamine,
			Description: "Examine an object or character in the current location more closely.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"target_string": map[string]any{
						"type":        "string",
						"description": "The player's own words for what they want to examine.",
					},
				},
				"required": []string{"target_string"},
			},
		},
		{
			Name:        toolGoTo,
			Description: "Travel to another location.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"destination_string": map[string]any{
						"type":        "string",
						"description": "Where the player wants to go, in their own words.",
					},
				},
				"required": []string{"destination_string"},
			},
		},
		{
			Name:        toolGiveMoney,
			Description: "Give an amount of money to a character.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"recipient_name": map[string]any{
						"type":        "string",
						"description": "The name of the character receiving the money.",
					},
					"amount": map[string]any{
						"type":        "integer",
						"description": "How much money to give.",
					},
				},
				"required": []string{"recipient_name", "amount"},
			},
		},
		{
			Name:        toolGiveItem,
			Description: "Give one item from the inventory to a character.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"recipient_name": map[string]any{
						"type":        "string",
						"description": "The name of the character receiving the item.",
					},
					"item_name": map[string]any{
						"type":        "string",
						"description": "The name or id of the item to give.",
					},
				},
				"required": []string{"recipient_name", "item_name"},
			},
		},
	}
}

// buildFramingPrompt is the system framing for both tool selection and
// narration: where the player is, and that exactly one tool may be chosen.
func buildFramingPrompt(playerLocationID string) string {
	return fmt.Sprintf(`You are the game master of a text adventure. The player is currently in the location with id %q.

Interpret the player's command and choose exactly one of the available tools to carry it out. Pick the single tool that best matches the player's intent and fill in its arguments from the player's own words. If no tool fits, reply with a short in-character sentence instead of calling a tool.`, playerLocationID)
}

const narrationSystemPrompt = `You are the narrator of a text adventure. A game tool has just run on the player's behalf and produced a raw result.

Turn that result into a short reply to the player, 1-3 sentences, second person, staying strictly consistent with the tool result. Do not invent outcomes the tool did not report. Do not call any tools.`
