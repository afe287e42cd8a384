package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"groundtruth/internal/debug"
	"groundtruth/internal/logging"
	"groundtruth/internal/world"
)

// fallbackResponse is what a turn degrades to when the oracle fails before a
// tool has produced anything. A turn always yields some player-visible text.
const fallbackResponse = "I'm not sure how to respond to that."

// GameMaster is the command interpreter: it sits between raw player text and
// deterministic world state. Each turn it resolves the player entity, asks
// the oracle to pick one tool from the fixed vocabulary, executes that tool
// against the store and ledger, and asks the oracle to narrate the result.
//
// The GameMaster itself is stateless across calls; all durable effects go
// through the store, ledger, and state it holds. Commands are processed one
// at a time; no two tool executions ever interleave.
type GameMaster struct {
	oracle    Oracle
	store     *world.Store
	ledger    *world.Ledger
	state     *world.State
	exchange  *world.Exchange
	log       *debug.Logger
	turns     *logging.TurnLogger
	sessionID string
	tracer    trace.Tracer

	mu sync.Mutex
}

// NewGameMaster wires the interpreter to its collaborators. turns may be nil
// to disable the audit log.
func NewGameMaster(oracle Oracle, w *World, sessionID string, log *debug.Logger, turns *logging.TurnLogger) *GameMaster {
	if log == nil {
		log = debug.NewNopLogger()
	}
	return &GameMaster{
		oracle:    oracle,
		store:     w.Store,
		ledger:    w.Ledger,
		state:     w.State,
		exchange:  w.Exchange,
		log:       log,
		turns:     turns,
		sessionID: sessionID,
		tracer:    otel.Tracer("game-master"),
	}
}

// State exposes the game state for front ends (relocation endpoint, TUI
// status line).
func (gm *GameMaster) State() *world.State {
	return gm.state
}

// Store exposes the entity store for front ends (portrait lookup).
func (gm *GameMaster) Store() *world.Store {
	return gm.store
}

// ProcessCommand runs one full player turn. It never returns an error: every
// internal failure is converted to player-visible text.
func (gm *GameMaster) ProcessCommand(ctx context.Context, playerInput string) string {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	ctx, span := gm.tracer.Start(ctx, "turn.process",
		trace.WithAttributes(
			attribute.String("turn.input", playerInput),
			attribute.String("session.id", gm.sessionID),
		),
	)
	defer span.End()

	started := time.Now()

	if gm.state.PlayerEntity() == nil {
		// Fatal misconfiguration, not a recoverable per-turn error.
		gm.log.Printf("Player entity %q missing from store", gm.state.PlayerID())
		return "Error: Player entity could not be found."
	}

	framing := buildFramingPrompt(gm.state.Location())

	call, plainText, err := gm.oracle.SelectTool(ctx, ToolSelectionRequest{
		SystemPrompt: framing,
		UserInput:    playerInput,
		Tools:        toolSpecs(),
	})
	if err != nil {
		gm.log.Printf("Tool selection failed: %v", err)
		span.RecordError(err)
		return fallbackResponse
	}
	if call == nil {
		gm.logTurn(playerInput, "", "", plainText, started)
		if strings.TrimSpace(plainText) != "" {
			return plainText
		}
		return fallbackResponse
	}

	span.SetAttributes(attribute.String("turn.tool", call.Name))
	gm.log.Printf("Selected tool %s with args %v", call.Name, call.Args)

	result := gm.executeTool(ctx, *call)

	narrated, err := gm.oracle.Narrate(ctx, NarrationRequest{
		SystemPrompt: framing + "\n\n" + narrationSystemPrompt,
		UserInput:    playerInput,
		Call:         *call,
		ToolResult:   result,
	})
	if err != nil || strings.TrimSpace(narrated) == "" {
		// The tool result is already in-character text; better than a shrug.
		gm.log.Printf("Narration failed, returning raw tool result: %v", err)
		gm.logTurn(playerInput, call.Name, result, result, started)
		return result
	}

	gm.logTurn(playerInput, call.Name, result, narrated, started)
	return narrated
}

// executeTool runs the selected tool deterministically. The oracle is only
// consulted again inside look_around/examine, for perception and facts.
func (gm *GameMaster) executeTool(ctx context.Context, call ToolCall) string {
	switch call.Name {
	case toolLookAround:
		return gm.lookAround(ctx)
	case toolExamine:
		return gm.examine(ctx, stringArg(call.Args, "target_string"))
	case toolGoTo:
		return gm.goTo(stringArg(call.Args, "destination_string"))
	case toolGiveMoney:
		return gm.giveMoney(call.Args)
	case toolGiveItem:
		return gm.giveItem(call.Args)
	default:
		gm.log.Printf("Oracle selected unknown tool %q", call.Name)
		return fmt.Sprintf("(Tried to perform an unknown action: %s)", call.Name)
	}
}

// lookAround enumerates everything co-located with the player. Entities the
// player has never perceived get a minted first-glance fact; the response is
// the location description followed by every known fact about co-located
// entities, including ones learned in this same call.
func (gm *GameMaster) lookAround(ctx context.Context) string {
	locationID := gm.state.Location()
	location := gm.store.Get(locationID)
	if location == nil {
		return fmt.Sprintf("The location '%s' is not recognized.", locationID)
	}

	others := gm.colocatedEntities(locationID)
	if len(others) == 0 {
		return location.Description("It is an empty room.")
	}

	playerID := gm.state.PlayerID()
	for _, entity := range others {
		if gm.ledger.Knows(playerID, entity.UniqueID) {
			continue
		}
		perception := gm.generatePerception(ctx, entity.UniqueID, entity.Data)
		gm.ledger.AddFact(playerID, entity.UniqueID, perception)
	}

	var descriptions []string
	for _, entity := range others {
		descriptions = append(descriptions, gm.ledger.Facts(playerID, entity.UniqueID)...)
	}
	if len(descriptions) == 0 {
		return location.Description("It is an empty room.")
	}
	return location.Description("You are in a room.") + " " + strings.Join(descriptions, " ")
}

// examine resolves the fuzzy target reference against co-located candidates,
// mints new facts for the resolved subject, and renders everything known
// about it. Failed resolution is a normal outcome and creates no state.
func (gm *GameMaster) examine(ctx context.Context, targetString string) string {
	locationID := gm.state.Location()
	if gm.store.Get(locationID) == nil {
		return fmt.Sprintf("The location '%s' is not recognized.", locationID)
	}

	candidates := gm.colocatedEntities(locationID)
	if len(candidates) == 0 {
		return "There is nothing here to examine."
	}

	playerID := gm.state.PlayerID()
	subjectID := gm.resolveTarget(ctx, targetString, playerID, candidates)
	if subjectID == "" {
		return fmt.Sprintf("I see nothing here that matches '%s'.", targetString)
	}

	subject := gm.store.Get(subjectID)
	if subject == nil {
		return "Error: Could not find the specified entity."
	}

	action := fmt.Sprintf("examine %s", targetString)
	for _, fact := range gm.generateFacts(ctx, playerID, action, subject) {
		gm.ledger.AddFact(playerID, subject.UniqueID, fact)
	}

	allFacts := gm.ledger.Facts(playerID, subject.UniqueID)
	name := subject.DisplayName()
	if len(allFacts) == 0 {
		return fmt.Sprintf("You examine the %s and find nothing of interest.", name)
	}
	return fmt.Sprintf("You examine the %s:\n%s", name, strings.Join(allFacts, "\n"))
}

// goTo is deliberately unimplemented. It must not mutate game state.
func (gm *GameMaster) goTo(destination string) string {
	return fmt.Sprintf("OK. I can't go to '%s' yet. The game doesn't support that action.", destination)
}

func (gm *GameMaster) giveMoney(args map[string]any) string {
	recipient := stringArg(args, "recipient_name")
	if recipient == "" {
		return "(Error: Tool call missing recipient_name)"
	}
	amount, ok := intArg(args, "amount")
	if !ok {
		return "(Error: Invalid amount for give_money)"
	}
	msg, _ := gm.exchange.TransferMoney(gm.state.PlayerID(), recipient, amount)
	return msg
}

func (gm *GameMaster) giveItem(args map[string]any) string {
	recipient := stringArg(args, "recipient_name")
	if recipient == "" {
		return "(Error: Tool call missing recipient_name)"
	}
	item := stringArg(args, "item_name")
	if item == "" {
		item = stringArg(args, "item_id")
	}
	if item == "" {
		return "(Error: Missing or invalid item_name for give_item)"
	}
	msg, _ := gm.exchange.TransferItem(gm.state.PlayerID(), recipient, item)
	return msg
}

// colocatedEntities returns everything sharing the player's location, minus
// the player and the location itself.
func (gm *GameMaster) colocatedEntities(locationID string) []*world.Entity {
	playerID := gm.state.PlayerID()
	var out []*world.Entity
	for _, e := range gm.store.ByDataProperty("location_id", locationID) {
		if e.UniqueID == playerID || e.UniqueID == locationID {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (gm *GameMaster) logTurn(input, toolName, toolResult, response string, started time.Time) {
	if gm.turns == nil {
		return
	}
	err := gm.turns.LogTurn(logging.Turn{
		SessionID:  gm.sessionID,
		Input:      input,
		ToolName:   toolName,
		ToolResult: toolResult,
		Response:   response,
		Elapsed:    time.Since(started),
	})
	if err != nil {
		gm.log.Printf("Failed to log turn: %v", err)
	}
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

func intArg(args map[string]any, key string) (int, bool) {
	switch n := args[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
