// Package actions executes world mutations requested by the generation
// backend. The registry of handlers is the system's sole privilege
// boundary: backend output is untrusted, and nothing outside this gate may
// mutate world state on its behalf.
package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/npc-engine/internal/state"
	"github.com/jwebster45206/npc-engine/pkg/interaction"
	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// Action type names accepted by the executor.
const (
	ActionGiveItem      = "GiveItem"
	ActionStartQuest    = "StartQuest"
	ActionSetReputation = "SetReputation"
)

// Errors reported to the caller via the response's actionError field.
var (
	ErrNoAction      = errors.New("no action")
	ErrInvalidParams = errors.New("invalid params")
)

// Context carries the shared state a handler may touch.
type Context struct {
	NPC   *npc.Profile
	World *state.WorldStore
}

// Handler performs one bounded mutation for a recognized action type.
type Handler func(ctx context.Context, params map[string]any, actx Context) error

// Executor validates actions against a closed registry and runs them.
type Executor struct {
	handlers map[string]Handler
	logger   *slog.Logger
}

// NewExecutor builds the executor with the full allow-list registered.
// Adding an action means adding a handler here; there is no dynamic
// registration path.
func NewExecutor(logger *slog.Logger) *Executor {
	e := &Executor{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
	e.handlers[ActionGiveItem] = giveItem
	e.handlers[ActionStartQuest] = startQuest
	e.handlers[ActionSetReputation] = setReputation
	return e
}

// Execute validates and runs the action. Unrecognized types and invalid
// params return an error without mutating any state.
func (e *Executor) Execute(ctx context.Context, action *interaction.Action, actx Context) error {
	if action == nil || action.Type == "" {
		return ErrNoAction
	}

	handler, ok := e.handlers[action.Type]
	if !ok {
		return fmt.Errorf("action %s not allowed", action.Type)
	}

	if err := handler(ctx, action.Params, actx); err != nil {
		return err
	}

	e.logger.Debug("Action executed", "type", action.Type, "npc", actx.NPC.ID)
	return nil
}

func stringParam(params map[string]any, key string) (string, bool) {
	if params == nil {
		return "", false
	}
	value, ok := params[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// giveItem appends an item id to the player's inventory.
func giveItem(ctx context.Context, params map[string]any, actx Context) error {
	itemID, ok := stringParam(params, "itemId")
	if !ok {
		return ErrInvalidParams
	}

	actx.World.Commit(ctx, func(s *world.State) {
		s.Player.Inventory = append(s.Player.Inventory, itemID)
	})
	return nil
}

// startQuest adds a quest id to the active quest list. Starting a quest
// that is already active is a no-op, keeping the mutation idempotent.
func startQuest(ctx context.Context, params map[string]any, actx Context) error {
	questID, ok := stringParam(params, "questId")
	if !ok {
		return ErrInvalidParams
	}

	actx.World.Commit(ctx, func(s *world.State) {
		for _, q := range s.ActiveQuests {
			if q == questID {
				return
			}
		}
		s.ActiveQuests = append(s.ActiveQuests, questID)
	})
	return nil
}

// reputationLevels is the closed set of player reputation values.
var reputationLevels = map[string]bool{
	"hostile":    true,
	"unfriendly": true,
	"neutral":    true,
	"friendly":   true,
	"trusted":    true,
}

// setReputation sets the player's reputation to one of the known levels.
func setReputation(ctx context.Context, params map[string]any, actx Context) error {
	level, ok := stringParam(params, "level")
	if !ok || !reputationLevels[level] {
		return ErrInvalidParams
	}

	actx.World.Commit(ctx, func(s *world.State) {
		s.Player.Reputation = level
	})
	return nil
}
