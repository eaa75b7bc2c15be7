package server

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/softbody/internal/core/systems/physics"
)

type CommandKind string

const (
	CommandPush     CommandKind = "push"
	CommandTeleport CommandKind = "teleport"
	CommandSoften   CommandKind = "soften"
	CommandHarden   CommandKind = "harden"
	CommandShape    CommandKind = "shape"
)

// Command is a request to change a body. Commands are queued and applied by
// the runner between frames.
type Command struct {
	Kind   CommandKind  `json:"type"`
	Body   uuid.UUID    `json:"body"`
	Vector physics.Vec2 `json:"vector"`
	Factor float64      `json:"factor,omitempty"`
	Mode   string       `json:"mode,omitempty"`
}

func (c Command) Validate() error {
	switch c.Kind {
	case CommandPush, CommandTeleport:
		if !c.Vector.IsFinite() {
			return fmt.Errorf("%w: %s vector %v", ErrInvalidCommand, c.Kind, c.Vector)
		}
	case CommandSoften:
		if c.Factor <= 0 || c.Factor > 1 {
			return fmt.Errorf("%w: soften factor %v out of (0, 1]", ErrInvalidCommand, c.Factor)
		}
	case CommandHarden:
	case CommandShape:
		if _, err := physics.ParseMode(c.Mode); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCommand, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Kind)
	}
	return nil
}

// Apply runs the command against the arena. It must only be called from the
// goroutine that steps the arena.
func (c Command) Apply(a *physics.Arena) error {
	if err := c.Validate(); err != nil {
		return err
	}
	b, err := a.Body(c.Body)
	if err != nil {
		return err
	}
	switch c.Kind {
	case CommandPush:
		b.Push(c.Vector)
	case CommandTeleport:
		return b.Teleport(c.Vector)
	case CommandSoften:
		return b.Soften(c.Factor)
	case CommandHarden:
		b.Harden()
	case CommandShape:
		mode, _ := physics.ParseMode(c.Mode)
		b.SetShapeMode(mode)
	}
	return nil
}
