package server

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/softbody/internal/core/observability/log"
	"github.com/zeusync/softbody/internal/core/systems/physics"
)

// Runner owns the arena. Only the runner goroutine touches it: queued
// commands are applied between frames and readers get copies through
// Latest.
type Runner struct {
	arena    *physics.Arena
	hub      *Hub
	logger   log.Log
	dt       float64
	interval time.Duration

	commands chan Command
	bodies   map[uuid.UUID]string
	latest   atomic.Pointer[physics.Snapshot]
	frames   atomic.Uint64
}

type RunnerConfig struct {
	FrameDt       float64
	FrameInterval time.Duration
	QueueSize     int
}

func NewRunner(arena *physics.Arena, hub *Hub, logger log.Log, cfg RunnerConfig) (*Runner, error) {
	if !arena.Sealed() {
		return nil, ErrArenaNotSealed
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	r := &Runner{
		arena:    arena,
		hub:      hub,
		logger:   logger.With(log.String("component", "runner")),
		dt:       cfg.FrameDt,
		interval: cfg.FrameInterval,
		commands: make(chan Command, cfg.QueueSize),
		bodies:   make(map[uuid.UUID]string, len(arena.Bodies())),
	}
	for _, b := range arena.Bodies() {
		r.bodies[b.ID] = b.Name
	}
	snap := arena.Snapshot()
	r.latest.Store(&snap)
	return r, nil
}

// HasBody reports whether id names a body of the arena. The body set is fixed
// once the arena is sealed, so this is safe from any goroutine.
func (r *Runner) HasBody(id uuid.UUID) bool {
	_, ok := r.bodies[id]
	return ok
}

// Latest returns the snapshot taken after the most recent frame.
func (r *Runner) Latest() physics.Snapshot { return *r.latest.Load() }

func (r *Runner) Frames() uint64 { return r.frames.Load() }

// Submit queues a command without blocking.
func (r *Runner) Submit(cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	select {
	case r.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Tick applies the queued commands and steps one frame.
func (r *Runner) Tick() error {
	r.drain()
	if err := r.arena.Step(r.dt); err != nil {
		return err
	}
	r.frames.Add(1)

	snap := r.arena.Snapshot()
	r.latest.Store(&snap)
	if r.hub != nil && r.hub.Len() > 0 {
		data, err := json.Marshal(snap)
		if err != nil {
			return err
		}
		r.hub.Broadcast(data)
	}
	return nil
}

func (r *Runner) drain() {
	for {
		select {
		case cmd := <-r.commands:
			if err := cmd.Apply(r.arena); err != nil {
				r.logger.Warn("command rejected",
					log.String("type", string(cmd.Kind)),
					log.String("body", cmd.Body.String()),
					log.Error(err),
				)
			}
		default:
			return
		}
	}
}

// Run steps the arena every frame interval until ctx is done or a frame
// fails.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("runner started",
		log.Duration("interval", r.interval),
		log.Int("bodies", len(r.bodies)),
	)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("runner stopped", log.Uint64("frames", r.frames.Load()))
			return nil
		case <-ticker.C:
			if err := r.Tick(); err != nil {
				r.logger.Error("frame failed", log.Uint64("frame", r.arena.Frame()), log.Error(err))
				return err
			}
		}
	}
}
