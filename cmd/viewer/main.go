package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/softbody/internal/config"
	"github.com/zeusync/softbody/internal/core/events/bus"
	"github.com/zeusync/softbody/internal/core/observability/log"
	"github.com/zeusync/softbody/internal/core/systems/physics"
	"github.com/zeusync/softbody/internal/injector"
	"github.com/zeusync/softbody/internal/render/terminal"
)

const softenFactor = 0.5

type viewer struct {
	screen tcell.Screen
	sink   *terminal.Sink
	arena  *physics.Arena
	cfg    *config.Config
	soft   bool
	paused bool
}

func main() {
	configPath := flag.String("config", os.Getenv("SOFTBODY_CONFIG"), "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "viewer:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	arena, err := buildArena(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := &viewer{
		screen: screen,
		sink:   terminal.NewSink(screen, cfg.Arena.Bounds),
		arena:  arena,
		cfg:    cfg,
	}
	return v.loop()
}

// buildArena builds the arena the server would run, without logging: the
// terminal belongs to tcell.
func buildArena(cfg *config.Config) (*physics.Arena, error) {
	return injector.ProvideArena(cfg, log.NewNop(), bus.New())
}

func (v *viewer) loop() error {
	ticker := time.NewTicker(v.cfg.FrameInterval())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			quit, err := v.handleInput(ev)
			if err != nil || quit {
				return err
			}
		case <-ticker.C:
			if !v.paused {
				if err := v.arena.Step(v.cfg.FrameDt()); err != nil {
					return err
				}
			}
			v.draw()
		}
	}
}

func (v *viewer) handleInput(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true, nil
		}
		if ev.Key() != tcell.KeyRune {
			return false, nil
		}
		switch ev.Rune() {
		case 'q':
			return true, nil
		case 'p':
			v.paused = !v.paused
		case ' ':
			return false, v.toggleSoften()
		case 'h', 'l', 'k':
			v.push(ev.Rune())
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return false, nil
}

func (v *viewer) toggleSoften() error {
	v.soft = !v.soft
	for _, b := range v.arena.Bodies() {
		if !v.soft {
			b.Harden()
			continue
		}
		if err := b.Soften(softenFactor); err != nil {
			return err
		}
	}
	return nil
}

func (v *viewer) push(key rune) {
	bodies := v.arena.Bodies()
	if len(bodies) == 0 {
		return
	}
	var f physics.Vec2
	switch key {
	case 'h':
		f = physics.V(-20000, 0)
	case 'l':
		f = physics.V(20000, 0)
	case 'k':
		f = physics.V(0, -60000)
	}
	bodies[0].Push(f)
}

func (v *viewer) draw() {
	v.screen.Clear()
	v.arena.DebugRender(v.sink)

	status := fmt.Sprintf(" frame %d  soft %v  paused %v  [h/l/k push, space soften, p pause, q quit] ",
		v.arena.Frame(), v.soft, v.paused)
	for i, r := range status {
		v.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}
