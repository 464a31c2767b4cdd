package main

import (
	"flag"
	"os"

	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/ecs/entity"
	"github.com/milk9111/gungame/ecs/system"
	"github.com/milk9111/gungame/levels"
	"github.com/milk9111/gungame/logger"
	"gopkg.in/yaml.v3"
)

type frame struct {
	Tick   int                    `yaml:"tick"`
	Agents []system.AgentSnapshot `yaml:"agents"`
}

type timeline struct {
	Level       string              `yaml:"level"`
	Ticks       int                 `yaml:"ticks"`
	Transitions []system.Transition `yaml:"transitions"`
	Frames      []frame             `yaml:"frames"`
}

// walkSystem holds the player's move input, standing in for a keyboard.
type walkSystem struct {
	dir float64
}

func (s *walkSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, in *component.Input) {
		in.MoveX = s.dir
	})
}

func main() {
	levelName := flag.String("level", "arena", "level name in levels/ or a path on disk")
	ticks := flag.Int("ticks", 600, "number of fixed ticks to simulate")
	every := flag.Int("every", 60, "record agent snapshots every N ticks (0 disables)")
	walk := flag.Float64("walk", 0, "player move input for the whole run, -1..1")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	logger.Init()
	logger.Log.SetOutput(os.Stderr)
	if *debug {
		logger.SetDebug()
	}

	lvl, err := levels.Load(*levelName)
	if err != nil {
		logger.Log.WithError(err).Fatal("load level")
	}

	w := ecs.NewWorld()
	if err := entity.LoadLevel(w, lvl); err != nil {
		logger.Log.WithError(err).Fatal("spawn level")
	}
	w.AddSystem(&walkSystem{dir: *walk})
	p := system.Install(w, true, nil)
	p.Events.Record = true

	out := timeline{Level: lvl.Name, Ticks: *ticks}
	for tick := 1; tick <= *ticks; tick++ {
		w.Update()
		if *every > 0 && tick%*every == 0 {
			out.Frames = append(out.Frames, frame{Tick: tick, Agents: system.Snapshots(w)})
		}
	}

	out.Transitions = p.Events.History

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		logger.Log.WithError(err).Fatal("write timeline")
	}
	_ = enc.Close()
}
