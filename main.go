package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gungame/common"
	"github.com/milk9111/gungame/logger"
)

func main() {
	debug := flag.Bool("debug", false, "draw agent ranges and states, log at debug level")
	watch := flag.Bool("watch", false, "reload prefabs and scripts from prefabs/ when they change")
	levelName := flag.String("level", "arena", "level name in levels/ (basename, .json optional) or a path on disk")
	flag.Parse()

	logger.Init()
	if *debug {
		logger.SetDebug()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("gungame")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(*levelName, *debug, *watch)
	if err != nil {
		logger.Log.WithError(err).Fatal("start game")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Log.WithError(err).Fatal("run game")
	}
}
