package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/skyflap/common"
	"github.com/milk9111/skyflap/session"
	"github.com/milk9111/skyflap/store"
	"github.com/milk9111/skyflap/tuning"
)

func main() {
	common.LoadEnv()

	seed := flag.Int64("seed", common.EnvInt64("SKYFLAP_SEED", 0), "random seed (0 = time based)")
	tuningDir := flag.String("tuning", common.EnvString("SKYFLAP_TUNING_DIR", tuning.DefaultDir), "tuning override directory")
	savePath := flag.String("save", common.EnvString("SKYFLAP_SAVE_PATH", "skyflap_save.yaml"), "save file path")
	debug := flag.Bool("debug", false, "enable debug overlay and event logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	tuning.SetDir(*tuningDir)

	var st session.Store
	if f, err := store.Open(*savePath); err != nil {
		log.Printf("save: %v; progress will not be kept", err)
		st = store.NewMemory()
	} else {
		st = f
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	s, err := session.New(session.Config{
		Store: st,
		Rand:  rand.New(rand.NewSource(*seed)),
	})
	if err != nil {
		log.Fatal(err)
	}

	var watcher *tuning.Watcher
	if info, err := os.Stat(*tuningDir); err == nil && info.IsDir() {
		if watcher, err = tuning.NewWatcher(*tuningDir); err != nil {
			log.Printf("tuning: watch %s: %v", *tuningDir, err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("skyflap")

	if err := ebiten.RunGame(NewGame(s, watcher, *debug)); err != nil {
		log.Fatal(err)
	}
}
