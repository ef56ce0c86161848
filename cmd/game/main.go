package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/reelworks/slotpanel/internal/slot"
)

func main() {
	var configPath string
	var assetsDir string
	var verbose bool
	flag.StringVar(&configPath, "config", "config.yaml", "path to the panel config file")
	flag.StringVar(&assetsDir, "assets", "", "skin upload directory (overrides config)")
	flag.BoolVar(&verbose, "verbose", false, "record verbose control-log entries")
	flag.Parse()

	cfg := slot.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := slot.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if assetsDir != "" {
		cfg.AssetsDir = assetsDir
	}

	manifest, err := slot.ManifestFromDir(cfg.AssetsDir)
	if err != nil {
		log.Fatal(err)
	}

	sched := slot.NewScheduler()
	clog := slot.NewControlLog(verbose)
	panel, err := slot.NewControlPanel(cfg, manifest, sched, clog)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Slot Panel")
	ebiten.SetWindowSize(slot.ScreenWidth, slot.ScreenHeight)
	if err := ebiten.RunGame(slot.NewApp(panel, sched, clog)); err != nil {
		log.Fatal(err)
	}
}
