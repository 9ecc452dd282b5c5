package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/idilsaglam/board/internal/auth"
	"github.com/idilsaglam/board/internal/cli"
	"github.com/idilsaglam/board/internal/config"
	"github.com/idilsaglam/board/internal/state"
	"github.com/idilsaglam/board/internal/store/jsonstore"
	"github.com/idilsaglam/board/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", config.DefaultPath, "path to YAML config file")
	dataFile := flag.String("data", "", "project file (overrides data.file)")
	group := flag.Bool("group", true, "group ls output by active/finished")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dataFile != "" {
		cfg.Data.File = *dataFile
	}
	if err := ui.SetColorMode(cfg.UI.Color); err != nil {
		log.Fatalf("Failed to apply ui.color: %v", err)
	}
	ui.SetTheme(cfg.UI.Theme)

	items, err := jsonstore.Load(cfg.Data.File)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", cfg.Data.File, err)
	}
	board := state.NewProjects(state.WithProjects(items))
	var autosaveErr func() error
	if cfg.Data.Autosave {
		saver := jsonstore.NewAutosave(cfg.Data.File, func(err error) {
			log.Printf("autosave %s: %v", cfg.Data.File, err)
		})
		board.Subscribe(saver.Observe)
		autosaveErr = saver.Err
	}

	creds, err := auth.DefaultStore()
	if err != nil {
		log.Printf("credentials unavailable: %v", err)
	}

	code := cli.Run(args, cli.Options{
		Group:       *group,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Config:      cfg,
		Board:       board,
		Auth:        creds,
		Autosaved:   cfg.Data.Autosave,
		AutosaveErr: autosaveErr,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
