package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Makepad-fr/dayplan/internal/cli"
	"github.com/Makepad-fr/dayplan/internal/conf"
	"github.com/Makepad-fr/dayplan/internal/logging"
	"github.com/Makepad-fr/dayplan/internal/persist"
	"github.com/Makepad-fr/dayplan/internal/store"
	"github.com/Makepad-fr/dayplan/internal/tasks"
	"github.com/Makepad-fr/dayplan/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	confPath := flag.String("conf", "", "config file (default "+conf.DefaultConfigPath()+")")
	groupPending := flag.Bool("group", false, "group output by pending/done")
	theme := flag.String("theme", "", "classic|neon|mono")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		os.Exit(cli.Run(args, cli.Options{}))
	}
	os.Exit(run(*confPath, *theme, *groupPending, args))
}

func run(confPath, theme string, group bool, args []string) int {
	bc, err := conf.Load(confPath)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return cli.ExitError
	}

	// The TUI owns the terminal; logs go nowhere unless a file is configured.
	var fallback io.Writer = os.Stderr
	if args[0] == "ui" {
		fallback = io.Discard
	}
	logger, closeLog, err := logging.New(bc.Logging, fallback)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return cli.ExitError
	}
	defer closeLog()
	log.SetLogger(logger)

	if theme == "" {
		theme = bc.UI.Theme
	}
	ui.SetTheme(theme)
	ui.SetColorMode(bc.UI.Color)

	adapter, kv, err := store.OpenAdapter(bc.Storage, persist.WithLogger(logger))
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return cli.ExitError
	}
	defer func() {
		if err := kv.Close(); err != nil {
			fmt.Fprintln(os.Stderr, ui.Dim("close storage: "+err.Error()))
		}
	}()

	st := tasks.New(adapter, tasks.WithLogger(logger))
	code := cli.Run(args, cli.Options{
		Store:  st,
		Group:  group || bc.UI.Group,
		Logger: logger,
	})
	if code != cli.ExitOK {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
