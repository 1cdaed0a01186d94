package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Play many rounds and report per-player statistics"`
	Play     PlayCmd          `cmd:"" help:"Play one round against a chosen opponent"`
	Sweep    SweepCmd         `cmd:"" help:"Run the same simulation across many seeds in parallel"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack rules engine and strategy simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
