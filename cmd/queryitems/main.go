package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &Config{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Cmd, "queryitems").
		WithSynopsis("queryitems [opts] [files]").
		WithDescription("Flatten JSON or YAML documents into bracketed query items, one name=value per line.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

type Config struct {
	Format  string `cli:"name=f aliases=format desc='input format: json/j or yaml/y (default: from file extension, else json)'"`
	Strict  bool   `cli:"name=strict desc='fail when two leaves render to the same name'"`
	Color   bool   `cli:"name=color desc='colour item names even when not writing to a terminal'"`
	NoColor bool   `cli:"name=no-color desc='never colour item names'"`
	Verbose bool   `cli:"name=v aliases=verbose desc='log debug output to stderr'"`

	Cmd *cli.Command
}
