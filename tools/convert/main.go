package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/bible-app-data/tools/util"
)

type Globals struct {
	Config  string `type:"existingfile" help:"YAML job file replacing the built-in jobs"`
	Root    string `type:"existingdir"  help:"Directory relative job paths are resolved against" default:"."`
	Verbose bool   `short:"v"           help:"Enable debug logging"`
	Strict  bool   `help:"Exit with an error when the produced data fails validation"`
}

type CLI struct {
	Globals

	KTB  KTBCmd  `cmd:"" name:"ktb" help:"Convert the KTB MyBible module"`
	KYB  KYBCmd  `cmd:"" name:"kyb" help:"Convert the KYB MyBible module"`
	RST  RSTCmd  `cmd:"" name:"rst" help:"Rebuild the RST data file with fixed book names and Psalm numbering"`
	Job  JobCmd  `cmd:"" help:"Run a job by name"`
	All  AllCmd  `cmd:"" help:"Run every job in order"`
	List ListCmd `cmd:"" help:"List the configured jobs"`
}

func main() {
	cli := CLI{}
	kongCtx := kong.Parse(
		&cli,
		kong.Name("bible-convert"),
		kong.Description("Bible App Data Converter"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := NewApp(ctx, cli.Globals, util.NewLogger(os.Stderr, cli.Verbose))
	kongCtx.FatalIfErrorf(err)
	kongCtx.FatalIfErrorf(kongCtx.Run(app))
}
