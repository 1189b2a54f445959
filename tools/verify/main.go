package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/bible-app-data/tools/util"
)

type PsalmsCmd struct {
	Files []string `arg:"" optional:"" help:"Data files to probe" default:"app/js/data/bible_data.js,app/js/data/nrt_data.js"`
}

type OffsetsCmd struct {
	Files []string `arg:"" optional:"" help:"Data files to probe" default:"app/js/data/bible_data.js,app/js/data/nrt_data.js"`
}

type OutputCmd struct {
	Files  []string `arg:"" optional:"" type:"existingfile" help:"Data files to validate (default: every job output)"`
	Config string   `type:"existingfile" help:"YAML job file replacing the built-in jobs"`
	Root   string   `type:"existingdir"  help:"Directory job paths are resolved against" default:"."`
	Scheme string   `help:"Numbering scheme of files given as arguments" default:"protestant"`
}

type SourcesCmd struct {
	Manifest string `type:"path" help:"SHA256 manifest listing the source files" default:"sources/SHA256MANIFEST"`
	Update   bool   `help:"Rewrite the manifest from the files next to it instead of checking it"`
}

type CLI struct {
	Psalms  PsalmsCmd  `cmd:"" help:"Print the first verse of Psalms 22 and 23"`
	Offsets OffsetsCmd `cmd:"" help:"Print the first verse of the Psalm chapters affected by renumbering"`
	Output  OutputCmd  `cmd:"" help:"Validate produced data files for structure and content correctness"`
	Sources SourcesCmd `cmd:"" help:"Check source files against their SHA256 manifest"`
}

func main() {
	kongCtx := kong.Parse(
		&CLI{},
		kong.Name("bible-verify"),
		kong.Description("Bible App Data Verification Tool"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	spinner := util.StartSpinner(os.Stderr, "Verifying")
	kongCtx.BindTo(os.Stdout, (*io.Writer)(nil))

	err := kongCtx.Run(spinner)
	spinner.Stop()
	kongCtx.FatalIfErrorf(err)
}
