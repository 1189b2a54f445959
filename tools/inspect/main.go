package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/julianstephens/bible-app-data/internal/mybible"
	"github.com/julianstephens/bible-app-data/tools/util"
)

type BooksCmd struct {
	Archive string `arg:"" optional:"" type:"existingfile" help:"MyBible zip archive" default:"sources/kaz_bible.zip"`
}

type InfoCmd struct {
	Database string `arg:"" type:"existingfile" help:"MyBible module (.SQLite3) or zip archive holding one"`
}

type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Books BooksCmd `cmd:"" help:"List the archive entries and the books of the module inside"`
	Info  InfoCmd  `cmd:"" help:"Print the info table of a module"`
}

func main() {
	cli := CLI{}
	kongCtx := kong.Parse(
		&cli,
		kong.Name("bible-inspect"),
		kong.Description("MyBible Module Inspector"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	log := util.NewLogger(os.Stderr, cli.Verbose)
	kongCtx.BindTo(context.Background(), (*context.Context)(nil))
	kongCtx.BindTo(os.Stdout, (*io.Writer)(nil))
	kongCtx.FatalIfErrorf(kongCtx.Run(log))
}

// openModule opens path directly or, for a zip archive, extracts the module
// into a fresh temporary directory. The returned cleanup removes it.
func openModule(path string, log logrus.FieldLogger, out io.Writer) (*mybible.DB, func(), error) {
	if mybible.IsModule(path) {
		db, err := mybible.Open(path)
		return db, func() {}, err
	}

	dir, err := os.MkdirTemp("", "mybible-inspect-")
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating temp dir")
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warnf("Failed to remove %s: %v", dir, err)
		}
	}

	log.Infof("Extracting %s...", path)
	names, err := mybible.ListArchive(path)
	if err != nil {
		cleanup()
		return nil, nil, errors.Wrap(err, "error extracting")
	}
	for _, n := range names {
		fmt.Fprintf(out, "  Found file in zip: %s\n", n)
	}

	dbPath, err := mybible.ExtractModule(path, dir)
	if err != nil {
		cleanup()
		return nil, nil, errors.Wrap(err, "error extracting")
	}
	log.Infof("Connecting to %s...", dbPath)

	db, err := mybible.Open(dbPath)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return db, cleanup, nil
}

func (c *BooksCmd) Run(ctx context.Context, log *logrus.Logger, out io.Writer) error {
	db, cleanup, err := openModule(c.Archive, log, out)
	if err != nil {
		return err
	}
	defer cleanup()
	defer db.Close()

	books, err := db.Books(ctx)
	if err != nil {
		return errors.Wrap(err, "error querying books")
	}

	fmt.Fprintf(out, "\n--- Books in DB (ordered by book_number) ---\n")
	for _, b := range books {
		fmt.Fprintf(out, "No: %d | Short: %s | Long: %s\n", b.Number, b.ShortName, b.LongName)
	}
	return nil
}

func (c *InfoCmd) Run(ctx context.Context, log *logrus.Logger, out io.Writer) error {
	db, cleanup, err := openModule(c.Database, log, out)
	if err != nil {
		return err
	}
	defer cleanup()
	defer db.Close()

	info, err := db.Info(ctx)
	if err != nil {
		return errors.Wrap(err, "error reading info table")
	}
	if len(info) == 0 {
		fmt.Fprintln(out, "No info table.")
		return nil
	}

	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %s\n", k, info[k])
	}
	return nil
}
