package convert

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"

	"github.com/julianstephens/bible-app-data/internal/config"
	"github.com/julianstephens/bible-app-data/internal/mybible"
	"github.com/julianstephens/bible-app-data/internal/textclean"
	"github.com/julianstephens/bible-app-data/pkg/appdata"
)

// Processor runs conversion jobs.
type Processor struct {
	root string
	log  logrus.FieldLogger
}

// NewProcessor creates a processor resolving relative job paths against root.
func NewProcessor(root string, log logrus.FieldLogger) *Processor {
	return &Processor{root: root, log: log}
}

// Process runs one job end to end.
func (proc *Processor) Process(ctx context.Context, job config.Job) (*ProcessResult, error) {
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job %s: %w", job.Name, err)
	}
	job = job.WithRoot(proc.root)
	log := proc.log.WithField("job", job.Name)

	result := &ProcessResult{
		Job:         job.Name,
		Translation: job.Name,
		Output:      job.Output,
		StartTime:   time.Now(),
	}

	var (
		stmts []appdata.Statement
		err   error
	)
	switch job.Kind {
	case config.KindMyBible:
		stmts, err = proc.processMyBible(ctx, job, result, log)
	case config.KindRST:
		stmts, err = proc.processRST(job, result, log)
	default:
		err = fmt.Errorf("unknown job kind %q", job.Kind)
	}
	if err != nil {
		return result, err
	}

	log.Infof("Writing to %s...", job.Output)
	data, err := appdata.WriteFile(job.Output, job.TrailingNewline, stmts...)
	if err != nil {
		return result, fmt.Errorf("failed to write output: %w", err)
	}
	result.Bytes = len(data)

	if job.Compress {
		result.Compressed = job.Output + ".zst"
		if err := writeCompressed(result.Compressed, data); err != nil {
			return result, fmt.Errorf("failed to write compressed output: %w", err)
		}
	}

	result.EndTime = time.Now()
	log.Info("Done!")
	return result, nil
}

func (proc *Processor) processMyBible(ctx context.Context, job config.Job, result *ProcessResult, log logrus.FieldLogger) ([]appdata.Statement, error) {
	src := mybible.Source{Database: job.Database, Archive: job.Archive, ExtractDir: job.ExtractDir}
	if _, err := os.Stat(job.Database); err != nil && job.Archive != "" {
		log.Infof("Extracting %s...", job.Archive)
	}
	path, _, err := src.Locate()
	if err != nil {
		return nil, err
	}
	result.Source = path

	db, err := mybible.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if info, err := db.Info(ctx); err == nil && info["description"] != "" {
		log.Debugf("Module: %s", info["description"])
	}

	builder := NewBuilder(job.Name, job.ParsedScheme(), textclean.Cleaner(job.StripMarkup), log)

	log.Info("Reading books...")
	books, err := db.Books(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range books {
		builder.AddBook(row)
	}
	log.Infof("Found %d books.", builder.Found())

	log.Info("Reading verses...")
	err = db.EachVerse(ctx, func(row mybible.Verse) error {
		builder.AddVerse(row)
		return ctx.Err()
	})
	if err != nil {
		return nil, err
	}

	bundle, bookMap, stats := builder.Finish(job.SortBooks)
	result.Stats = stats
	result.Errors = NewValidator(job.ParsedScheme()).Validate(bundle)
	log.Infof("Total verses: %d", stats.Verses)

	stmts := []appdata.Statement{{Declaration: job.DataVar, Value: bundle}}
	if job.MapVar != "" {
		stmts = append(stmts, appdata.Statement{Declaration: job.MapVar, Value: bookMap})
	}
	return stmts, nil
}

func (proc *Processor) processRST(job config.Job, result *ProcessResult, log logrus.FieldLogger) ([]appdata.Statement, error) {
	log.Infof("Reading %s...", job.Source)
	src, err := appdata.ReadJSONFile(job.Source)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	result.Source = job.Source
	result.Translation = RSTTranslation
	log.Infof("Found %d books.", len(src.Books))

	bundle, stats := BuildRST(src, log)
	result.Stats = stats
	result.Errors = NewValidator(job.ParsedScheme()).Validate(bundle)

	return []appdata.Statement{{Declaration: job.DataVar, Value: bundle}}, nil
}

func writeCompressed(path string, data []byte) error {
	f, err := os.Create(path) // nolint: gosec
	if err != nil {
		return err
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		f.Close()
		return err
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PrintResult prints the processing result in a readable format
func (proc *Processor) PrintResult(result *ProcessResult) {
	fmt.Printf("\n========================================\n")
	fmt.Printf("Translation: %s (%s)\n", result.Translation, result.Job)
	fmt.Printf("Source: %s\n", result.Source)
	fmt.Printf("Output: %s (%d bytes)\n", result.Output, result.Bytes)
	if result.Compressed != "" {
		fmt.Printf("Compressed: %s\n", result.Compressed)
	}
	fmt.Printf("Duration: %v\n", result.EndTime.Sub(result.StartTime))
	fmt.Printf("Books: %d\n", result.Stats.Books)
	fmt.Printf("Chapters: %d\n", result.Stats.Chapters)
	fmt.Printf("Verses: %d\n", result.Stats.Verses)

	if len(result.Stats.SkippedBooks) > 0 || result.Stats.SkippedVerses > 0 {
		fmt.Printf("\nSkipped:\n")
		fmt.Printf("  Unknown book numbers: %v\n", result.Stats.SkippedBooks)
		fmt.Printf("  Verses: %d\n", result.Stats.SkippedVerses)
	}
	if result.Stats.RenamedBooks > 0 || len(result.Stats.UntrustedBooks) > 0 {
		fmt.Printf("\nBook names:\n")
		fmt.Printf("  Fixed: %d\n", result.Stats.RenamedBooks)
		if len(result.Stats.UntrustedBooks) > 0 {
			fmt.Printf("  Untrusted: %v\n", result.Stats.UntrustedBooks)
		}
	}
	if result.Stats.PsalmMarkers > 0 || result.Stats.PsalmErrors > 0 {
		fmt.Printf("\nPsalms:\n")
		fmt.Printf("  Markers: %d\n", result.Stats.PsalmMarkers)
		fmt.Printf("  Moved verses: %d\n", result.Stats.PsalmMoves)
		fmt.Printf("  Marker errors: %d\n", result.Stats.PsalmErrors)
	}

	PrintValidation(result.Errors)
	fmt.Printf("========================================\n\n")
}

// PrintValidation lists validation findings, errors first.
func PrintValidation(errs []ValidationError) {
	var warnings int
	for _, e := range errs {
		if e.Warning {
			warnings++
		}
	}
	if len(errs)-warnings == 0 {
		fmt.Printf("Status: SUCCESS")
		if warnings > 0 {
			fmt.Printf(" (%d warnings)", warnings)
		}
		fmt.Println()
	} else {
		fmt.Printf("Errors: %d\n", len(errs)-warnings)
	}

	n := 0
	for _, pass := range []bool{false, true} {
		for _, e := range errs {
			if e.Warning != pass {
				continue
			}
			n++
			if n > 20 {
				fmt.Printf("  ... and %d more\n", len(errs)-20)
				return
			}
			label := "error"
			if e.Warning {
				label = "warning"
			}
			fmt.Printf("  %d. %s [%s] book %d chapter %d: %s\n", n, label, e.Type, e.Book, e.Chapter, e.Message)
			if e.Expected != nil {
				fmt.Printf("     Expected: %v\n", e.Expected)
			}
			if e.Actual != nil {
				fmt.Printf("     Actual: %v\n", e.Actual)
			}
		}
	}
}
