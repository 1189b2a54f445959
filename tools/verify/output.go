package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/julianstephens/bible-app-data/internal/canon"
	"github.com/julianstephens/bible-app-data/internal/config"
	"github.com/julianstephens/bible-app-data/internal/convert"
	"github.com/julianstephens/bible-app-data/pkg/appdata"
	"github.com/julianstephens/bible-app-data/tools/util"
)

type outputTarget struct {
	path   string
	scheme canon.Scheme
}

func (c *OutputCmd) targets() ([]outputTarget, error) {
	if len(c.Files) > 0 {
		scheme, err := canon.ParseScheme(c.Scheme)
		if err != nil {
			return nil, err
		}
		targets := make([]outputTarget, len(c.Files))
		for i, f := range c.Files {
			targets[i] = outputTarget{path: f, scheme: scheme}
		}
		return targets, nil
	}

	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, errors.Wrap(err, "loading job file")
		}
		cfg = loaded
	}
	targets := make([]outputTarget, len(cfg.Jobs))
	for i, job := range cfg.Jobs {
		job = job.WithRoot(c.Root)
		targets[i] = outputTarget{path: job.Output, scheme: job.ParsedScheme()}
	}
	return targets, nil
}

func (c *OutputCmd) Run(spinner *util.Spinner, out io.Writer) error {
	targets, err := c.targets()
	if err != nil {
		spinner.Stop()
		return err
	}

	var (
		lines       []string
		totalErrors int
		warnings    int
	)
	for _, target := range targets {
		findings, err := validateOutputFile(target.path, target.scheme)
		if err != nil {
			lines = append(lines, fmt.Sprintf("Validation error in %s: %v", target.path, err))
			totalErrors++
			continue // Nothing more can be checked in an unreadable file
		}
		for _, f := range findings {
			label := "error"
			if f.Warning {
				label = "warning"
				warnings++
			} else {
				totalErrors++
			}
			lines = append(lines, fmt.Sprintf("%s %s: %s", target.path, label, describe(f)))
		}
	}

	spinner.Stop()

	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, "========================================")
	fmt.Fprintf(out, "Total Files Validated: %d\n", len(targets))
	fmt.Fprintf(out, "Total Errors Found: %d\n", totalErrors)
	fmt.Fprintf(out, "Total Warnings: %d\n", warnings)
	fmt.Fprintln(out, "========================================")

	if totalErrors > 0 {
		return errors.New("validation completed with errors. Please review the output above for details")
	}
	fmt.Fprintln(out, "Validation completed successfully with no errors")
	return nil
}

func describe(f convert.ValidationError) string {
	loc := ""
	switch {
	case f.Book > 0 && f.Chapter > 0:
		loc = fmt.Sprintf("book %d chapter %d: ", f.Book, f.Chapter)
	case f.Book > 0:
		loc = fmt.Sprintf("book %d: ", f.Book)
	}
	return loc + f.Message
}

// validateOutputFile checks the translation statement of a data file and,
// when present, that every id in the book map names a book of it.
func validateOutputFile(path string, scheme canon.Scheme) ([]convert.ValidationError, error) {
	content, err := os.ReadFile(path) // nolint: gosec
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}

	stmts, err := appdata.ParseStatements(content)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, errors.New("no statements found")
	}

	var bundle appdata.Bundle
	if err := json.Unmarshal(stmts[0].Value, &bundle); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", stmts[0].Declaration)
	}
	findings := convert.NewValidator(scheme).Validate(&bundle)

	if len(stmts) > 1 {
		bookMap := appdata.NewBookMap()
		if err := json.Unmarshal(stmts[1].Value, bookMap); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", stmts[1].Declaration)
		}
		for _, name := range bookMap.Keys() {
			id, _ := bookMap.Get(name)
			if bundle.Book(id) == nil {
				findings = append(findings, convert.ValidationError{
					Book:    id,
					Type:    "map",
					Message: fmt.Sprintf("%s entry %q points to a missing book", stmts[1].Declaration, name),
				})
			}
		}
	}
	return findings, nil
}
