package main

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/julianstephens/bible-app-data/tools/util"
)

const ManifestFileName = "SHA256MANIFEST"

type manifestReport struct {
	lines      []string
	total      int
	mismatches int
	errors     int
}

func (s *SourcesCmd) Run(spinner *util.Spinner, out io.Writer) error {
	if s.Update {
		n, err := writeManifest(s.Manifest)
		spinner.Stop()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d entries to %s\n", n, s.Manifest)
		return nil
	}

	report, err := checkManifest(s.Manifest)
	spinner.Stop()
	if err != nil {
		return err
	}

	for _, line := range report.lines {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, "========================================")
	fmt.Fprintf(out, "Total Files Verified: %d\n", report.total)
	fmt.Fprintf(out, "Hash Mismatches: %d\n", report.mismatches)
	fmt.Fprintf(out, "Read Errors: %d\n", report.errors)
	fmt.Fprintln(out, "========================================")

	if report.mismatches > 0 || report.errors > 0 {
		return errors.Errorf("manifest validation failed: %d mismatches, %d errors", report.mismatches, report.errors)
	}

	fmt.Fprintln(out, "Manifest validation completed successfully")
	return nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path) // nolint: gosec
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// checkManifest verifies every "hash  path" line of a manifest. Relative
// paths are resolved against the manifest's directory.
func checkManifest(manifestPath string) (*manifestReport, error) {
	file, err := os.Open(manifestPath) // nolint: gosec
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("manifest file not found: %s", manifestPath)
		}
		return nil, errors.Wrap(err, "failed to open manifest file")
	}
	defer file.Close()

	dir := filepath.Dir(manifestPath)
	report := &manifestReport{}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			report.lines = append(report.lines, fmt.Sprintf("Manifest error: invalid line format - %s", line))
			report.errors++
			continue
		}

		expectedHash := strings.ToLower(parts[0])
		filePath := strings.Join(parts[1:], " ") // Handle paths with spaces
		if !filepath.IsAbs(filePath) {
			filePath = filepath.Join(dir, filePath)
		}

		report.total++

		actualHash, err := hashFile(filePath)
		if err != nil {
			report.lines = append(report.lines, fmt.Sprintf("Manifest error: cannot read file %s - %v", filePath, err))
			report.errors++
			continue
		}

		if actualHash != expectedHash {
			report.lines = append(report.lines, fmt.Sprintf("Hash mismatch for %s: expected %s, got %s", filePath, expectedHash, actualHash))
			report.mismatches++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading manifest file")
	}
	return report, nil
}

// writeManifest hashes every regular file next to the manifest and below it.
func writeManifest(manifestPath string) (int, error) {
	dir := filepath.Dir(manifestPath)

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && path != manifestPath && d.Name() != ManifestFileName {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "listing source files")
	}
	sort.Strings(files)

	var b strings.Builder
	for _, rel := range files {
		sum, err := hashFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return 0, errors.Wrapf(err, "hashing %s", rel)
		}
		fmt.Fprintf(&b, "%s  %s\n", sum, rel)
	}

	if err := os.WriteFile(manifestPath, []byte(b.String()), 0644); err != nil { // nolint: gosec
		return 0, errors.Wrap(err, "writing manifest")
	}
	return len(files), nil
}
