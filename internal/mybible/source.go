package mybible

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Extension is the MyBible Bible module suffix.
const Extension = ".SQLite3"

// ErrNoDatabase is returned when an archive holds no module.
var ErrNoDatabase = errors.New("no SQLite3 file found in archive")

// IsModule reports whether name looks like a MyBible Bible module.
func IsModule(name string) bool {
	return strings.HasSuffix(name, Extension)
}

// ListArchive returns the entry names of a zip archive.
func ListArchive(zipPath string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// ExtractModule extracts the first module entry of a zip archive into dir and
// returns the extracted path. Entry directories are kept below dir.
func ExtractModule(zipPath, dir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !IsModule(f.Name) {
			continue
		}
		target, err := entryPath(dir, f.Name)
		if err != nil {
			return "", err
		}
		if err := extractEntry(f, target); err != nil {
			return "", err
		}
		return target, nil
	}
	return "", ErrNoDatabase
}

// entryPath joins an archive entry name onto dir, refusing names that
// escape it.
func entryPath(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry escapes extract dir: %s", name)
	}
	return target, nil
}

func extractEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	return writeFile(target, rc)
}

// DecompressXZ writes the xz-compressed file src to dst.
func DecompressXZ(src, dst string) error {
	in, err := os.Open(src) // nolint: gosec
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	r, err := xz.NewReader(in)
	if err != nil {
		return fmt.Errorf("reading xz stream %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return writeFile(dst, r)
}

func writeFile(target string, r io.Reader) error {
	out, err := os.Create(target) // nolint: gosec
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil { // nolint: gosec
		out.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return out.Close()
}

// Source says where a module comes from.
type Source struct {
	Database   string // module path, used as is when it exists
	Archive    string // zip holding the module, used when Database is missing
	ExtractDir string // where the archive is extracted
}

// Locate returns a path to an openable module, extracting or decompressing
// it first when needed. extracted reports whether a file was written.
func (s Source) Locate() (path string, extracted bool, err error) {
	if s.Database != "" {
		if _, err := os.Stat(s.Database); err == nil {
			return s.Database, false, nil
		}
		if _, err := os.Stat(s.Database + ".xz"); err == nil {
			if err := DecompressXZ(s.Database+".xz", s.Database); err != nil {
				return "", false, err
			}
			return s.Database, true, nil
		}
	}

	if s.Archive == "" {
		return "", false, fmt.Errorf("database not found at %s", s.Database)
	}
	if _, err := os.Stat(s.Archive); err != nil {
		return "", false, fmt.Errorf("archive not found at %s: %w", s.Archive, err)
	}

	dir := s.ExtractDir
	if dir == "" {
		dir = filepath.Dir(s.Database)
	}
	path, err = ExtractModule(s.Archive, dir)
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}
