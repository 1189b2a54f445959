// Package config defines the conversion jobs. The defaults reproduce the
// fixed project layout; a YAML file may replace them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/bible-app-data/internal/canon"
	"github.com/julianstephens/bible-app-data/pkg/appdata"
)

// Kind selects the converter of a job.
type Kind string

const (
	KindMyBible Kind = "mybible"
	KindRST     Kind = "rst"
)

// Job describes one translation conversion.
type Job struct {
	Name            string `yaml:"name"`
	Kind            Kind   `yaml:"kind"`
	Scheme          string `yaml:"scheme,omitempty"`
	Database        string `yaml:"database,omitempty"`
	Archive         string `yaml:"archive,omitempty"`
	ExtractDir      string `yaml:"extract_dir,omitempty"`
	Source          string `yaml:"source,omitempty"`
	Output          string `yaml:"output"`
	DataVar         string `yaml:"data_var"`
	MapVar          string `yaml:"map_var,omitempty"`
	SortBooks       bool   `yaml:"sort_books,omitempty"`
	TrailingNewline bool   `yaml:"trailing_newline,omitempty"`
	StripMarkup     bool   `yaml:"strip_markup,omitempty"`
	Compress        bool   `yaml:"compress,omitempty"`
}

// Config is the set of jobs.
type Config struct {
	Jobs []Job `yaml:"jobs"`
}

// Default returns the project's built-in jobs.
func Default() *Config {
	return &Config{Jobs: []Job{
		{
			Name:       "KTB",
			Kind:       KindMyBible,
			Scheme:     string(canon.Synodal),
			Database:   "ktb_temp/KTB'22.SQLite3",
			Archive:    "sources/kaz_bible.zip",
			ExtractDir: "ktb_temp",
			Output:     "app/js/data/ktb_data.js",
			DataVar:    "const KTB_DATA",
			MapVar:     "const KTB_BOOK_MAP",
		},
		{
			Name:            "KYB",
			Kind:            KindMyBible,
			Scheme:          string(canon.Protestant),
			Database:        "bible module/KYB.SQLite3",
			Output:          "app/js/data/kyb_data.js",
			DataVar:         "window.KYB_DATA",
			MapVar:          "const KYB_BOOK_MAP",
			SortBooks:       true,
			TrailingNewline: true,
		},
		{
			Name:    "RST",
			Kind:    KindRST,
			Scheme:  string(canon.Protestant),
			Source:  "sources/rst.json",
			Output:  "app/js/data/bible_data.js",
			DataVar: "window.BIBLE_DATA",
		},
	}}
}

// Load reads a YAML job file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every job and reports all problems found.
func (c *Config) Validate() error {
	if len(c.Jobs) == 0 {
		return errors.New("config: no jobs defined")
	}

	var errs []error
	seen := make(map[string]bool)
	for i, job := range c.Jobs {
		key := strings.ToUpper(job.Name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("job %d: duplicate name %q", i+1, job.Name))
		}
		seen[key] = true
		if err := job.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("job %d (%s): %w", i+1, job.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks a single job.
func (j Job) Validate() error {
	var errs []error
	if j.Name == "" {
		errs = append(errs, errors.New("missing name"))
	}
	if _, err := canon.ParseScheme(j.Scheme); err != nil {
		errs = append(errs, err)
	}
	switch j.Kind {
	case KindMyBible:
		if j.Database == "" && j.Archive == "" {
			errs = append(errs, errors.New("mybible job needs database or archive"))
		}
		if j.MapVar != "" && !appdata.ValidDeclaration(j.MapVar) {
			errs = append(errs, fmt.Errorf("invalid map_var %q", j.MapVar))
		}
	case KindRST:
		if j.Source == "" {
			errs = append(errs, errors.New("rst job needs source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q", j.Kind))
	}
	if j.Output == "" {
		errs = append(errs, errors.New("missing output"))
	}
	if !appdata.ValidDeclaration(j.DataVar) {
		errs = append(errs, fmt.Errorf("invalid data_var %q", j.DataVar))
	}
	return errors.Join(errs...)
}

// Job returns the job with the given name, ignoring case.
func (c *Config) Job(name string) (Job, bool) {
	for _, job := range c.Jobs {
		if strings.EqualFold(job.Name, name) {
			return job, true
		}
	}
	return Job{}, false
}

// Names returns the job names in order.
func (c *Config) Names() []string {
	names := make([]string, len(c.Jobs))
	for i, job := range c.Jobs {
		names[i] = job.Name
	}
	return names
}

// WithRoot returns a copy of the job whose relative paths are joined onto root.
func (j Job) WithRoot(root string) Job {
	if root == "" || root == "." {
		return j
	}
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	j.Database = join(j.Database)
	j.Archive = join(j.Archive)
	j.ExtractDir = join(j.ExtractDir)
	j.Source = join(j.Source)
	j.Output = join(j.Output)
	return j
}

// ParsedScheme returns the job's numbering scheme.
func (j Job) ParsedScheme() canon.Scheme {
	s, err := canon.ParseScheme(j.Scheme)
	if err != nil {
		return canon.Protestant
	}
	return s
}
