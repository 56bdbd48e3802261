// Package config holds the settings of the dataset preparation pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/esimov/facecrop/utils"
	"github.com/kkyr/fig"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix = "FACECROP"
	FileName  = "facecrop.yaml"
)

// Bucket is an output folder receiving the crops whose smaller side is at
// least MinSize pixels.
type Bucket struct {
	Name    string `fig:"name"`
	MinSize int    `fig:"min_size"`
}

type Log struct {
	Debug   bool `fig:"debug"`
	NoColor bool `fig:"no_color"`
	// Console forces the human readable log output on non terminals.
	Console bool `fig:"console"`
}

type Config struct {
	// ArchiveURL is the location of the dataset archive.
	ArchiveURL string `fig:"archive_url"`
	// Archive is the local path of the downloaded archive.
	Archive string `fig:"archive"`
	// TempDir receives the extracted archive.
	TempDir string `fig:"temp_dir"`
	// Root is the dataset folder holding the collected samples and the buckets.
	Root string `fig:"root"`
	// Buckets are created inside Root.
	Buckets []Bucket `fig:"buckets"`
	// Exclusions is an optional file listing image names to leave out,
	// one per line. The built-in list is used when empty.
	Exclusions  string `fig:"exclusions"`
	Workers     int    `fig:"workers"`
	Quality     int    `fig:"quality"`
	KeepTemp    bool   `fig:"keep_temp"`
	KeepArchive bool   `fig:"keep_archive"`
	Log         Log    `fig:"log"`
}

// Default returns the settings used to prepare the cat faces dataset.
func Default() Config {
	return Config{
		ArchiveURL: "http://www.simoninithomas.com/data/cats.zip",
		Archive:    "cats.zip",
		TempDir:    "dataset_temp",
		Root:       "cat_dataset",
		Buckets:    DefaultBuckets(),
		Workers:    runtime.NumCPU(),
		Quality:    95,
	}
}

// DefaultBuckets routes the crops into the 64x64 and 128x128 training sets.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{Name: "cats_bigger_than_64x64", MinSize: 64},
		{Name: "cats_bigger_than_128x128", MinSize: 128},
	}
}

// Load reads the configuration file found in path, or in the default
// locations when path is empty, on top of the defaults.
// Environment variables prefixed with FACECROP_ override the file values.
// A missing file is not an error.
func Load(path string) (Config, error) {
	conf := Default()
	// The decoder merges slices element by element, so the default buckets
	// would leak into a shorter list coming from the file.
	conf.Buckets = nil

	dirs := []string{"."}
	file := FileName
	if path != "" {
		dirs = []string{filepath.Dir(path)}
		file = filepath.Base(path)
	} else {
		dirs = append(dirs, "configs")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, ".facecrop"))
		}
	}

	err := fig.Load(&conf, fig.File(file), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) && path == "" {
		// no file at all, the environment can still override the defaults
		err = fig.Load(&conf, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	if len(conf.Buckets) == 0 {
		conf.Buckets = DefaultBuckets()
	}
	if err != nil {
		return conf, fmt.Errorf("could not load the configuration: %w", err)
	}
	return conf, nil
}

// WithFlags binds the command line flags to the configuration fields.
// Call it after Load so the loaded values become the flag defaults.
func (c *Config) WithFlags(fs *pflag.FlagSet) *Config {
	fs.StringVar(&c.ArchiveURL, "url", c.ArchiveURL, "Dataset archive URL")
	fs.StringVar(&c.Archive, "archive", c.Archive, "Local path of the dataset archive")
	fs.StringVar(&c.TempDir, "temp", c.TempDir, "Folder receiving the extracted archive")
	fs.StringVar(&c.Root, "root", c.Root, "Dataset root folder")
	fs.StringVar(&c.Exclusions, "exclude", c.Exclusions, "File listing the image names to leave out")
	fs.IntVarP(&c.Workers, "conc", "j", c.Workers, "Number of images to process concurrently")
	fs.IntVarP(&c.Quality, "quality", "q", c.Quality, "JPEG quality of the crops")
	fs.BoolVar(&c.KeepTemp, "keep-temp", c.KeepTemp, "Keep the extracted archive")
	fs.BoolVar(&c.KeepArchive, "keep-archive", c.KeepArchive, "Keep the downloaded archive")
	fs.BoolVarP(&c.Log.Debug, "debug", "d", c.Log.Debug, "Enable debug logging")
	fs.BoolVar(&c.Log.NoColor, "no-color", c.Log.NoColor, "Disable colored output")
	fs.BoolVar(&c.Log.Console, "console", c.Log.Console, "Human readable logs even when not writing to a terminal")
	return c
}

// Validate checks the settings needed to run the pipeline.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("the dataset root folder is required")
	}
	if c.TempDir == "" {
		return errors.New("the temporary folder is required")
	}
	if _, err := os.Stat(c.Archive); err != nil && !utils.IsValidUrl(c.ArchiveURL) {
		return fmt.Errorf("invalid archive url: %q", c.ArchiveURL)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("the jpeg quality should be between 1 and 100, got %d", c.Quality)
	}
	for _, b := range c.Buckets {
		if b.Name == "" || b.MinSize <= 0 {
			return fmt.Errorf("invalid bucket: %+v", b)
		}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}
