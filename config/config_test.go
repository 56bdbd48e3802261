package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
root: cats
workers: 3
buckets:
  - name: big
    min_size: 256
log:
  debug: true
  console: true
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))
	return path
}

func TestConfig_LoadFile(t *testing.T) {
	conf, err := Load(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "cats", conf.Root)
	assert.Equal(t, 3, conf.Workers)
	assert.True(t, conf.Log.Debug)
	assert.True(t, conf.Log.Console)
	assert.Equal(t, []Bucket{{Name: "big", MinSize: 256}}, conf.Buckets)
	// untouched values keep their defaults
	assert.Equal(t, Default().ArchiveURL, conf.ArchiveURL)
	assert.Equal(t, 95, conf.Quality)
}

func TestConfig_LoadEnv(t *testing.T) {
	t.Setenv("FACECROP_ROOT", "from_env")
	t.Setenv("FACECROP_QUALITY", "80")

	conf, err := Load(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "from_env", conf.Root)
	assert.Equal(t, 80, conf.Quality)
}

func TestConfig_LoadEnvWithoutFile(t *testing.T) {
	// no facecrop.yaml in the package dir nor in the home folder
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FACECROP_ROOT", "env_only")
	t.Setenv("FACECROP_WORKERS", "5")

	conf, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env_only", conf.Root)
	assert.Equal(t, 5, conf.Workers)
	assert.Equal(t, DefaultBuckets(), conf.Buckets)
	assert.Equal(t, Default().TempDir, conf.TempDir)
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_Flags(t *testing.T) {
	conf := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	conf.WithFlags(fs)

	require.NoError(t, fs.Parse([]string{"--root", "out", "-j", "2", "--keep-temp", "-q", "70", "--console"}))
	assert.Equal(t, "out", conf.Root)
	assert.Equal(t, 2, conf.Workers)
	assert.Equal(t, 70, conf.Quality)
	assert.True(t, conf.KeepTemp)
	assert.False(t, conf.KeepArchive)
	assert.True(t, conf.Log.Console)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "default", modify: func(*Config) {}},
		{name: "no root", modify: func(c *Config) { c.Root = "" }, wantErr: true},
		{name: "no temp", modify: func(c *Config) { c.TempDir = "" }, wantErr: true},
		{name: "bad url", modify: func(c *Config) { c.ArchiveURL = "cats.zip"; c.Archive = "missing.zip" }, wantErr: true},
		{name: "bad quality", modify: func(c *Config) { c.Quality = 101 }, wantErr: true},
		{name: "bad bucket", modify: func(c *Config) { c.Buckets = []Bucket{{Name: "x"}} }, wantErr: true},
		{name: "workers reset", modify: func(c *Config) { c.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Default()
			tt.modify(&conf)
			err := conf.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Positive(t, conf.Workers)
		})
	}
}
