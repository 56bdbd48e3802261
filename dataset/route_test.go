package dataset

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/esimov/facecrop/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	buckets := config.DefaultBuckets()

	tests := []struct {
		size image.Point
		want []string
	}{
		{image.Pt(70, 80), []string{"cats_bigger_than_64x64"}},
		{image.Pt(64, 64), []string{"cats_bigger_than_64x64"}},
		{image.Pt(200, 128), []string{"cats_bigger_than_64x64", "cats_bigger_than_128x128"}},
		{image.Pt(300, 127), []string{"cats_bigger_than_64x64"}},
		{image.Pt(63, 500), nil},
	}

	for _, tt := range tests {
		var got []string
		for _, b := range Route(tt.size, buckets) {
			got = append(got, b.Name)
		}
		assert.Equal(t, tt.want, got, "size %v", tt.size)
	}
}

func TestMakeBuckets(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, makeBuckets(root, config.DefaultBuckets()))

	for _, b := range config.DefaultBuckets() {
		fi, err := os.Stat(filepath.Join(root, b.Name))
		require.NoError(t, err)
		assert.True(t, fi.IsDir())
	}
}

func TestLock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cat_dataset")

	unlock, err := Lock(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	_, err = Lock(dir)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, unlock())

	unlock, err = Lock(dir)
	require.NoError(t, err)
	assert.NoError(t, unlock())
}
