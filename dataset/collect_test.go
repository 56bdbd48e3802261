package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusions(t *testing.T) {
	excl := DefaultExclusions()
	assert.Len(t, excl, 135)
	assert.True(t, excl.Contains("00000004_007.jpg"))
	assert.False(t, excl.Contains("00000001_000.jpg"))

	path := filepath.Join(t.TempDir(), "exclude.txt")
	writeFile(t, path, []byte("# broken files\n00000001_000.jpg\n\n  00000002_000.jpg  \n"))

	excl, err := LoadExclusions(path)
	require.NoError(t, err)
	assert.Len(t, excl, 2)
	assert.True(t, excl.Contains("00000002_000.jpg"))

	_, err = LoadExclusions(path + ".missing")
	assert.Error(t, err)
}

func TestNewSample(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, filepath.Join(dir, "a.jpg"), 8, 8, smallFace)
	writeSample(t, filepath.Join(dir, "b.jpg"), 8, 8, "")

	s, err := NewSample(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.jpg.cat"), s.Annotation)

	_, err = NewSample(filepath.Join(dir, "b.jpg"))
	assert.ErrorIs(t, err, ErrNoAnnotation)
}

func TestCollect(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	for _, e := range catArchive(t) {
		if e.data != nil {
			writeFile(t, filepath.Join(src, e.name), e.data)
		}
	}
	writeSample(t, filepath.Join(src, "stray.jpg"), 8, 8, smallFace)
	writeFile(t, filepath.Join(src, "CAT_00", "notes.txt"), []byte("n"))

	samples, err := Collect(src, dst, DefaultExclusions())
	require.NoError(t, err)

	var names []string
	for _, s := range samples {
		assert.FileExists(t, s.Image)
		assert.FileExists(t, s.Annotation)
		names = append(names, filepath.Base(s.Image))
	}
	assert.ElementsMatch(t, []string{"00000001_000.jpg", "00000001_001.jpg", "00000001_002.jpg"}, names)
	assert.NoFileExists(t, filepath.Join(dst, "00000004_007.jpg"))
	assert.NoFileExists(t, filepath.Join(dst, "00000005_000.jpg"))
	assert.NoFileExists(t, filepath.Join(dst, "stray.jpg"))
}

func TestWalkImages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), []byte("a"))
	writeFile(t, filepath.Join(root, "a.jpg.cat"), []byte("a"))
	writeFile(t, filepath.Join(root, "b.png"), []byte("b"))
	writeFile(t, filepath.Join(root, "bucket", "c.jpg"), []byte("c"))

	paths, errc := walkImages(context.Background(), root)
	var got []string
	for p := range paths {
		got = append(got, p)
	}
	require.NoError(t, <-errc)
	assert.Equal(t, []string{filepath.Join(root, "a.jpg")}, got)
}

func TestWalkImages_MissingRoot(t *testing.T) {
	paths, errc := walkImages(context.Background(), filepath.Join(t.TempDir(), "missing"))
	for range paths {
	}
	assert.ErrorIs(t, <-errc, os.ErrNotExist)
}
