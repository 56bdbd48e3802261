package dataset

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	name string
	data []byte
}

// Annotations of the test faces. smallFace gives an ~80px crop on a 128px
// image, bigFace a 200px crop on a 300px image.
const (
	smallFace      = "9 30 40 70 42 50 60 10 20 10 20 10 20 10 20 10 20 90 22"
	bigFace        = "9 120 120 200 120 160 160 60 100 60 100 60 100 60 100 60 100 260 100"
	degenerateFace = "9 30 40 70 42 50 60 10 20 10 20 10 20 10 20 10 20 10 20"
)

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.SetNRGBA(w/2, h/2, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func zipBytes(t *testing.T, entries []zipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		if e.data != nil {
			_, err = w.Write(e.data)
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// writeSample stores a w x h image at path with the given annotation.
// An empty annotation leaves the image unannotated.
func writeSample(t *testing.T, path string, w, h int, ann string) {
	t.Helper()
	writeFile(t, path, jpegBytes(t, w, h))
	if ann != "" {
		writeFile(t, path+".cat", []byte(ann))
	}
}

// catArchive returns the entries of a small dataset folder.
func catArchive(t *testing.T) []zipEntry {
	small, big := jpegBytes(t, 128, 128), jpegBytes(t, 300, 300)
	return []zipEntry{
		{name: "CAT_00/"},
		{name: "CAT_00/00000001_000.jpg", data: small},
		{name: "CAT_00/00000001_000.jpg.cat", data: []byte(smallFace)},
		{name: "CAT_00/00000001_001.jpg", data: big},
		{name: "CAT_00/00000001_001.jpg.cat", data: []byte(bigFace)},
		{name: "CAT_00/00000001_002.jpg", data: small},
		{name: "CAT_00/00000001_002.jpg.cat", data: []byte(degenerateFace)},
		{name: "CAT_01/00000004_007.jpg", data: small},
		{name: "CAT_01/00000004_007.jpg.cat", data: []byte(smallFace)},
		{name: "CAT_01/00000005_000.jpg", data: small},
	}
}
