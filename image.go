package facecrop

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/facecrop/utils"
	"golang.org/x/image/bmp"
)

// SupportedExtensions lists the image file types accepted as input and output.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// decodeImg decodes an image file to type image.Image.
func decodeImg(src string) (image.Image, error) {
	ctype, err := utils.DetectContentType(src)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("%s is not an image file", src)
	}

	img, err := imaging.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not decode the image file: %w", err)
	}
	return img, nil
}

// encodeImg encodes an image to a destination of type io.Writer.
// Files are encoded by their extension, anything else as JPEG.
func encodeImg(w io.Writer, img image.Image, quality int) error {
	f, ok := w.(*os.File)
	if !ok {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}

	switch ext := strings.ToLower(filepath.Ext(f.Name())); ext {
	case "", ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return errors.New("unsupported image format")
	}
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
// An image already in that form is returned as is and must not be modified.
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	return imaging.Clone(img)
}
