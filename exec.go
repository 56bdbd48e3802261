package facecrop

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/esimov/facecrop/utils"
	"golang.org/x/term"
)

// AnnotationExt is appended to an image file name to locate its annotation.
const AnnotationExt = ".cat"

// Ops describes a single image normalization run.
type Ops struct {
	Src, Dst, Annotation, PipeName string
	// Quality is the JPEG encoding quality of the crop.
	Quality int
}

// Execute normalizes the image found at op.Src using the landmarks from
// op.Annotation (or the annotation sitting next to the image) and writes
// the crop to op.Dst. Either path can be the pipe name to use stdin/stdout.
func (n *Normalizer) Execute(op *Ops) (err error) {
	ann := op.Annotation
	if ann == "" {
		if op.Src == op.PipeName {
			return errors.New("an annotation file is required when reading the image from stdin")
		}
		ann = op.Src + AnnotationExt
	}
	coords, err := ReadAnnotationFile(ann)
	if err != nil {
		return err
	}

	if op.Dst != op.PipeName && !utils.Contains(SupportedExtensions, filepath.Ext(op.Dst)) {
		return fmt.Errorf("%v file type not supported", filepath.Ext(op.Dst))
	}

	img, err := op.readImage()
	if err != nil {
		return err
	}
	crop, err := n.Normalize(coords, img)
	if err != nil {
		return err
	}

	dst, err := op.openDst()
	if err != nil {
		return err
	}
	if dst != os.Stdout {
		defer func() {
			if cerr := dst.Close(); cerr != nil && err == nil {
				err = cerr
			}
			// remove the generated image file in case of an error
			if err != nil {
				_ = os.Remove(dst.Name())
			}
		}()
	}

	quality := op.Quality
	if quality <= 0 {
		quality = 95
	}
	return encodeImg(dst, crop, quality)
}

// readImage decodes the source image, be it a regular file or stdin.
func (op *Ops) readImage() (image.Image, error) {
	if op.Src != op.PipeName {
		return decodeImg(op.Src)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("`-` should be used with a pipe for stdin")
	}
	img, err := imaging.Decode(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("could not decode the image from stdin: %w", err)
	}
	return img, nil
}

// openDst returns the destination the crop is encoded into.
func (op *Ops) openDst() (*os.File, error) {
	if op.Dst == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}
	dst, err := os.OpenFile(op.Dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return dst, nil
}

// ReadAnnotationFile reads the landmark coordinates stored at path.
func ReadAnnotationFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open the annotation file: %w", err)
	}
	defer f.Close()

	return ReadAnnotation(f)
}
