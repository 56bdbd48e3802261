package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/facecrop"
)

// imageExt is the extension of the dataset images.
const imageExt = ".jpg"

// ErrNoAnnotation is returned for an image without a landmark annotation.
var ErrNoAnnotation = errors.New("missing annotation")

// Sample is an image together with its landmark annotation.
type Sample struct {
	Image      string
	Annotation string
}

// NewSample pairs the image at path with the annotation sitting next to it.
func NewSample(path string) (Sample, error) {
	s := Sample{Image: path, Annotation: path + facecrop.AnnotationExt}
	fi, err := os.Stat(s.Annotation)
	if err != nil || !fi.Mode().IsRegular() {
		return s, fmt.Errorf("%w: %s", ErrNoAnnotation, path)
	}
	return s, nil
}

// Collect copies every annotated, non excluded image found in the sub
// folders of src, together with its annotation, into dst.
// It returns the samples as laid out in dst.
func Collect(src, dst string, excl Exclusions) ([]Sample, error) {
	dirs, err := os.ReadDir(src)
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		folder := filepath.Join(src, d.Name())
		entries, err := os.ReadDir(folder)
		if err != nil {
			return samples, err
		}
		for _, e := range entries {
			name := e.Name()
			if !e.Type().IsRegular() || !strings.HasSuffix(name, imageExt) || excl.Contains(name) {
				continue
			}
			s, err := NewSample(filepath.Join(folder, name))
			if err != nil {
				continue
			}
			out := Sample{
				Image:      filepath.Join(dst, name),
				Annotation: filepath.Join(dst, name+facecrop.AnnotationExt),
			}
			if err := copyFile(s.Annotation, out.Annotation); err != nil {
				return samples, err
			}
			if err := copyFile(s.Image, out.Image); err != nil {
				return samples, err
			}
			samples = append(samples, out)
		}
	}
	return samples, nil
}

// walkImages starts a new goroutine listing the images of the folder root,
// without descending into sub folders, and sends their path to a channel.
// It finishes when ctx is cancelled.
func walkImages(ctx context.Context, root string) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == root {
					return nil
				}
				return filepath.SkipDir
			}
			if !d.Type().IsRegular() || filepath.Ext(path) != imageExt {
				return nil
			}

			select {
			case <-ctx.Done():
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
