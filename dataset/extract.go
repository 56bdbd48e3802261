package dataset

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extract unpacks the zip archive src into dest and returns the extracted
// file paths. Entries escaping dest are rejected.
func Extract(src, dest string) (files []string, err error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the archive: %w", err)
	}
	defer r.Close()

	root := filepath.Clean(dest)
	prefix := root + string(os.PathSeparator)
	for _, f := range r.File {
		path := filepath.Join(dest, f.Name)

		// negate ZipSlip vulnerability
		if path != root && !strings.HasPrefix(path, prefix) {
			return files, fmt.Errorf("illegal file path in archive: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, os.ModePerm); err != nil {
				return files, err
			}
			continue
		}
		if err := extractFile(f, path); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

// ExtractNested unpacks src into dest. The dataset archive wraps a second
// archive of the same name, which is unpacked into dest as well when present.
func ExtractNested(src, dest string) ([]string, error) {
	files, err := Extract(src, dest)
	if err != nil {
		return nil, fmt.Errorf("failed the first half of unzipping the dataset: %w", err)
	}

	inner := filepath.Join(dest, filepath.Base(src))
	if _, err := os.Stat(inner); err != nil {
		return files, nil
	}
	more, err := Extract(inner, dest)
	if err != nil {
		return nil, fmt.Errorf("failed the second half of unzipping the dataset: %w", err)
	}

	res := make([]string, 0, len(files)+len(more))
	for _, f := range files {
		if f != inner {
			res = append(res, f)
		}
	}
	return append(res, more...), nil
}

func extractFile(f *zip.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
