package dataset

import (
	"image"
	"os"
	"path/filepath"

	"github.com/esimov/facecrop/config"
	"github.com/esimov/facecrop/utils"
)

// Route returns the buckets a crop of the given size belongs to, that is
// the buckets whose minimum size is not larger than the crop's smaller side.
func Route(size image.Point, buckets []config.Bucket) []config.Bucket {
	side := utils.Min(size.X, size.Y)

	var res []config.Bucket
	for _, b := range buckets {
		if side >= b.MinSize {
			res = append(res, b)
		}
	}
	return res
}

// makeBuckets creates the bucket folders inside root.
func makeBuckets(root string, buckets []config.Bucket) error {
	for _, b := range buckets {
		if err := os.MkdirAll(filepath.Join(root, b.Name), 0755); err != nil {
			return err
		}
	}
	return nil
}
