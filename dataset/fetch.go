// Package dataset prepares the face dataset: it fetches and unpacks the
// archive, collects the annotated images, normalizes every face and routes
// the crops into size buckets.
package dataset

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cavaliercoder/grab"
	"github.com/dustin/go-humanize"
	"github.com/esimov/facecrop/logger"
)

// progressInterval is the period of the download progress log.
const progressInterval = 2 * time.Second

// Fetch downloads url into dest unless dest already exists.
// It returns the path of the local archive.
func Fetch(ctx context.Context, url, dest string, log *logger.Logger) (string, error) {
	if fi, err := os.Stat(dest); err == nil && fi.Mode().IsRegular() {
		log.Info().Str("path", dest).Msg("Archive already downloaded")
		return dest, nil
	}

	req, err := grab.NewRequest(dest, url)
	if err != nil {
		return "", fmt.Errorf("couldn't make request URL: %v, %w", url, err)
	}
	req = req.WithContext(ctx)

	log.Info().Str("url", url).Msg("Beginning file download")
	resp := grab.NewClient().Do(req)

	t := time.NewTicker(progressInterval)
	defer t.Stop()
loop:
	for {
		select {
		case <-t.C:
			log.Info().
				Str("done", humanize.Bytes(uint64(resp.BytesComplete()))).
				Str("progress", fmt.Sprintf("%.1f%%", 100*resp.Progress())).
				Msg("Downloading")
		case <-resp.Done:
			break loop
		}
	}

	if err := resp.Err(); err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	log.Info().
		Str("path", resp.Filename).
		Str("size", humanize.Bytes(uint64(resp.BytesComplete()))).
		Msg("Downloaded")
	return resp.Filename, nil
}
