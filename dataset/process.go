package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/esimov/facecrop"
	"github.com/esimov/facecrop/config"
	"github.com/esimov/facecrop/logger"
	"github.com/esimov/facecrop/utils"
	"golang.org/x/sync/errgroup"
)

// Stats summarizes a processing run.
type Stats struct {
	Processed int
	Skipped   int
	// Routed counts the crops written into each bucket.
	Routed map[string]int
}

// Processor normalizes every annotated image of the dataset root and writes
// the crops into the buckets they qualify for.
type Processor struct {
	Normalizer *facecrop.Normalizer
	Root       string
	Buckets    []config.Bucket
	Workers    int
	Quality    int
	Log        *logger.Logger
	// Progress is optional.
	Progress *utils.Progress

	mu    sync.Mutex
	stats Stats
}

// Run processes the images concurrently. A sample failing to be normalized
// is logged and skipped; the run only stops on ctx cancellation or when
// the dataset root cannot be read.
func (p *Processor) Run(ctx context.Context) (Stats, error) {
	p.stats = Stats{Routed: make(map[string]int)}
	if p.Normalizer == nil {
		p.Normalizer = facecrop.NewNormalizer()
	}
	if p.Log == nil {
		p.Log = logger.Nop()
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if err := makeBuckets(p.Root, p.Buckets); err != nil {
		return p.stats, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	paths, errc := walkImages(ctx, p.Root)

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for path := range paths {
		if ctx.Err() != nil {
			break
		}
		path := path
		g.Go(func() error {
			p.processSample(path)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return p.stats, err
	}
	if err := <-errc; err != nil {
		return p.stats, fmt.Errorf("could not list the dataset images: %w", err)
	}
	return p.stats, nil
}

func (p *Processor) processSample(path string) {
	if p.Progress != nil {
		defer p.Progress.Incr()
	}

	buckets, err := p.Process(path)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.stats.Skipped++
		p.Log.Warn().Err(err).Str("path", path).Msg("Failed to preprocess image")
		return
	}
	p.stats.Processed++
	for _, b := range buckets {
		p.stats.Routed[b.Name]++
	}
}

// Process normalizes a single image and saves the crop into every bucket it
// qualifies for. It returns those buckets.
func (p *Processor) Process(path string) ([]config.Bucket, error) {
	s, err := NewSample(path)
	if err != nil {
		return nil, err
	}
	coords, err := facecrop.ReadAnnotationFile(s.Annotation)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Open(s.Image)
	if err != nil {
		return nil, fmt.Errorf("could not decode the image: %w", err)
	}

	crop, err := p.Normalizer.Normalize(coords, img)
	if err != nil {
		return nil, err
	}

	size := crop.Bounds().Size()
	buckets := Route(size, p.Buckets)
	for _, b := range buckets {
		dst := filepath.Join(p.Root, b.Name, filepath.Base(path))
		if err := imaging.Save(crop, dst, imaging.JPEGQuality(p.quality())); err != nil {
			return nil, fmt.Errorf("could not save the crop: %w", err)
		}
	}
	p.Log.Debug().Str("path", path).Int("w", size.X).Int("h", size.Y).Int("buckets", len(buckets)).Msg("Processed")
	return buckets, nil
}

func (p *Processor) quality() int {
	if p.Quality <= 0 {
		return 95
	}
	return p.Quality
}
