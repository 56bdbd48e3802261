package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/esimov/facecrop"
	"github.com/esimov/facecrop/config"
	"github.com/esimov/facecrop/logger"
	"github.com/esimov/facecrop/utils"
)

// Pipeline runs every stage of the dataset preparation.
type Pipeline struct {
	Conf config.Config
	Log  *logger.Logger
	// ProgressOut receives the progress indicator. Nil disables it.
	ProgressOut io.Writer
}

// Run downloads and unpacks the archive, collects the annotated images,
// processes them and finally removes the temporary files.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	conf, log := p.Conf, p.Log
	if log == nil {
		log = logger.Nop()
	}

	unlock, err := Lock(conf.Root)
	if err != nil {
		return Stats{}, err
	}
	defer func() {
		if err := unlock(); err != nil {
			log.Warn().Err(err).Msg("Unable to release the dataset lock")
		}
	}()

	if err := os.MkdirAll(conf.TempDir, 0755); err != nil {
		return Stats{}, err
	}

	archive, err := Fetch(ctx, conf.ArchiveURL, conf.Archive, log)
	if err != nil {
		return Stats{}, err
	}

	log.Info().Str("path", archive).Msg("Unzipping files")
	if _, err := ExtractNested(archive, conf.TempDir); err != nil {
		return Stats{}, err
	}

	excl := DefaultExclusions()
	if conf.Exclusions != "" {
		if excl, err = LoadExclusions(conf.Exclusions); err != nil {
			return Stats{}, err
		}
	}

	log.Info().Msg("Analysing files")
	samples, err := Collect(conf.TempDir, conf.Root, excl)
	if err != nil {
		return Stats{}, fmt.Errorf("could not collect the samples: %w", err)
	}
	log.Info().Int("samples", len(samples)).Int("excluded", len(excl)).Msg("Files copied")

	proc := &Processor{
		Normalizer: facecrop.NewNormalizer(),
		Root:       conf.Root,
		Buckets:    conf.Buckets,
		Workers:    conf.Workers,
		Quality:    conf.Quality,
		Log:        log,
	}
	if p.ProgressOut != nil {
		msg := utils.DecorateText("Running image pre-processing", utils.StatusMessage)
		proc.Progress = utils.NewProgress(p.ProgressOut, msg, len(samples), 100*time.Millisecond, true)
		proc.Progress.Start()
	}

	log.Info().Int("workers", conf.Workers).Msg("Running image pre-processing")
	stats, err := proc.Run(ctx)
	if proc.Progress != nil {
		proc.Progress.Stop()
	}
	if err != nil {
		return stats, err
	}

	p.cleanup(log, archive)
	return stats, nil
}

// cleanup removes the temporary folder and the archive. Failures are only
// reported since the dataset itself is complete.
func (p *Pipeline) cleanup(log *logger.Logger, archive string) {
	log.Info().Msg("Cleaning up")
	if !p.Conf.KeepTemp {
		if err := os.RemoveAll(p.Conf.TempDir); err != nil {
			log.Warn().Err(err).Str("path", p.Conf.TempDir).Msg("Unable to remove temporary directory")
		}
	}
	if !p.Conf.KeepArchive {
		if err := os.Remove(archive); err != nil {
			log.Warn().Err(err).Str("path", archive).Msg("Unable to remove downloaded ZIP file")
		}
	}
}
