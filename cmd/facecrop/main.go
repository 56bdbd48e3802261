package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/esimov/facecrop"
	"github.com/esimov/facecrop/config"
	"github.com/esimov/facecrop/dataset"
	"github.com/esimov/facecrop/logger"
	"github.com/esimov/facecrop/utils"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┌─┐┌─┐┌─┐┌─┐┬─┐┌─┐┌─┐
├┤ ├─┤│  ├┤ │  ├┬┘│ │├─┘
└  ┴ ┴└─┘└─┘└─┘┴└─└─┘┴

Face dataset pose normalization.
    Version: %s

Without --in the whole dataset is downloaded and prepared,
with --in a single annotated image is cropped.

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

func main() {
	confPath := configPath(os.Args[1:])
	conf, err := config.Load(confPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		os.Exit(1)
	}

	ops := facecrop.Ops{PipeName: pipeName}
	fs := pflag.CommandLine
	conf.WithFlags(fs)
	fs.StringVarP(&confPath, "conf", "c", confPath, "Configuration file path")
	fs.StringVarP(&ops.Src, "in", "i", "", "Source image, - for stdin (single image mode)")
	fs.StringVarP(&ops.Dst, "out", "o", pipeName, "Destination of the crop, - for stdout (single image mode)")
	fs.StringVarP(&ops.Annotation, "annotation", "a", "", "Landmark annotation, defaults to the image path + .cat")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		fs.PrintDefaults()
	}
	pflag.Parse()

	isTerm := term.IsTerminal(int(os.Stderr.Fd()))
	utils.NoColor = conf.Log.NoColor || !isTerm
	newLogger := logger.New
	if conf.Log.Console {
		newLogger = logger.NewConsole
	}
	log := newLogger(os.Stderr, conf.Log.Debug, utils.NoColor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	now := time.Now()
	if ops.Src != "" {
		ops.Quality = conf.Quality
		if err := facecrop.NewNormalizer().Execute(&ops); err != nil {
			log.Fatal().Err(err).Str("path", ops.Src).Msg("Failed to preprocess image")
		}
		if ops.Dst != pipeName {
			fmt.Fprintf(os.Stderr, "The crop has been saved as: %s\n", utils.DecorateText(ops.Dst, utils.SuccessMessage))
		}
		return
	}

	if err := conf.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	p := dataset.Pipeline{Conf: conf, Log: log}
	if isTerm {
		p.ProgressOut = os.Stderr
	}
	stats, err := p.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Dataset preparation failed")
	}

	fmt.Fprintf(os.Stderr, "\n%s %d processed, %d skipped\n",
		utils.DecorateText("Done!", utils.SuccessMessage), stats.Processed, stats.Skipped)
	for _, b := range conf.Buckets {
		fmt.Fprintf(os.Stderr, "\t%s: %d\n", b.Name, stats.Routed[b.Name])
	}
	fmt.Fprintf(os.Stderr, "Execution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// configPath looks up the configuration file flag ahead of the full flag
// parsing, so that the file values become the flag defaults.
func configPath(args []string) string {
	var path string
	fs := pflag.NewFlagSet("conf", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.StringVarP(&path, "conf", "c", "", "")
	_ = fs.Parse(args)
	return path
}
