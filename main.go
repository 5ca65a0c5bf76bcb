package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/adapter"
	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/config"
	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/logger"

	_ "github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/storage/minio"
	_ "github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/storage/s3"
)

const usage = `usage: ghost-s3 [flags] <command> [args]

commands:
  check                 resolve the configuration and probe the bucket
  save <file>...        upload files and print their public URLs
  exists <name> [dir]   print whether a name is taken
  delete <name> [dir]   delete an object
  read <key> [out]      download an object to out (default stdout)

flags:
`

func main() {
	// Initialize logger with default settings until the config is loaded
	logger.Init("info", "json")
	log := logger.Get()

	configFile := flag.String("config", "", "Path to a JSON config file (environment variables override it)")
	targetDir := flag.String("dir", "", "Target directory (default: current year/month)")
	contentType := flag.String("type", "", "Content type for save (default: detected from the extension)")
	unique := flag.Bool("unique", false, "Pick a free name (photo-1.png, photo-2.png...) before saving")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Init(opts.GetLogLevel(), opts.GetLogFormat())
	log = logger.Get()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd, args := flag.Arg(0), flag.Args()[1:]

	if cmd == "check" {
		if err := runCheck(ctx, *opts, os.Stdout, *log); err != nil {
			exit(err)
		}
		return
	}

	a, err := adapter.Open(ctx, *opts, adapter.WithLogger(*log))
	if err != nil {
		exit(err)
	}

	c := &cli{
		adapter:       a,
		out:           os.Stdout,
		logger:        *log,
		targetDir:     *targetDir,
		contentType:   *contentType,
		unique:        *unique,
		maxConcurrent: opts.GetMaxConcurrentUploads(),
	}

	if err := c.run(ctx, cmd, args); err != nil {
		exit(err)
	}
}

func exit(err error) {
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		for _, f := range cfgErr.Problems() {
			fmt.Fprintf(os.Stderr, "  %s: %s %s\n", f.Name, f.Status, f.Reason)
		}
	}
	fmt.Fprintln(os.Stderr, "ghost-s3:", err)
	os.Exit(1)
}
