package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/mazrean/teautil/internal"
	"github.com/mazrean/teautil/internal/config"
	"github.com/mazrean/teautil/internal/pkg/json"
	mylog "github.com/mazrean/teautil/internal/pkg/log"
	"github.com/mazrean/teautil/log"
	"github.com/mazrean/teautil/protocol"
	"github.com/mazrean/teautil/util"
)

var (
	version  = "dev"
	revision = "none"
)

// CLI represents command line options and configuration file values
var CLI struct {
	config.Config `kong:"embed"`
	Dev           DevFlag `kong:"group='dev',embed,prefix='dev.'"`
}

func run(ctx context.Context, logger log.Logger, command string) error {
	switch command {
	case "format":
		return runFormat(ctx, &CLI.Format, os.Stdin, os.Stdout)
	case "urlencode":
		_, err := fmt.Fprintln(os.Stdout, util.URLEncode(CLI.URLEncode.Text))
		return err
	case "form":
		fields, err := CLI.Form.Fields()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, util.ToFormString(util.AnyifyMapValue(fields)))
		return err
	case "serve":
		// Create application instance
		app := internal.NewTeautil(logger)

		// Initialize and run process
		process := protocol.NewProcess(append(app.Handlers(),
			protocol.WithLogger(logger),
			protocol.WithResponseBufferSize(CLI.Serve.ResponseBuffer),
		)...)

		return process.Run(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func main() {
	// Initialize default logger with info level
	logger := log.DefaultLogger

	// Load configuration
	parser, err := config.NewParser(&CLI, config.Version{Version: version, Revision: revision}, config.Paths(logger))
	if err != nil {
		panic(fmt.Errorf("unexpected error: %w", err))
	}
	kongCtx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	// Set log level
	level, err := mylog.ParseLevel(CLI.LogLevel)
	if err != nil {
		logger.Warnf("%v. ignore and use default info level instead", err)
	}
	fileLogger, closeLog, err := mylog.OpenLogger(CLI.LogFile, level)
	if err != nil {
		logger.Warnf("%v. logging to stderr instead", err)
		fileLogger, closeLog = mylog.NewLogger(level), func() error { return nil }
	}
	logger = fileLogger

	if err := CLI.Dev.StartProfiling(); err != nil {
		logger.Warnf("failed to start profiling: %v", err)
	}

	logger.Debugf("configuration: %+v", CLI)
	logger.Debugf("json library: %s", json.Library)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, logger, strings.Fields(kongCtx.Command())[0])
	stop()
	if err := CLI.Dev.StopProfiling(); err != nil {
		logger.Warnf("failed to stop profiling: %v", err)
	}

	if err != nil {
		logger.Errorf("%s: %v", kongCtx.Command(), err)
	}
	if closeErr := closeLog(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "teautil: close log file: %v\n", closeErr)
	}
	if err != nil {
		os.Exit(1)
	}
}
