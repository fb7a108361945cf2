package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/joseph-ayodele/cv-extract/internal/app"
	"github.com/joseph-ayodele/cv-extract/internal/batch"
	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
	"github.com/joseph-ayodele/cv-extract/internal/export"
	repo "github.com/joseph-ayodele/cv-extract/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	v := common.NewViper()
	fs := pflag.NewFlagSet("cvextract", pflag.ContinueOnError)
	common.DefineFlags(fs, v)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		printError("Error: %v\n", err)
		return 2
	}
	if fs.NArg() > 0 {
		v.Set("source.dir", fs.Arg(0))
	}

	cfg, err := common.Load(v)
	if err != nil {
		printError("Error: %v\n", err)
		return 2
	}
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comps, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		return 1
	}

	var store repo.ResultRepository
	db, err := app.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		logger.Error("failed to open result store", "error", err)
		return 1
	}
	if db != nil {
		defer db.Close(logger)
		store = repo.NewResultRepository(db, logger)
	}

	bp := batch.New(comps.Processor, comps.Fields.Name, app.BatchOptions(cfg), logger)
	report, err := bp.Run(ctx, cfg.Source.Dir)
	if err != nil {
		if errors.Is(err, common.ErrSourceNotFound) {
			printError("Error: directory %q not found\n", cfg.Source.Dir)
		} else {
			printError("Error: %v\n", err)
		}
		return 1
	}
	if report.Empty() {
		fmt.Fprintf(stdout, "No PDF files found in %s\n", cfg.Source.Dir)
		return 0
	}

	if err := export.NewService(logger).WriteFile(ctx, report, cfg.Output.Path, cfg.Output.Format); err != nil {
		logger.Error("failed to write report", "path", cfg.Output.Path, "error", err)
		return 1
	}
	if store != nil {
		if err := store.SaveRun(ctx, report); err != nil {
			// the report file is already written; persistence is best effort
			logger.Error("failed to persist run", "run_id", report.RunID, "error", err)
		}
	}

	printSummary(stdout, report, cfg.Output.Path)
	return 0
}

func printSummary(w io.Writer, report *entity.Report, path string) {
	s := report.Summary()
	fmt.Fprintln(w, "Extraction summary")
	fmt.Fprintf(w, "  Total files processed: %d\n", s.Total)
	fmt.Fprintf(w, "  Successful:            %d\n", s.Success)
	fmt.Fprintf(w, "  Partial:               %d\n", s.Partial)
	fmt.Fprintf(w, "  Failed/Errors:         %d\n", s.Failed+s.Errors)
	fmt.Fprintf(w, "  Results saved to:      %s\n", path)
}
