package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/joseph-ayodele/cv-extract/internal/app"
	"github.com/joseph-ayodele/cv-extract/internal/async"
	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
	"github.com/joseph-ayodele/cv-extract/internal/ingest"
	repo "github.com/joseph-ayodele/cv-extract/internal/repository"
)

func main() {
	v := common.NewViper()
	fs := pflag.NewFlagSet("cvwatchd", pflag.ExitOnError)
	common.DefineFlags(fs, v)
	_ = fs.Parse(os.Args[1:])

	cfg, err := common.Load(v)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	// Setup structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comps, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}

	runID := uuid.New()
	opts := []async.Option{
		async.WithWorkers(cfg.Batch.Workers),
		async.WithQueueSize(cfg.Watch.QueueSize),
		async.WithProcessTimeout(cfg.Watch.ProcessTimeout),
		async.WithNamer(comps.Fields.Name),
		async.WithRunID(runID.String()),
	}

	db, err := app.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		logger.Error("failed to open result store", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close(logger)
		results := repo.NewResultRepository(db, logger)
		run := &entity.Report{RunID: runID, Source: cfg.Watch.Inbox, StartedAt: time.Now()}
		if err := results.SaveRun(ctx, run); err != nil {
			logger.Error("failed to register run", "error", err)
			os.Exit(1)
		}
		opts = append(opts, async.WithSink(func(ctx context.Context, rec entity.ExtractionRecord) error {
			return results.AppendRecord(ctx, runID, rec)
		}))
	} else {
		logger.Warn("no result store configured, records are only logged")
		opts = append(opts, async.WithSink(func(_ context.Context, rec entity.ExtractionRecord) error {
			logger.Info("record", "file", rec.FileName, "name", rec.Name, "status", rec.Status.String(), "skills", rec.SkillCount)
			return nil
		}))
	}

	queue := async.NewProcessorQueue(comps.Processor, logger, opts...)

	if err := os.MkdirAll(cfg.Watch.Inbox, 0o750); err != nil {
		logger.Error("failed to create inbox", "inbox", cfg.Watch.Inbox, "error", err)
		os.Exit(1)
	}
	events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{cfg.Watch.Inbox},
		AllowedExts: ingest.ExtSet(cfg.Source.Extensions),
		InitialScan: cfg.Watch.InitialScan,
		Debounce:    500 * time.Millisecond,
	}, logger)
	if err != nil {
		logger.Error("failed to start watcher", "inbox", cfg.Watch.Inbox, "error", err)
		os.Exit(1)
	}

	// gRPC health server
	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	// Set the service as serving (empty string means overall server health)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	logger.Info("cvwatchd listening", "addr", cfg.Server.GRPCAddr, "inbox", cfg.Watch.Inbox, "run_id", runID)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC serve error", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		for err := range watchErrs {
			logger.Warn("watcher error", "error", err)
		}
	}()

	for path := range events {
		fp, err := ingest.Fingerprint(path)
		if err != nil {
			logger.Warn("fingerprint failed", "path", path, "error", err)
		}
		if err := queue.Enqueue(ctx, async.Job{Path: path, Fingerprint: fp}); err != nil {
			logger.Warn("enqueue failed", "path", path, "error", err)
		}
	}

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Watch.ProcessTimeout)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
}
