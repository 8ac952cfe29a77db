package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"chess_trainer/internal/adapters"
	"chess_trainer/internal/bootstrap"
	openingsDelivery "chess_trainer/internal/delivery/openings"
	puzzlesDelivery "chess_trainer/internal/delivery/puzzles"
	trainerDelivery "chess_trainer/internal/delivery/trainer"
	ownMiddleware "chess_trainer/internal/middleware"
	"chess_trainer/internal/repository"
	openingsUC "chess_trainer/internal/usecase/openings"
	puzzlesUC "chess_trainer/internal/usecase/puzzles"
	trainerUC "chess_trainer/internal/usecase/trainer"
	"chess_trainer/microservices/decisionrpc"
	"chess_trainer/microservices/usecase"
)

const shutdownTimeout = 5 * time.Second

var serveWithGRPC bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, and with --grpc the decision gRPC server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithGRPC, "grpc", false, "Also serve the decision service over gRPC on GRPC_PORT")
	rootCmd.AddCommand(serveCmd)
}

type mainDeliveryHandler struct {
	trainer  *trainerDelivery.TrainerHandler
	puzzles  *puzzlesDelivery.PuzzleHandler
	openings *openingsDelivery.OpeningHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(configPath)
	if err != nil {
		return fmt.Errorf("failed to setup configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters, err := initDatabaseAdapters(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer databaseAdapters.mongoAdapter.Close(context.Background())
	defer databaseAdapters.redisAdapter.Close(context.Background())

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(ctx, *cfg, logger, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	grpcServer := grpc.NewServer()
	decisionrpc.RegisterDecisionServiceServer(grpcServer, usecase.NewDecisionUseCase(cfg.Policy, logger))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("Server is running on port %s", cfg.ServerPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if serveWithGRPC {
		g.Go(func() error {
			lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
			if err != nil {
				return fmt.Errorf("cant listen port %s: %w", cfg.GrpcPort, err)
			}
			logger.Infof("Decision gRPC server is running on port %s", cfg.GrpcPort)
			if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.trainer.Register(r)
	h.puzzles.Register(r)
	h.openings.Register(r)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) (*dataBaseAdapters, error) {
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to init mongo: %w", err)
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		_ = mongoAdapter.Close(ctx)
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	log.Info("database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}, nil
}

func initializeDeliveryHandlers(ctx context.Context, cfg bootstrap.Config, log *zap.SugaredLogger, databaseAdapters *dataBaseAdapters) *mainDeliveryHandler {
	oracle := repository.NewOracleRepository(&cfg, log)
	cache := repository.NewAnalysisCache(databaseAdapters.redisAdapter.GetClient(), cfg.AnalysisCacheTTL, log)
	reviews := repository.NewReviewRepository(log, databaseAdapters.mongoAdapter.Database)

	puzzleStorage := repository.NewPuzzleStorage(log, databaseAdapters.mongoAdapter.Database, cfg.PageLimitPuzzles)

	openingUC := openingsUC.NewOpeningUseCase(repository.NewOpeningStorage(log, databaseAdapters.mongoAdapter.Database), log)
	if _, err := openingUC.SeedDefaults(ctx); err != nil {
		log.Warnw("failed to seed opening book", "error", err)
	}

	uc := trainerUC.NewTrainerUseCase(cfg.Policy, oracle, cache, reviews, cfg.OracleDepth, log)
	return &mainDeliveryHandler{
		trainer:  trainerDelivery.NewTrainerHandler(cfg, log, uc),
		puzzles:  puzzlesDelivery.NewPuzzleHandler(log, puzzlesUC.NewPuzzleUseCase(puzzleStorage, cfg.PuzzleTolerance, log)),
		openings: openingsDelivery.NewOpeningHandler(log, openingUC),
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
