package main

import (
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"chess_trainer/internal/bootstrap"
	"chess_trainer/microservices/decisionrpc"
	"chess_trainer/microservices/usecase"
)

func main() {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("Failed to setup configuration", "error", err)
		return
	}

	lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		logger.Fatalw("cant listen port", "port", cfg.GrpcPort, "error", err)
	}

	server := grpc.NewServer()
	decisionrpc.RegisterDecisionServiceServer(server, usecase.NewDecisionUseCase(cfg.Policy, logger))
	logger.Infof("starting decision server at :%s", cfg.GrpcPort)
	if err := server.Serve(lis); err != nil {
		logger.Fatalw("grpc server stopped", "error", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}
