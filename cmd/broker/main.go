package main

import (
	"context"
	"errors"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	callhandler "github.com/medlink/doctor-dispatch/internal/api/handlers/call"
	"github.com/medlink/doctor-dispatch/internal/api/router"
	"github.com/medlink/doctor-dispatch/internal/api/server"
	"github.com/medlink/doctor-dispatch/internal/config"
	dispatchmsg "github.com/medlink/doctor-dispatch/internal/rabbitmq/handlers/dispatch"
	"github.com/medlink/doctor-dispatch/internal/rabbitmq/queue"
	"github.com/medlink/doctor-dispatch/internal/registry"
	doctorrepo "github.com/medlink/doctor-dispatch/internal/repository/doctor"
	callsvc "github.com/medlink/doctor-dispatch/internal/service/call"
	"github.com/medlink/doctor-dispatch/internal/token"
	"github.com/medlink/doctor-dispatch/internal/worker"
	"github.com/medlink/doctor-dispatch/pkg/push"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	q, err := queue.NewDispatchQueue(ch)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create dispatch queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	directory := doctorrepo.NewRepository(db)

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)

	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	issuer, err := token.NewIssuer(cfg.RTC.AppID, cfg.RTC.AppSecret)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create credential issuer")
	}

	pushClient := push.NewClient(cfg.Push.Endpoint, cfg.Push.ServerKey)

	reg := registry.New(cfg.Request.Grace)
	service := callsvc.NewService(directory, q, issuer, reg, rdb, cfg.Request.TTL, cfg.RTC.TokenTTL)
	handler := callhandler.NewHandler(service, val, cfg)
	messageHandler := dispatchmsg.NewHandler(pushClient, service)

	dispatcher := worker.NewDispatcher(q, messageHandler)
	sweeper := worker.NewSweeper(service, cfg.Request.SweepInterval)

	go dispatcher.Run(ctx, cfg.Retry, cfg.Workers.Count)
	go sweeper.Run(ctx, cfg.Retry)

	r := router.New(handler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, s := range db.Slaves {
		if err := s.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
