package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/LogLens/internal/broker"
	kafkabroker "github.com/Egor213/LogLens/internal/broker/kafka"
	"github.com/Egor213/LogLens/internal/config"
	httpv1 "github.com/Egor213/LogLens/internal/controller/http/v1"
	"github.com/Egor213/LogLens/internal/metrics"
	"github.com/Egor213/LogLens/internal/repo"
	"github.com/Egor213/LogLens/internal/service"
	errorsUtils "github.com/Egor213/LogLens/pkg/errors"
	"github.com/Egor213/LogLens/pkg/httpserver"
	"github.com/labstack/echo/v4"

	log "github.com/sirupsen/logrus"
)

// Run serves the log over HTTP until SIGINT/SIGTERM or a server failure.
func Run(cfg *config.Config) {
	log.WithFields(log.Fields{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
		"file":    cfg.Viewer.FilePath,
	}).Info("Starting")

	// Repos
	repositories := repo.NewRepositories(cfg.Viewer.FilePath)

	// Metrics
	counters := metrics.New()

	// Broker
	var producer broker.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		log.WithField("topic", cfg.Kafka.Topic).Info("Publishing snapshots to Kafka")
		kp := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error(errorsUtils.WrapPathErr(err))
			}
		}()
		producer = kp
	}

	// Services
	deps := service.ServicesDependencies{
		Repos:          repositories,
		Counters:       counters,
		BrokerProducer: producer,
		ParseConfig:    cfg.Viewer.ParseConfig(),
		MaxSizeMB:      cfg.Viewer.MaxSizeMB,
	}
	services, err := service.NewServices(deps)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// HTTP server
	log.Infof("Starting HTTP server...")
	log.Debugf("Server port: %s", cfg.HTTP.Port)
	handler := echo.New()
	handler.HideBanner = true
	httpv1.ConfigureRouter(handler, services, counters)
	httpServer := httpserver.New(handler, httpserver.Port(cfg.HTTP.Port))

	// Prometheus server
	log.Infof("Starting metrics server...")
	log.Debugf("Server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metricsHandler.HideBanner = true
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))

	// Waiting signal
	log.Info("Configuring graceful shutdown")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app - Run - signal: " + s.String())
	case err := <-httpServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-metricsServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	log.Info("Shutting down...")
	if err := httpServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
}
