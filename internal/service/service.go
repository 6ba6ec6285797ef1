package service

import (
	"context"

	"github.com/Egor213/LogLens/internal/broker"
	"github.com/Egor213/LogLens/internal/domain"
	"github.com/Egor213/LogLens/internal/metrics"
	"github.com/Egor213/LogLens/internal/repo"
)

type Log interface {
	Issues(ctx context.Context, ignoreSize bool) string
	GetLog(ctx context.Context, ignoreSize bool) ([]domain.LogRecord, error)
	Truncate(ctx context.Context) string
	FileSize(ctx context.Context) (int64, error)
}

type Services struct {
	Log
}

type ServicesDependencies struct {
	Repos          *repo.Repositories
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
	ParseConfig    domain.ParseConfig
	MaxSizeMB      int
}

func NewServices(deps ServicesDependencies) (*Services, error) {
	logService, err := NewLogService(deps.Repos.LogFile, deps.Counters, deps.BrokerProducer,
		deps.ParseConfig, deps.MaxSizeMB)
	if err != nil {
		return nil, err
	}
	return &Services{
		Log: logService,
	}, nil
}
