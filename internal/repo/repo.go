package repo

import (
	"context"

	"github.com/Egor213/LogLens/internal/repo/fsrepo"
)

type LogFile interface {
	Path() string
	Size(ctx context.Context) (int64, error)
	Read(ctx context.Context) ([]byte, error)
	Truncate(ctx context.Context) error
}

type Repositories struct {
	LogFile
}

func NewRepositories(path string) *Repositories {
	return &Repositories{
		LogFile: fsrepo.NewLogFile(path),
	}
}
