package fsrepo

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/Egor213/LogLens/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/LogLens/pkg/errors"
)

type LogFile struct {
	path string
}

func NewLogFile(path string) *LogFile {
	return &LogFile{path: path}
}

func (r *LogFile) Path() string {
	return r.path
}

func (r *LogFile) Size(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	info, err := os.Stat(r.path)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(mapErr(err))
	}
	return info.Size(), nil
}

// Read returns the whole file in one piece.
func (r *LogFile) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(mapErr(err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	if len(data) == 0 {
		return nil, errorsUtils.WrapPathErr(repoerrs.ErrEmpty)
	}
	return data, nil
}

// Truncate empties the file in place so writers holding it open keep appending.
func (r *LogFile) Truncate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(r.path); err != nil {
		return errorsUtils.WrapPathErr(mapErr(err))
	}

	f, err := os.OpenFile(r.path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return errorsUtils.WrapPathErr(repoerrs.ErrNotWritable)
		}
		return errorsUtils.WrapPathErr(mapErr(err))
	}
	defer f.Close()

	if err := f.Truncate(0); err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

func mapErr(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return repoerrs.ErrNotFound
	}
	return err
}
