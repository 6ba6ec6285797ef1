package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	errorsUtils "github.com/Egor213/LogLens/pkg/errors"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reports changes to a single file. It watches the parent directory so
// the file may be created, truncated or replaced while watched.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
}

func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, errorsUtils.WrapPathErr(err)
	}

	return &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: defaultDebounce,
	}, nil
}

// Run calls onChange after each burst of writes to the file, until ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			onChange()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.WithField("error", err).Warn("Watcher error")
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
