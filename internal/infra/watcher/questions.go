// Package watcher notifies the game when the question file is edited outside
// the game.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 500 * time.Millisecond

// QuestionFileWatcher watches the directory holding the question file and
// emits a signal on Changes after the file has been written, created or
// replaced. Bursts of events are collapsed into one signal.
type QuestionFileWatcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
	fsw      *fsnotify.Watcher
	changes  chan struct{}
}

// NewQuestionFileWatcher starts watching the directory of path. Events are
// delivered once Run is called.
func NewQuestionFileWatcher(path string, debounce time.Duration, logger *zap.Logger) (*QuestionFileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve question file path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &QuestionFileWatcher{
		path:     abs,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		changes:  make(chan struct{}, 1),
	}, nil
}

// Changes returns the channel signalled after the question file changed.
func (w *QuestionFileWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Run processes file system events until ctx is cancelled.
func (w *QuestionFileWatcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.Debug("question file changed",
				zap.String("file", event.Name),
				zap.String("operation", event.Op.String()),
			)
			fire = time.After(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
