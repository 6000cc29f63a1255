package crawler

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/fsnotify/fsnotify"

	"github.com/juliabase/juliabase/internal/pkg/logger"
)

// Watcher reports created and written files under a directory as they
// appear, for crawlers that import continuously instead of on a schedule.
// Change detection and retry still go through the Scanner's state file.
type Watcher struct {
	logger logger.Logger
}

// NewWatcher creates a Watcher.
func NewWatcher(logger logger.Logger) (*Watcher, error) {
	return &Watcher{logger: logger}, nil
}

// Watch calls handler with the path of every file created or written under
// root whose base name matches pattern (empty matches everything). It blocks
// until the context is canceled.
func (w *Watcher) Watch(ctx context.Context, root, pattern string, handler func(path string)) error {
	var matcher *regexp.Regexp
	if pattern != "" {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid file pattern: %w", err)
		}
		matcher = compiled
	}

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = notifier.Close()
	}()

	if err := notifier.Add(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	w.logger.Info(fmt.Sprintf("watching %s", root))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-notifier.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if matcher != nil && !matcher.MatchString(filepath.Base(event.Name)) {
				continue
			}
			handler(event.Name)
		case err, ok := <-notifier.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(fmt.Sprintf("watch error: %v", err))
		}
	}
}
