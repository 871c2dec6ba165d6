// Package watch reloads a program file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/cargogo/internal/ctxlog"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// File watches a single file. The parent directory is watched so that
// editors which save by rename are still noticed.
type File struct {
	path     string
	debounce time.Duration
	onChange func(content string)
}

// NewFile returns a watcher for path calling onChange with the new content.
func NewFile(path string, onChange func(content string)) *File {
	return &File{path: filepath.Clean(path), debounce: DefaultDebounce, onChange: onChange}
}

// WithDebounce overrides the debounce window.
func (f *File) WithDebounce(d time.Duration) *File {
	f.debounce = d
	return f
}

// Run blocks until ctx is done, calling onChange after every settled write.
func (f *File) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("component", "watch", "path", f.path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(f.path), err)
	}
	logger.Info("Watching program file for changes.")

	timer := time.NewTimer(f.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("File event.", "op", ev.Op.String())
			timer.Reset(f.debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)

		case <-timer.C:
			content, err := os.ReadFile(f.path)
			if err != nil {
				// Mid-rename; the Create that follows triggers another read.
				logger.Debug("Changed file not readable yet.", "error", err)
				continue
			}
			f.onChange(string(content))
		}
	}
}
