package loader

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay groups the bursts of events editors produce for one save.
const settleDelay = 50 * time.Millisecond

// Watch reloads the set whenever a template file under the directory
// changes. The result of every reload is sent on the returned channel,
// nil on success. The channel is closed when ctx is cancelled.
// Uses fsnotify with a polling fallback.
func (s *Set) Watch(ctx context.Context) <-chan error {
	ch := make(chan error, 16)

	go func() {
		defer close(ch)

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			s.logger.Warn("file notifications unavailable, polling",
				slog.String("dir", s.dir), slog.Any("error", err))
			s.watchPolling(ctx, ch)
			return
		}
		defer watcher.Close()

		if err := s.addDirs(watcher, s.dir); err != nil {
			s.logger.Warn("watch directory failed, polling",
				slog.String("dir", s.dir), slog.Any("error", err))
			s.watchPolling(ctx, ch)
			return
		}

		s.watchEvents(ctx, ch, watcher)
	}()

	return ch
}

// watchEvents reloads after fsnotify reports a relevant change.
func (s *Set) watchEvents(ctx context.Context, ch chan<- error, watcher *fsnotify.Watcher) {
	// Armed by relevant events only.
	settle := time.NewTimer(time.Hour)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := s.addDirs(watcher, event.Name); err != nil {
						s.logger.Debug("watch subdirectory failed",
							slog.String("dir", event.Name), slog.Any("error", err))
					}
					settle.Reset(settleDelay)
					continue
				}
			}
			if !s.matches(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				settle.Reset(settleDelay)
			}

		case <-settle.C:
			s.reload(ch)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Debug("watch error", slog.String("dir", s.dir), slog.Any("error", err))
		}
	}
}

// watchPolling compares file modification times on every tick.
func (s *Set) watchPolling(ctx context.Context, ch chan<- error) {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	s.mu.RLock()
	seen := s.modTimes
	s.mu.RUnlock()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			current := s.snapshot()
			if !sameTimes(seen, current) {
				seen = current
				s.reload(ch)
			}
		}
	}
}

func (s *Set) reload(ch chan<- error) {
	err := s.Load()
	if err != nil {
		s.logger.Warn("template reload failed, keeping previous set",
			slog.String("dir", s.dir), slog.Any("error", err))
	} else {
		s.logger.Info("templates reloaded",
			slog.String("dir", s.dir), slog.Int("count", len(s.Names())))
	}
	select {
	case ch <- err:
	default:
		// Receiver is behind; the latest state is in the set anyway.
	}
}

// snapshot returns the modification time of every template file.
func (s *Set) snapshot() map[string]time.Time {
	current := make(map[string]time.Time)
	_ = filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !s.matches(path) {
			return nil
		}
		if info, err := d.Info(); err == nil {
			current[path] = info.ModTime()
		}
		return nil
	})
	return current
}

func sameTimes(a, b map[string]time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for path, mod := range b {
		if prev, ok := a[path]; !ok || !prev.Equal(mod) {
			return false
		}
	}
	return true
}

// addDirs watches root and every directory below it.
func (s *Set) addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
