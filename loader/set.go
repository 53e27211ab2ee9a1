package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/randalmurphal/fmtkit/template"
)

// DefaultExtensions are the file extensions loaded when none are configured.
var DefaultExtensions = []string{".tmpl", ".txt"}

// Set is a named collection of templates loaded from a directory. It is
// safe for concurrent use.
type Set struct {
	dir      string
	engine   *template.Engine
	logger   *slog.Logger
	exts     []string
	poll     time.Duration

	mu        sync.RWMutex
	templates map[string]string
	modTimes  map[string]time.Time
}

// Option configures a Set.
type Option func(*Set)

// WithExtensions sets the file extensions to load, including the dot.
func WithExtensions(exts ...string) Option {
	return func(s *Set) {
		s.exts = exts
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Set) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPollInterval sets the interval used by Watch when file notifications
// are unavailable.
func WithPollInterval(d time.Duration) Option {
	return func(s *Set) {
		if d > 0 {
			s.poll = d
		}
	}
}

// New creates a set for dir and loads it.
func New(dir string, engine *template.Engine, opts ...Option) (*Set, error) {
	s := &Set{
		dir:    dir,
		engine: engine,
		logger: slog.Default(),
		exts:   DefaultExtensions,
		poll:   time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the directory the set is loaded from.
func (s *Set) Dir() string {
	return s.dir
}

// Load reads and parses every template file. If any file fails, the
// previous templates are kept and the errors are returned joined.
func (s *Set) Load() error {
	templates := make(map[string]string)
	modTimes := make(map[string]time.Time)
	var errs []error

	walkErr := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !s.matches(path) {
			return nil
		}

		name, err := s.nameOf(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if _, dup := templates[name]; dup {
			errs = append(errs, fmt.Errorf("%w: %s (%s)", ErrDuplicateName, name, path))
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			return nil
		}
		text := string(data)
		parsed, err := s.engine.Parse(text)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		parsed.Release()

		templates[name] = text
		if info, err := d.Info(); err == nil {
			modTimes[path] = info.ModTime()
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, fmt.Errorf("load %s: %w", s.dir, walkErr))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	s.mu.Lock()
	s.templates = templates
	s.modTimes = modTimes
	s.mu.Unlock()

	s.logger.Debug("templates loaded",
		slog.String("dir", s.dir),
		slog.Int("count", len(templates)))
	return nil
}

// Names returns the template names, sorted.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template returns the text of the named template.
func (s *Set) Template(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text, ok := s.templates[name]
	return text, ok
}

// Render formats the named template with args.
// Returns ErrNotFound if there is no such template.
func (s *Set) Render(name string, args ...any) (string, error) {
	text, ok := s.Template(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.engine.Render(text, args...)
}

// RenderTo formats the named template with args into w.
func (s *Set) RenderTo(w io.StringWriter, name string, args ...any) error {
	text, ok := s.Template(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.engine.RenderTo(w, text, args...)
}

func (s *Set) matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range s.exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func (s *Set) nameOf(path string) (string, error) {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel))), nil
}
