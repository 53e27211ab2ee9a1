// Package settings holds the configuration consumed by the parser and the
// formatting engine, and loads it from YAML, TOML or JSON files and the
// environment.
package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/randalmurphal/fmtkit/pool"
)

// Settings configures parsing and formatting.
type Settings struct {
	// CaseSensitivity applies to selector lookup and formatter names.
	CaseSensitivity CaseSensitivity `json:"case_sensitivity" yaml:"case_sensitivity" toml:"case_sensitivity"`

	// Parser configures the template parser.
	Parser ParserSettings `json:"parser" yaml:"parser" toml:"parser"`

	// Formatter configures the formatting engine.
	Formatter FormatterSettings `json:"formatter" yaml:"formatter" toml:"formatter"`

	// Pooling configures the process-wide object pools.
	Pooling PoolSettings `json:"pooling" yaml:"pooling" toml:"pooling"`
}

// ParserSettings configures the template parser.
type ParserSettings struct {
	// ErrorAction handles malformed placeholders. Default: ThrowError.
	ErrorAction ErrorAction `json:"error_action" yaml:"error_action" toml:"error_action"`

	// EscapeMode selects backslash escapes, doubled braces, or both.
	EscapeMode EscapeMode `json:"escape_mode" yaml:"escape_mode" toml:"escape_mode"`

	// EscapeChar is the escape character. Default: "\".
	EscapeChar string `json:"escape_char" yaml:"escape_char" toml:"escape_char" jsonschema:"maxLength=1"`

	// SelectorChars are characters allowed in selectors in addition to
	// letters, digits, '_' and '-'.
	SelectorChars string `json:"selector_chars,omitempty" yaml:"selector_chars,omitempty" toml:"selector_chars,omitempty"`

	// OperatorChars are selector operators in addition to '.', '?', '[' and ']'.
	OperatorChars string `json:"operator_chars,omitempty" yaml:"operator_chars,omitempty" toml:"operator_chars,omitempty"`
}

// FormatterSettings configures the formatting engine.
type FormatterSettings struct {
	// ErrorAction handles selector and formatter failures. Default: ThrowError.
	ErrorAction ErrorAction `json:"error_action" yaml:"error_action" toml:"error_action"`

	// MaxNestingDepth bounds nested format clauses. Default: 64.
	MaxNestingDepth int `json:"max_nesting_depth" yaml:"max_nesting_depth" toml:"max_nesting_depth" jsonschema:"minimum=1"`

	// CacheSize is the number of parsed templates kept. 0 disables the cache.
	CacheSize int `json:"cache_size" yaml:"cache_size" toml:"cache_size" jsonschema:"minimum=0"`

	// AlignmentFillChar pads aligned placeholders. Default: " ".
	AlignmentFillChar string `json:"alignment_fill_char" yaml:"alignment_fill_char" toml:"alignment_fill_char" jsonschema:"maxLength=1"`
}

// PoolSettings configures the process-wide object pools.
type PoolSettings struct {
	// Enabled turns object reuse on. Default: true.
	Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled"`

	// ThreadSafe selects the concurrent pool backend. Default: true.
	ThreadSafe bool `json:"thread_safe" yaml:"thread_safe" toml:"thread_safe"`
}

// Default returns Settings with sensible defaults.
func Default() Settings {
	return Settings{
		CaseSensitivity: CaseSensitive,
		Parser: ParserSettings{
			ErrorAction: ThrowError,
			EscapeMode:  EscapeBoth,
			EscapeChar:  `\`,
		},
		Formatter: FormatterSettings{
			ErrorAction:       ThrowError,
			MaxNestingDepth:   64,
			CacheSize:         256,
			AlignmentFillChar: " ",
		},
		Pooling: PoolSettings{
			Enabled:    true,
			ThreadSafe: true,
		},
	}
}

// IgnoreCase reports whether names are matched case-insensitively.
func (s *Settings) IgnoreCase() bool {
	return s.CaseSensitivity == CaseInsensitive
}

// Escape returns the escape character.
func (p *ParserSettings) Escape() rune {
	r, _ := utf8.DecodeRuneInString(p.EscapeChar)
	if r == utf8.RuneError {
		return '\\'
	}
	return r
}

// FillChar returns the alignment fill character.
func (f *FormatterSettings) FillChar() rune {
	r, _ := utf8.DecodeRuneInString(f.AlignmentFillChar)
	if r == utf8.RuneError {
		return ' '
	}
	return r
}

// Apply sets the process-wide pool flags. Call it once at startup, before
// any engine renders; switching the thread-safety mode rebuilds every pool.
func (p PoolSettings) Apply() {
	pool.SetEnabled(p.Enabled)
	pool.SetThreadSafe(p.ThreadSafe)
}

// LoadFromEnv overrides fields from environment variables with the FMTKIT_
// prefix. Unparseable values are reported as errors.
//
// Supported variables:
//   - FMTKIT_CASE_SENSITIVITY: CaseSensitive | CaseInsensitive
//   - FMTKIT_PARSE_ERROR_ACTION: ThrowError | OutputErrorInResult | Ignore | MaintainTokens
//   - FMTKIT_FORMAT_ERROR_ACTION: same values as above
//   - FMTKIT_ESCAPE_MODE: Both | Backslash | DoubledBraces
//   - FMTKIT_MAX_NESTING_DEPTH: integer
//   - FMTKIT_CACHE_SIZE: integer
//   - FMTKIT_POOLING: bool
//   - FMTKIT_POOL_THREAD_SAFE: bool
func (s *Settings) LoadFromEnv() error {
	if v := os.Getenv("FMTKIT_CASE_SENSITIVITY"); v != "" {
		if err := s.CaseSensitivity.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("FMTKIT_CASE_SENSITIVITY: %w", err)
		}
	}
	if v := os.Getenv("FMTKIT_PARSE_ERROR_ACTION"); v != "" {
		if err := s.Parser.ErrorAction.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("FMTKIT_PARSE_ERROR_ACTION: %w", err)
		}
	}
	if v := os.Getenv("FMTKIT_FORMAT_ERROR_ACTION"); v != "" {
		if err := s.Formatter.ErrorAction.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("FMTKIT_FORMAT_ERROR_ACTION: %w", err)
		}
	}
	if v := os.Getenv("FMTKIT_ESCAPE_MODE"); v != "" {
		if err := s.Parser.EscapeMode.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("FMTKIT_ESCAPE_MODE: %w", err)
		}
	}
	if v := os.Getenv("FMTKIT_MAX_NESTING_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: FMTKIT_MAX_NESTING_DEPTH: %w", ErrInvalid, err)
		}
		s.Formatter.MaxNestingDepth = n
	}
	if v := os.Getenv("FMTKIT_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: FMTKIT_CACHE_SIZE: %w", ErrInvalid, err)
		}
		s.Formatter.CacheSize = n
	}
	if v := os.Getenv("FMTKIT_POOLING"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: FMTKIT_POOLING: %w", ErrInvalid, err)
		}
		s.Pooling.Enabled = b
	}
	if v := os.Getenv("FMTKIT_POOL_THREAD_SAFE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: FMTKIT_POOL_THREAD_SAFE: %w", ErrInvalid, err)
		}
		s.Pooling.ThreadSafe = b
	}
	return nil
}

// FromEnv returns Default() with environment overrides applied.
func FromEnv() (Settings, error) {
	s := Default()
	err := s.LoadFromEnv()
	return s, err
}

// reservedChars have a fixed meaning in the template grammar.
const reservedChars = "{}:,()"

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if s.CaseSensitivity < CaseSensitive || s.CaseSensitivity > CaseInsensitive {
		return fmt.Errorf("%w: case_sensitivity %d", ErrInvalid, s.CaseSensitivity)
	}
	for name, a := range map[string]ErrorAction{
		"parser.error_action":    s.Parser.ErrorAction,
		"formatter.error_action": s.Formatter.ErrorAction,
	} {
		if a < ThrowError || a > MaintainTokens {
			return fmt.Errorf("%w: %s %d", ErrInvalid, name, a)
		}
	}
	if s.Parser.EscapeMode < EscapeBoth || s.Parser.EscapeMode > EscapeDoubledBraces {
		return fmt.Errorf("%w: parser.escape_mode %d", ErrInvalid, s.Parser.EscapeMode)
	}
	if utf8.RuneCountInString(s.Parser.EscapeChar) != 1 {
		return fmt.Errorf("%w: parser.escape_char must be a single character, got %q", ErrInvalid, s.Parser.EscapeChar)
	}
	if strings.ContainsAny(s.Parser.EscapeChar, reservedChars) {
		return fmt.Errorf("%w: parser.escape_char %q is reserved", ErrInvalid, s.Parser.EscapeChar)
	}
	if strings.ContainsAny(s.Parser.SelectorChars, reservedChars+".?[]"+s.Parser.EscapeChar) {
		return fmt.Errorf("%w: parser.selector_chars %q contains reserved characters", ErrInvalid, s.Parser.SelectorChars)
	}
	if strings.ContainsAny(s.Parser.OperatorChars, reservedChars+s.Parser.EscapeChar) {
		return fmt.Errorf("%w: parser.operator_chars %q contains reserved characters", ErrInvalid, s.Parser.OperatorChars)
	}
	if s.Formatter.MaxNestingDepth < 1 {
		return fmt.Errorf("%w: formatter.max_nesting_depth must be >= 1, got %d", ErrInvalid, s.Formatter.MaxNestingDepth)
	}
	if s.Formatter.CacheSize < 0 {
		return fmt.Errorf("%w: formatter.cache_size must be >= 0, got %d", ErrInvalid, s.Formatter.CacheSize)
	}
	if utf8.RuneCountInString(s.Formatter.AlignmentFillChar) != 1 {
		return fmt.Errorf("%w: formatter.alignment_fill_char must be a single character, got %q", ErrInvalid, s.Formatter.AlignmentFillChar)
	}
	return nil
}
