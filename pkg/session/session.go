// Package session keeps the navigation tree being edited and moves it in and
// out of text. A Session is used from one goroutine at a time.
package session

import (
	"errors"
	"fmt"

	"github.com/rexliu/navb/pkg/codec"
	"github.com/rexliu/navb/pkg/logging"
	"github.com/rexliu/navb/pkg/nav"
)

// Format selects the text encoding for export.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat indicates an export format other than json or yaml.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Session holds the current forest snapshot and the last validation errors.
type Session struct {
	forest    nav.Forest
	errors    []string
	validator *nav.Validator
	logger    *logging.Logger
}

// New returns an empty session. A nil validator uses the default reserved
// paths; a nil logger disables logging.
func New(validator *nav.Validator, logger *logging.Logger) *Session {
	if validator == nil {
		validator = nav.NewValidator(nil)
	}
	return &Session{validator: validator, logger: logger}
}

// Forest returns the current snapshot. Callers must not modify it.
func (s *Session) Forest() nav.Forest {
	return s.forest
}

// Errors returns the errors from the last import or validation.
func (s *Session) Errors() []string {
	return s.errors
}

// Import replaces the snapshot with the configuration in text. Malformed
// text leaves the session untouched. Validation problems do not block the
// import; they are returned and kept in Errors.
func (s *Session) Import(text []byte, format Format) (nav.Result, error) {
	var (
		cfg nav.Config
		err error
	)
	switch format {
	case FormatJSON, "":
		cfg, err = codec.Parse(text)
	case FormatYAML:
		cfg, err = codec.ParseYAML(text)
	default:
		return nav.Result{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nav.Result{}, err
	}
	s.Load(cfg)
	res := s.validator.Validate(cfg)
	s.errors = res.Errors
	if !res.IsValid && s.logger != nil {
		s.logger.Warn().Strs("errors", res.Errors).Msg("navigation validation warnings")
	}
	return res, nil
}

// Load replaces the snapshot with cfg without validating it.
func (s *Session) Load(cfg nav.Config) {
	s.forest = nav.ConfigToForest(cfg)
	s.errors = nil
	if s.logger != nil {
		s.logger.Debug().Int("nodes", nav.Count(s.forest)).Msg("loaded navigation")
	}
}

// Reset clears the snapshot.
func (s *Session) Reset() {
	s.forest = nil
	s.errors = nil
}

// Apply runs a batch of edits against the snapshot. The batch is
// all-or-nothing.
func (s *Session) Apply(ops ...nav.Op) error {
	next, err := nav.ApplyOps(s.forest, ops)
	if err != nil {
		return err
	}
	s.forest = next
	return nil
}

// Config rebuilds the canonical configuration from the snapshot. Invariant
// breaches are skipped and logged.
func (s *Session) Config() nav.Config {
	if s.logger != nil {
		for _, v := range nav.Inspect(s.forest) {
			s.logger.Warn().Str("node", v.NodeID).Str("reason", v.Reason).Msg("skipping invalid node")
		}
	}
	return nav.ForestToConfig(s.forest)
}

// Validate revalidates the snapshot and stores the result.
func (s *Session) Validate() nav.Result {
	res := s.validator.Validate(s.Config())
	s.errors = res.Errors
	return res
}

// Export renders the snapshot as text.
func (s *Session) Export(format Format) ([]byte, error) {
	cfg := s.Config()
	switch format {
	case FormatJSON, "":
		return codec.Format(cfg)
	case FormatYAML:
		return codec.FormatYAML(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
