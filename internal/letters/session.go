package letters

import (
	"errors"
	"fmt"
	"sort"

	"github.com/talentohq/ats-server/internal/domain"
)

// SessionState tracks one document-edit session's progress.
type SessionState int

const (
	StateNoTemplate SessionState = iota
	StateTemplateLoaded
	StateDataResolved
	StateValidated
	StateGenerated
)

func (s SessionState) String() string {
	switch s {
	case StateNoTemplate:
		return "no_template"
	case StateTemplateLoaded:
		return "template_loaded"
	case StateDataResolved:
		return "data_resolved"
	case StateValidated:
		return "validated"
	case StateGenerated:
		return "generated"
	default:
		return "unknown"
	}
}

var errNoTemplate = errors.New("no template loaded")

// Session drives one letter from template upload to generated document.
// It is not safe for concurrent use; each editing user gets their own.
type Session struct {
	state    SessionState
	resolver *Resolver
	archive  []byte
	fields   []string
	values   map[string]string
}

// NewSession starts an empty session.
func NewSession(resolver *Resolver) *Session {
	return &Session{state: StateNoTemplate, resolver: resolver}
}

// State reports the session's current state.
func (s *Session) State() SessionState { return s.state }

// Fields returns the detected placeholder names, sorted.
func (s *Session) Fields() []string { return s.fields }

// Values returns the current field value map.
func (s *Session) Values() map[string]string { return s.values }

// LoadTemplate detects fields in the uploaded template and resets any
// previously resolved values.
func (s *Session) LoadTemplate(archiveBytes []byte) ([]string, error) {
	fields, err := DetectFields(archiveBytes)
	if err != nil {
		return nil, err
	}
	s.archive = append([]byte(nil), archiveBytes...)
	s.fields = fields
	s.values = nil
	s.state = StateTemplateLoaded
	return fields, nil
}

// Resolve auto-fills every detected field from the candidate and
// process. Unmatched fields come back empty for manual entry.
func (s *Session) Resolve(cand *domain.Candidate, proc *domain.Process) (map[string]string, error) {
	if s.state < StateTemplateLoaded {
		return nil, errNoTemplate
	}
	s.values = s.resolver.AutoFill(s.fields, cand, proc)
	s.state = StateDataResolved
	return s.values, nil
}

// SetValue records a manual edit. Editing after validation drops the
// session back to the resolved state so validation runs again.
func (s *Session) SetValue(name, value string) error {
	if s.state < StateDataResolved {
		return errors.New("no resolved data to edit")
	}
	if _, ok := s.values[name]; !ok {
		return fmt.Errorf("unknown template field %q", name)
	}
	s.values[name] = value
	s.state = StateDataResolved
	return nil
}

// Validate checks that every detected field holds a non-empty value.
// On failure it returns a MissingFieldError listing the blank fields
// and the session stays un-validated.
func (s *Session) Validate() error {
	if s.state < StateDataResolved {
		return errNoTemplate
	}
	var missing []string
	for _, f := range s.fields {
		if s.values[f] == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingFieldError{Fields: missing}
	}
	s.state = StateValidated
	return nil
}

// Generate validates if needed and renders the final document.
func (s *Session) Generate() ([]byte, error) {
	if s.state < StateValidated {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	out, err := Render(s.archive, s.values)
	if err != nil {
		return nil, err
	}
	s.state = StateGenerated
	return out, nil
}
