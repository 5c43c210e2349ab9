package wizard

import (
	"errors"
	"fmt"

	"compliance/types"
)

// Step is a stage of the compliance wizard.
type Step int

const (
	StepSelect Step = iota
	StepProfile
	StepResult
)

func (s Step) String() string {
	switch s {
	case StepSelect:
		return "select"
	case StepProfile:
		return "profile"
	case StepResult:
		return "result"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Next is the step that follows s; StepResult is terminal.
func (s Step) Next() Step {
	if s >= StepResult {
		return StepResult
	}
	return s + 1
}

var (
	ErrWrongStep         = errors.New("action not allowed at this step")
	ErrNoSelection       = errors.New(types.MsgSelectionRequired)
	ErrInvalidSelection  = errors.New(types.MsgSelectionInvalid)
	ErrIncompleteProfile = errors.New(types.MsgProfileIncomplete)
)

// Applicator evaluates applicability rules. *rules.Filter satisfies it.
type Applicator interface {
	GetApplicableSections(parts []types.Part, profile types.OperatorProfile) []types.ApplicabilityResult
}

// Session carries the state of one walk through the wizard.
type Session struct {
	step    Step
	parts   []types.Part
	profile types.OperatorProfile
	result  []types.ApplicabilityResult
}

func NewSession() *Session {
	return &Session{step: StepSelect}
}

func (s *Session) Step() Step                          { return s.step }
func (s *Session) Parts() []types.Part                 { return s.parts }
func (s *Session) Profile() types.OperatorProfile      { return s.profile }
func (s *Session) Result() []types.ApplicabilityResult { return s.result }
func (s *Session) Questions() []Question               { return ProfileQuestions(s.parts) }

// Select records the step 1 options and advances to the profile step.
func (s *Session) Select(optionIDs []int) error {
	if s.step != StepSelect {
		return fmt.Errorf("select at %s step: %w", s.step, ErrWrongStep)
	}
	if len(optionIDs) == 0 {
		return ErrNoSelection
	}
	parts, ok := PartsForOptions(optionIDs)
	if !ok {
		return ErrInvalidSelection
	}
	s.parts = parts
	s.step = s.step.Next()
	return nil
}

// SubmitProfile evaluates the profile and advances to the result step.
func (s *Session) SubmitProfile(profile types.OperatorProfile, applicator Applicator) error {
	if s.step != StepProfile {
		return fmt.Errorf("submit profile at %s step: %w", s.step, ErrWrongStep)
	}
	if len(profile) < types.MinProfileKeys {
		return ErrIncompleteProfile
	}
	s.profile = profile
	s.result = applicator.GetApplicableSections(s.parts, profile)
	s.step = s.step.Next()
	return nil
}

// Back returns to the previous step, discarding that step's output.
func (s *Session) Back() {
	switch s.step {
	case StepProfile:
		s.parts = nil
		s.step = StepSelect
	case StepResult:
		s.profile = nil
		s.result = nil
		s.step = StepProfile
	}
}
