package types

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Part is a top-level division of the pipeline-safety regulations (49 CFR).
type Part string

const (
	Part191 Part = "191"
	Part192 Part = "192"
	Part195 Part = "195"
)

// Parts lists the regulation parts the assistant tracks, in option order.
var Parts = []Part{Part191, Part192, Part195}

// Section is a cited subdivision of a part. Sections scraped from eCFR carry
// Content, sections produced by the applicability rules carry Applicability.
type Section struct {
	ID            string `json:"id"`
	Heading       string `json:"heading"`
	Content       string `json:"content,omitempty"`
	Applicability string `json:"applicability,omitempty"`
}

// PartSummary is either a successful extraction (Title, Summary, Sections,
// FullURL, FetchedAt) or a failure (Error, FallbackURL). Never both.
type PartSummary struct {
	Part        Part       `json:"part"`
	Title       string     `json:"title,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Sections    []Section  `json:"sections,omitempty"`
	FullURL     string     `json:"fullUrl,omitempty"`
	FetchedAt   *time.Time `json:"fetchedAt,omitempty"`
	Error       string     `json:"error,omitempty"`
	FallbackURL string     `json:"fallbackUrl,omitempty"`
}

func (s PartSummary) Failed() bool {
	return s.Error != ""
}

// MarshalJSON keeps "sections" as an array on successful summaries even when
// nothing was extracted.
func (s PartSummary) MarshalJSON() ([]byte, error) {
	type plain PartSummary
	if s.Failed() {
		return json.Marshal(plain(s))
	}
	sections := s.Sections
	if sections == nil {
		sections = []Section{}
	}
	return json.Marshal(struct {
		plain
		Sections []Section `json:"sections"`
	}{plain(s), sections})
}

// ApplicabilityResult holds the sections of one part that apply to a profile.
type ApplicabilityResult struct {
	Part     Part      `json:"part"`
	Sections []Section `json:"sections"`
}

// OperatorProfile is the free-form set of pipeline-segment attributes
// collected in step 2 (pipelineType, diameter, locationClass, ...).
type OperatorProfile map[string]any

// Value returns the attribute rendered as a string. Numbers use their
// shortest decimal form; ok is false when the key is absent or null.
func (p OperatorProfile) Value(key string) (string, bool) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// String returns the attribute only when it was supplied as a string.
func (p OperatorProfile) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// Truthy reports whether the attribute holds a non-empty, non-zero value.
func (p OperatorProfile) Truthy(key string) bool {
	switch v := p[key].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	default:
		s, ok := p.Value(key)
		return ok && strings.TrimSpace(s) != ""
	}
}
