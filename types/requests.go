package types

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MsgSelectionRequired = "Selected options are required (array of 1, 2, or 3)."
	MsgSelectionInvalid  = "Invalid selection. Choose from 1 (Part 191), 2 (Part 192), or 3 (Part 195)."
	MsgPartsRequired     = "Selected parts required."
	MsgProfileIncomplete = "Incomplete profile."
)

// MinProfileKeys is the fewest attributes a submitted profile may carry.
const MinProfileKeys = 5

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type Validater interface {
	Validate() map[string]string
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

// SelectionParams is the step 1 request: option numbers 1, 2 or 3.
type SelectionParams struct {
	SelectedOptions []int `json:"selectedOptions" validate:"required,min=1,dive,oneof=1 2 3"`
}

func (params *SelectionParams) Validate() map[string]string {
	errs := fieldErrors(validate.Struct(params))
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, 1)
	for _, e := range errs {
		if e.Field() == "selectedOptions" {
			out["selectedOptions"] = MsgSelectionRequired
			return out
		}
	}
	out["selectedOptions"] = MsgSelectionInvalid
	return out
}

// ProfileParams is the step 2 request.
type ProfileParams struct {
	SelectedParts []Part          `json:"selectedParts" validate:"required,min=1"`
	Profile       OperatorProfile `json:"profile" validate:"required,min=5"`
}

func (params *ProfileParams) Validate() map[string]string {
	errs := fieldErrors(validate.Struct(params))
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, 1)
	for _, e := range errs {
		if e.Field() == "selectedParts" {
			out["selectedParts"] = MsgPartsRequired
			return out
		}
	}
	out["profile"] = MsgProfileIncomplete
	return out
}

func fieldErrors(err error) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return errs
	}
	return nil
}

type SelectionResponse struct {
	Message       string        `json:"message"`
	SelectedParts []Part        `json:"selectedParts"`
	Data          []PartSummary `json:"data"`
	TotalSections int           `json:"totalSections"`
}

type ProfileResponse struct {
	Message            string                `json:"message"`
	ProfileSummary     OperatorProfile       `json:"profileSummary"`
	SelectedParts      []Part                `json:"selectedParts"`
	ApplicableSections []ApplicabilityResult `json:"applicableSections"`
	NextStep           string                `json:"nextStep"`
}
