package api

import (
	"log/slog"

	"compliance/app/middleware"
	"compliance/types"
	"compliance/wizard"

	"github.com/gofiber/fiber/v2"
)

const nextStep = "Dynamic questionnaire based on gaps"

type ProfileHandler struct {
	applicator wizard.Applicator
	logger     *slog.Logger
}

func NewProfileHandler(applicator wizard.Applicator, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		applicator: applicator,
		logger:     logger,
	}
}

// HandleProfile filters the selected parts down to the sections that apply
// to the submitted operator profile.
func (h *ProfileHandler) HandleProfile(c *fiber.Ctx) error {
	var params types.ProfileParams
	if len(c.Body()) > 0 && c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	h.logger.Info("profile submitted",
		"request_id", middleware.RequestIDFrom(c),
		"parts", params.SelectedParts,
		"profile_keys", len(params.Profile),
	)

	return c.JSON(types.ProfileResponse{
		Message:            "Profile processed - Applicable regulations filtered.",
		ProfileSummary:     params.Profile,
		SelectedParts:      params.SelectedParts,
		ApplicableSections: h.applicator.GetApplicableSections(params.SelectedParts, params.Profile),
		NextStep:           nextStep,
	})
}
