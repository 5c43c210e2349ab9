package api

import (
	"strings"

	"compliance/types"
	"compliance/wizard"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the static wizard content: part options, profile
// questions and gap questionnaires.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h CatalogHandler) HandleParts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"options": wizard.Options()})
}

// HandleProfileQuestions expects ?parts=191,195.
func (h CatalogHandler) HandleProfileQuestions(c *fiber.Ctx) error {
	var parts []types.Part
	for _, p := range strings.Split(c.Query("parts"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, types.Part(p))
		}
	}
	if len(parts) == 0 {
		return NewValidationError(map[string]string{"parts": types.MsgPartsRequired})
	}
	return c.JSON(fiber.Map{
		"selectedParts": parts,
		"questions":     wizard.ProfileQuestions(parts),
	})
}

// HandleQuestionnaire expects ?pipelineType=liquid&concern=Leak+detection.
func (h CatalogHandler) HandleQuestionnaire(c *fiber.Ctx) error {
	kind := c.Query("pipelineType", "liquid")
	concern := c.Query("concern", wizard.Concerns[0])
	return c.JSON(fiber.Map{
		"pipelineType":  kind,
		"concern":       concern,
		"pipelineTypes": wizard.PipelineKinds,
		"concerns":      wizard.Concerns,
		"answers":       wizard.AnswerScale,
		"questions":     wizard.GapQuestions(kind, concern),
	})
}
