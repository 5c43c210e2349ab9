package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"compliance/app/middleware"
	"compliance/types"
	"compliance/wizard"

	"github.com/gofiber/fiber/v2"
)

// PartFetcher fetches part summaries. *ecfr.Extractor satisfies it.
type PartFetcher interface {
	FetchAll(ctx context.Context, parts []types.Part) []types.PartSummary
}

type SelectionHandler struct {
	fetcher PartFetcher
	logger  *slog.Logger
}

func NewSelectionHandler(fetcher PartFetcher, logger *slog.Logger) *SelectionHandler {
	return &SelectionHandler{
		fetcher: fetcher,
		logger:  logger,
	}
}

// HandleSelection maps the step 1 options to parts and returns a live eCFR
// summary for each one.
func (h *SelectionHandler) HandleSelection(c *fiber.Ctx) error {
	var params types.SelectionParams
	if len(c.Body()) > 0 && c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	parts, ok := wizard.PartsForOptions(params.SelectedOptions)
	if !ok {
		return NewValidationError(map[string]string{"selectedOptions": types.MsgSelectionInvalid})
	}

	h.logger.Info("selected options",
		"request_id", middleware.RequestIDFrom(c),
		"options", params.SelectedOptions,
		"parts", parts,
	)

	summaries := h.fetcher.FetchAll(c.UserContext(), parts)

	total := 0
	for _, s := range summaries {
		total += len(s.Sections)
	}

	return c.JSON(types.SelectionResponse{
		Message:       fmt.Sprintf("Fetched summaries for Parts: %s", joinParts(parts)),
		SelectedParts: parts,
		Data:          summaries,
		TotalSections: total,
	})
}

func joinParts(parts []types.Part) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = string(p)
	}
	return strings.Join(s, ", ")
}
