package wizard

import (
	"slices"

	"compliance/types"
)

type QuestionType string

const (
	QuestionSelect QuestionType = "select"
	QuestionNumber QuestionType = "number"
	QuestionDate   QuestionType = "date"
)

// Question is one operator-profile field asked in step 2.
type Question struct {
	Key     string       `json:"key"`
	Label   string       `json:"label"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"`
}

var coreQuestions = []Question{
	{Key: "pipelineType", Label: "Pipeline Type", Type: QuestionSelect,
		Options: []string{"Transmission", "Distribution", "Gathering", "Hazardous Liquids"}},
	{Key: "diameter", Label: "Nominal Diameter (inches)", Type: QuestionNumber},
	{Key: "locationClass", Label: "Location Class (1-4 for gas; N/A for liquids)", Type: QuestionSelect,
		Options: []string{"1", "2", "3", "4", "N/A"}},
	{Key: "maopMop", Label: "MAOP/MOP (psi)", Type: QuestionNumber},
	{Key: "lastAssessmentDate", Label: "Last Integrity Assessment Date (YYYY-MM-DD)", Type: QuestionDate},
	{Key: "impStatus", Label: "Integrity Management Program Status", Type: QuestionSelect,
		Options: []string{"Fully Implemented", "Delayed", "Not Started", "N/A"}},
	{Key: "segmentLength", Label: "Segment Length (miles)", Type: QuestionNumber},
	{Key: "onshoreOffshore", Label: "Location", Type: QuestionSelect,
		Options: []string{"Onshore", "Offshore"}},
}

var productTypeQuestion = Question{
	Key: "productType", Label: "Product Type", Type: QuestionSelect,
	Options: []string{"Crude Oil", "Refined Products", "CO2", "Other"},
}

var reportFrequencyQuestion = Question{
	Key: "reportFrequency", Label: "Reporting Frequency", Type: QuestionSelect,
	Options: []string{"Annual", "Semi-Annual", "As Needed"},
}

// ProfileQuestions returns the step 2 form for the selected parts: the core
// questions, plus product type for 195 and reporting frequency for 191.
func ProfileQuestions(parts []types.Part) []Question {
	questions := slices.Clone(coreQuestions)
	if slices.Contains(parts, types.Part195) {
		questions = append(questions, productTypeQuestion)
	}
	if slices.Contains(parts, types.Part191) {
		questions = append(questions, reportFrequencyQuestion)
	}
	return questions
}
