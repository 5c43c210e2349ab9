package wizard

// PipelineKind groups pipelines for gap questions.
type PipelineKind struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var PipelineKinds = []PipelineKind{
	{Value: "gas", Label: "Natural Gas"},
	{Value: "liquid", Label: "Hazardous Liquid"},
	{Value: "co2", Label: "CO₂"},
}

var Concerns = []string{"Leak detection", "Valve inspections", "Corrosion control"}

// AnswerScale is the set of answers a gap question accepts.
var AnswerScale = []string{"yes", "no", "partial"}

var gapTemplates = map[string]map[string][]string{
	"liquid": {
		"Leak detection": {
			"Do you use leak detection technologies suitable for hazardous liquids?",
			"Are leak detection alarms tested and logged regularly?",
		},
	},
}

// GapQuestions returns the step 3 questions for a pipeline kind and concern.
// Unknown combinations return an empty list.
func GapQuestions(kind, concern string) []string {
	questions := gapTemplates[kind][concern]
	out := make([]string, len(questions))
	copy(out, questions)
	return out
}
