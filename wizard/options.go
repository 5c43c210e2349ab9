package wizard

import "compliance/types"

// Option is one card on the step 1 selection screen.
type Option struct {
	ID          int        `json:"id"`
	Part        types.Part `json:"part"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

var options = []Option{
	{
		ID:          1,
		Part:        types.Part191,
		Title:       "Part 191 Only",
		Description: "Gas Reporting: If your main need is incident/annual reporting for gas/LNG/UNGSF facilities.",
	},
	{
		ID:          2,
		Part:        types.Part192,
		Title:       "Part 192",
		Description: "Gas Pipeline Standards: If operating natural gas transmission, distribution, or gathering lines.",
	},
	{
		ID:          3,
		Part:        types.Part195,
		Title:       "Part 195",
		Description: "Hazardous Liquids Standards: If handling crude oil, refined products, or CO2 pipelines.",
	},
}

func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// PartForOption maps a selection number (1, 2, 3) to its regulation part.
func PartForOption(id int) (types.Part, bool) {
	for _, o := range options {
		if o.ID == id {
			return o.Part, true
		}
	}
	return "", false
}

// PartsForOptions maps every selection number, keeping order and duplicates.
// ok is false if any number is unknown.
func PartsForOptions(ids []int) ([]types.Part, bool) {
	parts := make([]types.Part, 0, len(ids))
	for _, id := range ids {
		part, ok := PartForOption(id)
		if !ok {
			return nil, false
		}
		parts = append(parts, part)
	}
	return parts, true
}
