package config

// ModelInfo describes one Jurassic-1 tier
type ModelInfo struct {
	ID          string `json:"id" doc:"Model identifier used in the endpoint path"`
	Name        string `json:"name" doc:"Display name"`
	Description string `json:"description" doc:"Short description"`
}

// DefaultModel is the tier the Generate action uses
const DefaultModel = "jumbo"

var Models = []ModelInfo{
	{
		ID:          "large",
		Name:        "J1 Large",
		Description: "Fastest, lowest cost",
	},
	{
		ID:          "grande",
		Name:        "J1 Grande",
		Description: "Balanced quality and speed",
	},
	{
		ID:          "jumbo",
		Name:        "J1 Jumbo",
		Description: "Largest, best writing",
	},
}

func GetModel(id string) *ModelInfo {
	for _, m := range Models {
		if m.ID == id {
			return &m
		}
	}
	return nil
}

func ModelIDs() []string {
	ids := make([]string, 0, len(Models))
	for _, m := range Models {
		ids = append(ids, m.ID)
	}
	return ids
}
