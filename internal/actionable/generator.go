package actionable

import (
	"fmt"

	"allergy-insights-go/internal/types"
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// riskThreshold is the posterior mean above which the top group is worth a
// targeted review rather than routine monitoring.
const riskThreshold = 0.6

// Generate summarizes a ranked group table into one card for the API
// response. The table is already sorted descending, so the top row is the
// highest-risk group.
func Generate(rows []types.GroupStats) ActionCard {
	if len(rows) == 0 {
		return ActionCard{
			Insight: "No ingredient groups observed",
			Action:  "Check the dataset and group table",
			Impact:  "No ranking available",
		}
	}
	top := rows[0]
	if top.PosteriorMean >= riskThreshold {
		return ActionCard{
			Insight: fmt.Sprintf("Highest estimated allergy risk: %s (p=%.2f, %d/%d products)",
				top.Group, top.PosteriorMean, top.AllergyHits, top.NProducts),
			Action:  fmt.Sprintf("Review products containing %s ingredients for reformulation", top.Group),
			Impact:  "Reduce reported symptom rate in the highest-risk group",
		}
	}
	return ActionCard{
		Insight: "No ingredient group stands out strongly",
		Action:  "Monitor and collect more product reports",
		Impact:  "Low immediate intervention",
	}
}
