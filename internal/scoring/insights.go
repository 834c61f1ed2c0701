package scoring

import "apexfinance/internal/models"

// Band classifies a score for display.
type Band string

const (
	BandCritical Band = "critical"
	BandWatch    Band = "watch"
	BandHealthy  Band = "healthy"
)

// BandFor maps a score to its band: below 50 is critical, below 80 is watch.
func BandFor(score int) Band {
	switch {
	case score < 50:
		return BandCritical
	case score < 80:
		return BandWatch
	default:
		return BandHealthy
	}
}

// InsightType drives how a client highlights an insight.
type InsightType string

const (
	InsightWarning InsightType = "warning"
	InsightSuccess InsightType = "success"
	InsightInfo    InsightType = "info"
)

// Insight is a short piece of advice derived from the score.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

// alertThreshold is the score under which the mode-specific warning replaces
// the positive message.
const alertThreshold = 70

// Insights returns advice for a workspace in mode with the given score.
func Insights(mode Mode, score int) []Insight {
	var list []Insight

	if mode == models.WorkspaceModeProfessional {
		if score < alertThreshold {
			list = append(list, Insight{
				Type:        InsightWarning,
				Title:       "High Burn Rate Detected",
				Description: "Expenses are consuming most of the revenue. Review spending to extend runway.",
			})
		} else {
			list = append(list, Insight{
				Type:        InsightSuccess,
				Title:       "Runway Stable",
				Description: "Burn rate is well within acceptable margins.",
			})
		}
	} else {
		if score < alertThreshold {
			list = append(list, Insight{
				Type:        InsightWarning,
				Title:       "Discretionary Spend Alert",
				Description: "Non-essential expenses are taking a large share of your income and slowing down your goals.",
			})
		} else {
			list = append(list, Insight{
				Type:        InsightSuccess,
				Title:       "Savings Streak",
				Description: "Discretionary spending is under control. Keep it up to reach your goals sooner.",
			})
		}
	}

	if BandFor(score) == BandCritical {
		list = append(list, Insight{
			Type:        InsightInfo,
			Title:       "Spending Exceeds Half of Income",
			Description: "More than half of your income is being spent. Setting monthly budgets on your largest categories can help.",
		})
	}

	return list
}
