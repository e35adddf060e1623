package insight

import "career-coach/internal/domain/insight"

// FallbackPayload is the fixed placeholder returned whenever generation or
// persistence fails, so insight callers never see an empty or error value.
func FallbackPayload() insight.Payload {
	return insight.Payload{
		SalaryRanges: []insight.SalaryRange{
			{Role: "Entry Level", Min: 50000, Max: 80000, Median: 65000, Location: "Remote"},
			{Role: "Mid Level", Min: 80000, Max: 120000, Median: 100000, Location: "Remote"},
			{Role: "Senior Level", Min: 120000, Max: 180000, Median: 150000, Location: "Remote"},
		},
		GrowthRate:        8.5,
		DemandLevel:       insight.DemandHigh,
		TopSkills:         []string{"JavaScript", "React", "Node.js", "Python", "AWS"},
		MarketOutlook:     insight.OutlookPositive,
		KeyTrends:         []string{"Remote work adoption", "AI integration", "Cloud migration"},
		RecommendedSkills: []string{"TypeScript", "Docker", "Kubernetes", "GraphQL", "Machine Learning"},
	}
}
