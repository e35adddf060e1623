package insight

import "time"

const (
	DemandHigh   = "High"
	DemandMedium = "Medium"
	DemandLow    = "Low"
)

const (
	OutlookPositive = "Positive"
	OutlookNeutral  = "Neutral"
	OutlookNegative = "Negative"
)

type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// Payload is the industry analysis produced by the model. JSON tags match the
// schema the model is prompted to emit, so a cleaned response unmarshals
// directly into it.
type Payload struct {
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       string        `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     string        `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
}

// IndustryInsight is the persisted record. At most one exists per industry;
// it is shared read state across every user of that industry.
type IndustryInsight struct {
	Industry string `json:"industry"`
	Payload

	LastUpdated time.Time `json:"lastUpdated"`
	NextUpdate  time.Time `json:"nextUpdate"`
}

// Age reports how long ago the record was last refreshed.
func (i IndustryInsight) Age(now time.Time) time.Duration {
	return now.Sub(i.LastUpdated)
}
