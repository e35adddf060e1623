package dto

import (
	"time"

	"career-coach/internal/domain/insight"
)

type InsightResponse struct {
	Industry          string                `json:"industry"`
	SalaryRanges      []insight.SalaryRange `json:"salaryRanges"`
	GrowthRate        float64               `json:"growthRate"`
	DemandLevel       string                `json:"demandLevel"`
	TopSkills         []string              `json:"topSkills"`
	MarketOutlook     string                `json:"marketOutlook"`
	KeyTrends         []string              `json:"keyTrends"`
	RecommendedSkills []string              `json:"recommendedSkills"`
	LastUpdated       time.Time             `json:"lastUpdated"`
	NextUpdate        time.Time             `json:"nextUpdate"`
}

func NewInsightResponse(rec insight.IndustryInsight) InsightResponse {
	return InsightResponse{
		Industry:          rec.Industry,
		SalaryRanges:      rec.SalaryRanges,
		GrowthRate:        rec.GrowthRate,
		DemandLevel:       rec.DemandLevel,
		TopSkills:         rec.TopSkills,
		MarketOutlook:     rec.MarketOutlook,
		KeyTrends:         rec.KeyTrends,
		RecommendedSkills: rec.RecommendedSkills,
		LastUpdated:       rec.LastUpdated,
		NextUpdate:        rec.NextUpdate,
	}
}
