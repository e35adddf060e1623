package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"career-coach/internal/database"
	"career-coach/internal/domain/insight"
)

type InsightRepository struct {
	db database.DB
}

func NewInsightRepository(db database.DB) *InsightRepository {
	return &InsightRepository{db: db}
}

func (r *InsightRepository) GetByIndustry(ctx context.Context, industry string) (insight.IndustryInsight, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT industry, salary_ranges, growth_rate, demand_level, top_skills,
		        market_outlook, key_trends, recommended_skills, last_updated, next_update
		 FROM industry_insights WHERE industry = $1`,
		industry,
	)

	var (
		rec      insight.IndustryInsight
		rangesJS []byte
	)
	err := row.Scan(
		&rec.Industry, &rangesJS, &rec.GrowthRate, &rec.DemandLevel, &rec.TopSkills,
		&rec.MarketOutlook, &rec.KeyTrends, &rec.RecommendedSkills, &rec.LastUpdated, &rec.NextUpdate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return insight.IndustryInsight{}, insight.ErrNotFound
		}
		return insight.IndustryInsight{}, err
	}

	if len(rangesJS) > 0 {
		if err := json.Unmarshal(rangesJS, &rec.SalaryRanges); err != nil {
			return insight.IndustryInsight{}, err
		}
	}
	return rec, nil
}

func (r *InsightRepository) Create(ctx context.Context, rec insight.IndustryInsight) error {
	rangesJS, err := json.Marshal(rec.SalaryRanges)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO industry_insights
		   (industry, salary_ranges, growth_rate, demand_level, top_skills,
		    market_outlook, key_trends, recommended_skills, last_updated, next_update)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.Industry, rangesJS, rec.GrowthRate, rec.DemandLevel, stringsOrEmpty(rec.TopSkills),
		rec.MarketOutlook, stringsOrEmpty(rec.KeyTrends), stringsOrEmpty(rec.RecommendedSkills),
		rec.LastUpdated, rec.NextUpdate,
	)
	return err
}

func (r *InsightRepository) Update(ctx context.Context, rec insight.IndustryInsight) error {
	rangesJS, err := json.Marshal(rec.SalaryRanges)
	if err != nil {
		return err
	}

	affected, err := r.db.Exec(
		ctx,
		`UPDATE industry_insights
		 SET salary_ranges = $2, growth_rate = $3, demand_level = $4, top_skills = $5,
		     market_outlook = $6, key_trends = $7, recommended_skills = $8,
		     last_updated = $9, next_update = $10
		 WHERE industry = $1`,
		rec.Industry, rangesJS, rec.GrowthRate, rec.DemandLevel, stringsOrEmpty(rec.TopSkills),
		rec.MarketOutlook, stringsOrEmpty(rec.KeyTrends), stringsOrEmpty(rec.RecommendedSkills),
		rec.LastUpdated, rec.NextUpdate,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return insight.ErrNotFound
	}
	return nil
}

func stringsOrEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
