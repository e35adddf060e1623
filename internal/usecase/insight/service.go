package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"career-coach/internal/domain/insight"
	"career-coach/internal/domain/user"
	"career-coach/internal/infrastructure/genai"
	"career-coach/internal/worker"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

const memoKeyPrefix = "insights:memo:"
const refreshLockPrefix = "insights:refresh:lock:"

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

type refreshQueue interface {
	TrySubmit(t worker.Task) bool
}

// Service serves industry insights with a freshness policy: records younger
// than the staleness window are returned as-is; stale records are returned
// immediately while a detached refresh regenerates them; missing records are
// generated synchronously.
type Service struct {
	users    user.Repository
	insights insight.Repository
	gen      genai.TextGenerator
	cache    Cache
	queue    refreshQueue
	notify   func(industry string)
	logger   *log.Logger

	staleness       time.Duration
	refreshInterval time.Duration
	memoTTL         time.Duration

	now func() time.Time
}

type Options struct {
	StalenessWindow time.Duration
	RefreshInterval time.Duration
	MemoTTL         time.Duration
	Notify          func(industry string)
	Logger          *log.Logger
}

func NewService(users user.Repository, insights insight.Repository, gen genai.TextGenerator, cache Cache, queue refreshQueue, opts Options) *Service {
	staleness := opts.StalenessWindow
	if staleness <= 0 {
		staleness = 6 * 24 * time.Hour
	}
	interval := opts.RefreshInterval
	if interval <= 0 {
		interval = 7 * 24 * time.Hour
	}
	memoTTL := opts.MemoTTL
	if memoTTL <= 0 {
		memoTTL = time.Hour
	}

	return &Service{
		users:           users,
		insights:        insights,
		gen:             gen,
		cache:           cache,
		queue:           queue,
		notify:          opts.Notify,
		logger:          opts.Logger,
		staleness:       staleness,
		refreshInterval: interval,
		memoTTL:         memoTTL,
		now:             time.Now,
	}
}

// GetInsights implements the freshness policy. It only fails for a missing
// user record; every other failure degrades to the fallback payload so the
// caller always receives a well-formed value.
func (s *Service) GetInsights(ctx context.Context, userID uuid.UUID) (insight.IndustryInsight, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return insight.IndustryInsight{}, ErrUserNotFound
		}
		return insight.IndustryInsight{}, ErrInternal
	}

	if !usr.HasIndustry() {
		return s.fallbackRecord(""), nil
	}
	industry := *usr.Industry

	rec, err := s.insights.GetByIndustry(ctx, industry)
	switch {
	case err == nil && rec.Age(s.now()) < s.staleness:
		return rec, nil

	case err == nil:
		// Stale: serve the old record without blocking and refresh behind
		// the caller's back.
		s.scheduleRefresh(ctx, industry)
		return rec, nil

	case errors.Is(err, insight.ErrNotFound):
		payload := s.GenerateInsights(ctx, industry)
		now := s.now().UTC()
		newRec := insight.IndustryInsight{
			Industry:    industry,
			Payload:     payload,
			LastUpdated: now,
			NextUpdate:  now.Add(s.refreshInterval),
		}
		if createErr := s.insights.Create(ctx, newRec); createErr != nil {
			s.logf("[Insights] persist failed | industry=%q err=%v", industry, createErr)
		}
		return newRec, nil

	default:
		s.logf("[Insights] lookup failed | industry=%q err=%v", industry, err)
		return s.fallbackRecord(industry), nil
	}
}

// GenerateInsights produces an insight payload for an industry. Successful
// results are memoized for the configured TTL; any failure (model call,
// malformed JSON) yields the fixed fallback payload instead of an error.
func (s *Service) GenerateInsights(ctx context.Context, industry string) insight.Payload {
	payload, err := s.generate(ctx, industry)
	if err != nil {
		s.logf("[Insights] generation failed, using fallback | industry=%q err=%v", industry, err)
		return FallbackPayload()
	}
	return payload
}

func (s *Service) generate(ctx context.Context, industry string) (insight.Payload, error) {
	memoKey := memoKeyPrefix + normalizeIndustry(industry)

	if s.cache != nil {
		var memo insight.Payload
		hit, err := s.cache.GetJSON(ctx, memoKey, &memo)
		if err == nil && hit {
			s.logf("[Insights] memo HIT | industry=%q", industry)
			return memo, nil
		}
	}

	text, err := s.gen.GenerateText(ctx, insightPrompt(industry))
	if err != nil {
		return insight.Payload{}, fmt.Errorf("model call: %w", err)
	}

	var payload insight.Payload
	if err := json.Unmarshal([]byte(genai.CleanJSON(text)), &payload); err != nil {
		return insight.Payload{}, fmt.Errorf("parse model output: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, memoKey, payload, s.memoTTL); err != nil {
			s.logf("[Insights] memo write failed | industry=%q err=%v", industry, err)
		}
	}
	return payload, nil
}

// scheduleRefresh enqueues a detached regeneration for a stale industry.
// Concurrent staleness triggers for the same industry are coalesced through
// a best-effort cache lock; with the cache down, duplicates are possible and
// resolve last-write-wins.
func (s *Service) scheduleRefresh(ctx context.Context, industry string) {
	if s.queue == nil {
		return
	}

	if s.cache != nil {
		lockKey := refreshLockPrefix + normalizeIndustry(industry)
		ok, err := s.cache.SetIfNotExists(ctx, lockKey, "1", 2*time.Minute)
		if err == nil && !ok {
			return
		}
	}

	submitted := s.queue.TrySubmit(func(taskCtx context.Context) error {
		return s.refresh(taskCtx, industry)
	})
	if !submitted {
		s.logf("[Insights] refresh dropped, queue full | industry=%q", industry)
		return
	}
	s.logf("[Insights] refresh scheduled | industry=%q", industry)
}

// refresh regenerates and updates one industry record in place. Unlike the
// synchronous path it propagates generation failure, so a bad model response
// leaves the persisted record untouched.
func (s *Service) refresh(ctx context.Context, industry string) error {
	payload, err := s.generate(ctx, industry)
	if err != nil {
		return fmt.Errorf("refresh %q: %w", industry, err)
	}

	now := s.now().UTC()
	rec := insight.IndustryInsight{
		Industry:    industry,
		Payload:     payload,
		LastUpdated: now,
		NextUpdate:  now.Add(s.refreshInterval),
	}
	if err := s.insights.Update(ctx, rec); err != nil {
		return fmt.Errorf("refresh %q: update: %w", industry, err)
	}

	if s.notify != nil {
		s.notify(industry)
	}
	s.logf("[Insights] refresh complete | industry=%q", industry)
	return nil
}

func (s *Service) fallbackRecord(industry string) insight.IndustryInsight {
	now := s.now().UTC()
	return insight.IndustryInsight{
		Industry:    industry,
		Payload:     FallbackPayload(),
		LastUpdated: now,
		NextUpdate:  now.Add(s.refreshInterval),
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func normalizeIndustry(industry string) string {
	return strings.ToLower(strings.TrimSpace(industry))
}
