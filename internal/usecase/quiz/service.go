package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"career-coach/internal/domain/assessment"
	"career-coach/internal/domain/user"
	"career-coach/internal/infrastructure/genai"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrGenerationFailed = errors.New("failed to generate quiz questions")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("internal error")
)

const (
	quizSize           = 10
	optionCount        = 4
	assessmentCategory = "Technical"
)

// Question is one generated quiz item. It lives only for the duration of a
// quiz session; after scoring, only the derived assessment survives.
type Question struct {
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correctAnswer"`
	Explanation   string    `json:"explanation"`
	QuestionID    string    `json:"questionId"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

var questionCategories = []string{
	"fundamental concepts and principles",
	"advanced techniques and best practices",
	"common challenges and problem-solving",
	"recent trends and emerging technologies",
	"industry standards and methodologies",
	"practical applications and real-world scenarios",
	"performance optimization and efficiency",
	"security and best practices",
	"testing and quality assurance",
	"deployment and DevOps practices",
}

var difficultyLevels = []string{
	"beginner-friendly",
	"intermediate level",
	"advanced concepts",
	"expert-level",
}

type Service struct {
	users       user.Repository
	assessments assessment.Repository
	gen         genai.TextGenerator
	logger      *log.Logger

	now     func() time.Time
	randInt func(n int) int
}

func NewService(users user.Repository, assessments assessment.Repository, gen genai.TextGenerator, logger *log.Logger) *Service {
	return &Service{
		users:       users,
		assessments: assessments,
		gen:         gen,
		logger:      logger,
		now:         time.Now,
		randInt:     rand.IntN,
	}
}

// GenerateQuiz builds a randomized prompt for the user's industry and parses
// the model output into exactly quizSize questions. Generation failure is
// fatal here: a fabricated quiz would be pedagogically meaningless, so there
// is no fallback dataset.
func (s *Service) GenerateQuiz(ctx context.Context, userID uuid.UUID) ([]Question, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternal
	}

	industry := "Technology"
	if usr.HasIndustry() {
		industry = *usr.Industry
	}

	category := questionCategories[s.randInt(len(questionCategories))]
	difficulty := difficultyLevels[s.randInt(len(difficultyLevels))]
	timestamp := s.now().UnixMilli()
	seed := s.randomSeed()

	prompt := quizPrompt(industry, usr.Skills, category, difficulty, timestamp, seed)

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		s.logf("[Quiz] generation failed | industry=%q err=%v", industry, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	var parsed struct {
		Questions []struct {
			Question      string   `json:"question"`
			Options       []string `json:"options"`
			CorrectAnswer string   `json:"correctAnswer"`
			Explanation   string   `json:"explanation"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(genai.CleanJSON(text)), &parsed); err != nil {
		s.logf("[Quiz] malformed model output | industry=%q err=%v", industry, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(parsed.Questions) != quizSize {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", ErrGenerationFailed, quizSize, len(parsed.Questions))
	}

	generatedAt := s.now().UTC()
	questions := make([]Question, 0, quizSize)
	for i, q := range parsed.Questions {
		if len(q.Options) != optionCount || strings.TrimSpace(q.CorrectAnswer) == "" {
			return nil, fmt.Errorf("%w: malformed question at index %d", ErrGenerationFailed, i)
		}
		questions = append(questions, Question{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			QuestionID:    fmt.Sprintf("%d_%s_%d", timestamp, seed, i),
			Category:      category,
			Difficulty:    difficulty,
			GeneratedAt:   generatedAt,
		})
	}
	return questions, nil
}

// SaveQuizResult grades the submitted answers against the question set and
// persists one assessment. Score and per-question correctness come from the
// same pass over the same comparison rule, so they cannot disagree.
func (s *Service) SaveQuizResult(ctx context.Context, userID uuid.UUID, questions []Question, answers []string) (assessment.Assessment, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return assessment.Assessment{}, ErrUserNotFound
		}
		return assessment.Assessment{}, ErrInternal
	}

	if len(questions) == 0 || len(questions) != len(answers) {
		return assessment.Assessment{}, ErrInvalidInput
	}

	results := make([]assessment.QuestionResult, len(questions))
	correct := 0
	for i, q := range questions {
		isCorrect := q.CorrectAnswer == answers[i]
		if isCorrect {
			correct++
		}
		results[i] = assessment.QuestionResult{
			Question:      q.Question,
			CorrectAnswer: q.CorrectAnswer,
			UserAnswer:    answers[i],
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		}
	}
	score := float64(correct) / float64(len(questions)) * 100

	var tip *string
	if correct < len(questions) {
		if t, err := s.improvementTip(ctx, usr, results); err != nil {
			s.logf("[Quiz] improvement tip failed | err=%v", err)
		} else {
			tip = &t
		}
	}

	a := assessment.Assessment{
		ID:             uuid.New(),
		UserID:         usr.ID,
		QuizScore:      score,
		Questions:      results,
		Category:       assessmentCategory,
		ImprovementTip: tip,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.assessments.Create(ctx, a); err != nil {
		s.logf("[Quiz] save failed | user=%s err=%v", usr.ID, err)
		return assessment.Assessment{}, ErrInternal
	}
	return a, nil
}

func (s *Service) GetAssessments(ctx context.Context, userID uuid.UUID) ([]assessment.Assessment, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternal
	}

	list, err := s.assessments.ListByUser(ctx, usr.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return list, nil
}

func (s *Service) improvementTip(ctx context.Context, usr user.User, results []assessment.QuestionResult) (string, error) {
	wrong := make([]assessment.QuestionResult, 0, len(results))
	for _, r := range results {
		if !r.IsCorrect {
			wrong = append(wrong, r)
		}
	}

	industry := "Technology"
	if usr.HasIndustry() {
		industry = *usr.Industry
	}

	text, err := s.gen.GenerateText(ctx, improvementPrompt(industry, wrong))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *Service) randomSeed() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 6)
	for i := range b {
		b[i] = charset[s.randInt(len(charset))]
	}
	return string(b)
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
