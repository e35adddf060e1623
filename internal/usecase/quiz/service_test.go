package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"career-coach/internal/domain/assessment"
	"career-coach/internal/domain/user"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	byID map[uuid.UUID]user.User
}

func (m *mockUserRepo) Create(context.Context, user.User) error { return nil }
func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (m *mockUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (m *mockUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (m *mockUserRepo) Update(context.Context, user.User) error             { return nil }

type mockAssessmentRepo struct {
	saved     []assessment.Assessment
	createErr error
}

func (m *mockAssessmentRepo) Create(_ context.Context, a assessment.Assessment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockAssessmentRepo) ListByUser(_ context.Context, id uuid.UUID) ([]assessment.Assessment, error) {
	var out []assessment.Assessment
	for _, a := range m.saved {
		if a.UserID == id {
			out = append(out, a)
		}
	}
	return out, nil
}

// scriptedGenerator returns its responses in order, one per call.
type scriptedGenerator struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (g *scriptedGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	i := g.calls
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.responses) {
		return g.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func quizJSON(t *testing.T, n int) string {
	t.Helper()
	type q struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correctAnswer"`
		Explanation   string   `json:"explanation"`
	}
	qs := make([]q, n)
	for i := range qs {
		qs[i] = q{
			Question:      fmt.Sprintf("What does concept %d mean?", i),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
			Explanation:   fmt.Sprintf("Because of reason %d.", i),
		}
	}
	b, err := json.Marshal(map[string]any{"questions": qs})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return "```json\n" + string(b) + "\n```"
}

func quizTestUser() (*mockUserRepo, uuid.UUID) {
	id := uuid.New()
	industry := "Technology"
	return &mockUserRepo{byID: map[uuid.UUID]user.User{
		id: {ID: id, Email: "dev@example.com", Industry: &industry, Skills: []string{"Go", "SQL"}},
	}}, id
}

func TestGenerateQuiz_ReturnsTenQuestions(t *testing.T) {
	users, id := quizTestUser()
	gen := &scriptedGenerator{responses: []string{quizJSON(t, 10)}}
	svc := NewService(users, &mockAssessmentRepo{}, gen, nil)

	fixed := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	svc.randInt = func(n int) int { return 0 }

	questions, err := svc.GenerateQuiz(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Fatalf("question %d has %d options", i, len(q.Options))
		}
		wantSuffix := fmt.Sprintf("_%d", i)
		if !strings.HasPrefix(q.QuestionID, fmt.Sprintf("%d_", fixed.UnixMilli())) || !strings.HasSuffix(q.QuestionID, wantSuffix) {
			t.Fatalf("question %d id %q does not follow timestamp_seed_index", i, q.QuestionID)
		}
		if q.Category != questionCategories[0] || q.Difficulty != difficultyLevels[0] {
			t.Fatalf("question %d carries wrong category/difficulty: %q/%q", i, q.Category, q.Difficulty)
		}
	}
}

func TestGenerateQuiz_DistinctSessionsGetDistinctIDs(t *testing.T) {
	users, id := quizTestUser()
	gen := &scriptedGenerator{responses: []string{quizJSON(t, 10), quizJSON(t, 10)}}
	svc := NewService(users, &mockAssessmentRepo{}, gen, nil)

	base := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}

	first, err := svc.GenerateQuiz(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := svc.GenerateQuiz(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first[0].QuestionID == second[0].QuestionID {
		t.Fatalf("two sessions produced the same question id %q", first[0].QuestionID)
	}
}

func TestGenerateQuiz_ModelFailureIsFatal(t *testing.T) {
	users, id := quizTestUser()
	gen := &scriptedGenerator{errs: []error{errors.New("503")}}
	svc := NewService(users, &mockAssessmentRepo{}, gen, nil)

	if _, err := svc.GenerateQuiz(context.Background(), id); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateQuiz_MalformedOutputIsFatal(t *testing.T) {
	users, id := quizTestUser()
	gen := &scriptedGenerator{responses: []string{"sorry, I cannot do that"}}
	svc := NewService(users, &mockAssessmentRepo{}, gen, nil)

	if _, err := svc.GenerateQuiz(context.Background(), id); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateQuiz_WrongQuestionCountIsFatal(t *testing.T) {
	users, id := quizTestUser()
	gen := &scriptedGenerator{responses: []string{quizJSON(t, 7)}}
	svc := NewService(users, &mockAssessmentRepo{}, gen, nil)

	if _, err := svc.GenerateQuiz(context.Background(), id); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestSaveQuizResult_ScoresServerSide(t *testing.T) {
	users, id := quizTestUser()
	repo := &mockAssessmentRepo{}
	gen := &scriptedGenerator{responses: []string{"Brush up on goroutine lifecycles."}}
	svc := NewService(users, repo, gen, nil)

	questions := []Question{
		{Question: "q0", CorrectAnswer: "A", Explanation: "e0"},
		{Question: "q1", CorrectAnswer: "B", Explanation: "e1"},
		{Question: "q2", CorrectAnswer: "C", Explanation: "e2"},
		{Question: "q3", CorrectAnswer: "D", Explanation: "e3"},
	}
	answers := []string{"A", "X", "C", "D"}

	a, err := svc.SaveQuizResult(context.Background(), id, questions, answers)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.QuizScore != 75.0 {
		t.Fatalf("score = %v, want 75.0", a.QuizScore)
	}
	if a.Questions[1].IsCorrect || !a.Questions[0].IsCorrect {
		t.Fatalf("per-question correctness disagrees with the answers")
	}
	if a.Questions[1].UserAnswer != "X" || a.Questions[1].CorrectAnswer != "B" {
		t.Fatalf("question result must keep both answers")
	}
	if a.Category != "Technical" {
		t.Fatalf("category = %q, want Technical", a.Category)
	}
	if a.ImprovementTip == nil || *a.ImprovementTip != "Brush up on goroutine lifecycles." {
		t.Fatalf("improvement tip not captured: %v", a.ImprovementTip)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 persisted assessment, got %d", len(repo.saved))
	}
}

func TestSaveQuizResult_PerfectScoreSkipsTip(t *testing.T) {
	users, id := quizTestUser()
	gen := &scriptedGenerator{}
	svc := NewService(users, &mockAssessmentRepo{}, gen, nil)

	questions := []Question{{Question: "q0", CorrectAnswer: "A"}, {Question: "q1", CorrectAnswer: "B"}}
	a, err := svc.SaveQuizResult(context.Background(), id, questions, []string{"A", "B"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.QuizScore != 100.0 {
		t.Fatalf("score = %v, want 100.0", a.QuizScore)
	}
	if a.ImprovementTip != nil {
		t.Fatalf("perfect score must not request a tip")
	}
	if gen.calls != 0 {
		t.Fatalf("expected no model calls, got %d", gen.calls)
	}
}

func TestSaveQuizResult_TipFailureIsNonFatal(t *testing.T) {
	users, id := quizTestUser()
	gen := &scriptedGenerator{errs: []error{errors.New("timeout")}}
	svc := NewService(users, &mockAssessmentRepo{}, gen, nil)

	questions := []Question{{Question: "q0", CorrectAnswer: "A"}, {Question: "q1", CorrectAnswer: "B"}}
	a, err := svc.SaveQuizResult(context.Background(), id, questions, []string{"A", "nope"})
	if err != nil {
		t.Fatalf("tip failure must not block saving: %v", err)
	}
	if a.QuizScore != 50.0 {
		t.Fatalf("score = %v, want 50.0", a.QuizScore)
	}
	if a.ImprovementTip != nil {
		t.Fatalf("tip must be absent after a tip failure")
	}
}

func TestSaveQuizResult_AnswerCountMismatch(t *testing.T) {
	users, id := quizTestUser()
	svc := NewService(users, &mockAssessmentRepo{}, &scriptedGenerator{}, nil)

	questions := []Question{{Question: "q0", CorrectAnswer: "A"}}
	if _, err := svc.SaveQuizResult(context.Background(), id, questions, []string{"A", "B"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.SaveQuizResult(context.Background(), id, nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty quiz, got %v", err)
	}
}

func TestSaveQuizResult_PersistFailure(t *testing.T) {
	users, id := quizTestUser()
	repo := &mockAssessmentRepo{createErr: errors.New("connection reset")}
	svc := NewService(users, repo, &scriptedGenerator{responses: []string{"tip"}}, nil)

	questions := []Question{{Question: "q0", CorrectAnswer: "A"}}
	if _, err := svc.SaveQuizResult(context.Background(), id, questions, []string{"B"}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestGetAssessments_RoundTrip(t *testing.T) {
	users, id := quizTestUser()
	repo := &mockAssessmentRepo{}
	svc := NewService(users, repo, &scriptedGenerator{responses: []string{"tip one", "tip two"}}, nil)

	questions := []Question{{Question: "q0", CorrectAnswer: "A"}}
	if _, err := svc.SaveQuizResult(context.Background(), id, questions, []string{"B"}); err != nil {
		t.Fatalf("save 1: %v", err)
	}
	if _, err := svc.SaveQuizResult(context.Background(), id, questions, []string{"A"}); err != nil {
		t.Fatalf("save 2: %v", err)
	}

	list, err := svc.GetAssessments(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 assessments, got %d", len(list))
	}
	if list[0].QuizScore != 0.0 || list[1].QuizScore != 100.0 {
		t.Fatalf("list must preserve insertion order: %v, %v", list[0].QuizScore, list[1].QuizScore)
	}
}

func TestGetAssessments_UnknownUser(t *testing.T) {
	svc := NewService(&mockUserRepo{byID: map[uuid.UUID]user.User{}}, &mockAssessmentRepo{}, &scriptedGenerator{}, nil)

	if _, err := svc.GetAssessments(context.Background(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
