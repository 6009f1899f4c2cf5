package unit

import (
	"context"
	"testing"

	questionservice "tiebreak/contexts/game-core/question-service"
	httptransport "tiebreak/contexts/game-core/question-service/transport/http"
)

func createQuestion(t *testing.T, module questionservice.Module, text string, correct string, points int) httptransport.AdminQuestionResponse {
	t.Helper()
	created, err := module.Handler.CreateQuestionHandler(context.Background(), httptransport.CreateQuestionRequest{
		QuestionText:  text,
		Options:       map[string]string{"a": "first", "b": "second"},
		CorrectOption: correct,
		Points:        points,
	})
	if err != nil {
		t.Fatalf("create question %q failed: %v", text, err)
	}
	return created
}

func TestQuestionCreateValidationAndDefaults(t *testing.T) {
	module := questionservice.NewInMemoryModule(nil, nil)

	created := createQuestion(t, module, "What is 1+1?", "b", 0)
	if created.Points != 10 {
		t.Fatalf("expected default points 10, got %d", created.Points)
	}
	if created.IsActive {
		t.Fatalf("new questions start inactive")
	}
	if created.CorrectOption != "b" {
		t.Fatalf("admin projection should carry the correct option")
	}

	if _, err := module.Handler.CreateQuestionHandler(context.Background(), httptransport.CreateQuestionRequest{
		QuestionText:  "Only one option",
		Options:       map[string]string{"a": "first"},
		CorrectOption: "a",
	}); err == nil {
		t.Fatalf("expected rejection with fewer than two options")
	}
	if _, err := module.Handler.CreateQuestionHandler(context.Background(), httptransport.CreateQuestionRequest{
		QuestionText:  "Bad key",
		Options:       map[string]string{"a": "first", "b": "second"},
		CorrectOption: "z",
	}); err == nil {
		t.Fatalf("expected rejection when correct option is not an option key")
	}
}

func TestQuestionReleaseRotationAndReset(t *testing.T) {
	module := questionservice.NewInMemoryModule(nil, nil)

	first := createQuestion(t, module, "q1", "a", 10)
	second := createQuestion(t, module, "q2", "a", 20)

	released, err := module.Handler.ReleaseNextHandler(context.Background())
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if !released.Released || released.Question == nil || released.Question.ID != first.ID {
		t.Fatalf("expected oldest question released first")
	}

	releasedSecond, err := module.Handler.ReleaseNextHandler(context.Background())
	if err != nil {
		t.Fatalf("second release failed: %v", err)
	}
	if !releasedSecond.Released || releasedSecond.Question.ID != second.ID {
		t.Fatalf("expected second question on next release")
	}

	exhausted, err := module.Handler.ReleaseNextHandler(context.Background())
	if err != nil {
		t.Fatalf("exhausted release failed: %v", err)
	}
	if exhausted.Released {
		t.Fatalf("expected no release when catalog is exhausted")
	}

	active, err := module.Handler.ListActiveHandler(context.Background())
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active.Questions) != 2 {
		t.Fatalf("expected 2 active questions, got %d", len(active.Questions))
	}

	reset, err := module.Handler.ResetAllHandler(context.Background())
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if reset.QuestionsReset != 2 {
		t.Fatalf("expected 2 questions reset, got %d", reset.QuestionsReset)
	}

	activeAfter, err := module.Handler.ListActiveHandler(context.Background())
	if err != nil {
		t.Fatalf("list active after reset failed: %v", err)
	}
	if len(activeAfter.Questions) != 1 || activeAfter.Questions[0].ID != first.ID {
		t.Fatalf("expected only the first question active after reset")
	}

	if len(module.Store.Released()) != 2 {
		t.Fatalf("expected release broadcasts for both questions")
	}
	if len(module.Store.Resets()) != 1 {
		t.Fatalf("expected one reset broadcast")
	}
}

func TestQuestionProjectionsHideAnswer(t *testing.T) {
	module := questionservice.NewInMemoryModule(nil, nil)
	created := createQuestion(t, module, "hidden answer", "a", 10)

	if _, _, err := module.Questions.ReleaseNext(context.Background()); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	got, err := module.Handler.GetQuestionHandler(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get question failed: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("unexpected question returned")
	}

	all, err := module.Handler.ListAllHandler(context.Background())
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all.Questions) != 1 || all.Questions[0].CorrectOption != "a" {
		t.Fatalf("admin listing should include the correct option")
	}

	correct, points, err := module.Catalog.CheckAnswer(context.Background(), created.ID, "a")
	if err != nil {
		t.Fatalf("check answer failed: %v", err)
	}
	if !correct || points != 10 {
		t.Fatalf("expected correct answer worth 10 points, got correct=%v points=%d", correct, points)
	}
	wrong, _, err := module.Catalog.CheckAnswer(context.Background(), created.ID, "b")
	if err != nil {
		t.Fatalf("check wrong answer failed: %v", err)
	}
	if wrong {
		t.Fatalf("expected wrong answer to be incorrect")
	}
}
