package unit

import (
	"context"
	"testing"

	gameengine "tiebreak/contexts/game-core/game-engine"
	"tiebreak/contexts/game-core/game-engine/ports"
	httptransport "tiebreak/contexts/game-core/game-engine/transport/http"
)

func TestSubmitAnswerAwardsAndRejects(t *testing.T) {
	module := gameengine.NewInMemoryModule(nil, nil)
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p1", Name: "alice"}, "secret")
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p2", Name: "bob"}, "secret")
	module.Store.SetQuestion("q1", "a", 10)
	module.Store.SetQuestion("q2", "b", 20)

	correct, err := module.Handler.SubmitAnswerHandler(context.Background(), httptransport.SubmitAnswerRequest{
		ParticipantID:  "p1",
		QuestionID:     "q1",
		SelectedOption: "a",
		Password:       "secret",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !correct.Success || !correct.IsCorrect || correct.PointsAwarded != 10 {
		t.Fatalf("expected correct answer worth 10 points, got %+v", correct)
	}

	wrong, err := module.Handler.SubmitAnswerHandler(context.Background(), httptransport.SubmitAnswerRequest{
		ParticipantID:  "p1",
		QuestionID:     "q2",
		SelectedOption: "a",
		Password:       "secret",
	})
	if err != nil {
		t.Fatalf("wrong answer submit failed: %v", err)
	}
	if !wrong.Success || wrong.IsCorrect || wrong.PointsAwarded != 0 {
		t.Fatalf("expected wrong answer recorded with zero points, got %+v", wrong)
	}

	duplicate, err := module.Handler.SubmitAnswerHandler(context.Background(), httptransport.SubmitAnswerRequest{
		ParticipantID:  "p1",
		QuestionID:     "q1",
		SelectedOption: "b",
		Password:       "secret",
	})
	if err != nil {
		t.Fatalf("duplicate submit should map to success=false, got error: %v", err)
	}
	if duplicate.Success {
		t.Fatalf("expected duplicate answer rejection")
	}

	badPassword, err := module.Handler.SubmitAnswerHandler(context.Background(), httptransport.SubmitAnswerRequest{
		ParticipantID:  "p2",
		QuestionID:     "q1",
		SelectedOption: "a",
		Password:       "nope",
	})
	if err != nil {
		t.Fatalf("bad credential submit should map to success=false, got error: %v", err)
	}
	if badPassword.Success {
		t.Fatalf("expected credential rejection")
	}

	missingQuestion, err := module.Handler.SubmitAnswerHandler(context.Background(), httptransport.SubmitAnswerRequest{
		ParticipantID:  "p2",
		QuestionID:     "missing",
		SelectedOption: "a",
		Password:       "secret",
	})
	if err != nil {
		t.Fatalf("missing question submit should map to success=false, got error: %v", err)
	}
	if missingQuestion.Success {
		t.Fatalf("expected unknown question rejection")
	}

	answers, err := module.Handler.ParticipantAnswersHandler(context.Background(), "p1")
	if err != nil {
		t.Fatalf("participant answers failed: %v", err)
	}
	if len(answers.Answers) != 2 {
		t.Fatalf("expected 2 recorded answers, got %d", len(answers.Answers))
	}

	if len(module.Store.Results()) < 2 {
		t.Fatalf("expected answer result notifications")
	}
}

func TestSubmitAnswerCompletionOpensTieBreak(t *testing.T) {
	module := gameengine.NewInMemoryModule(nil, nil)
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p1", Name: "alice"}, "secret")
	module.Store.SetQuestion("q1", "a", 10)

	if _, err := module.Handler.SubmitAnswerHandler(context.Background(), httptransport.SubmitAnswerRequest{
		ParticipantID:  "p1",
		QuestionID:     "q1",
		SelectedOption: "a",
		Password:       "secret",
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if module.Store.TieBreaks() != 1 {
		t.Fatalf("expected completion check to open a tie-break session, got %d", module.Store.TieBreaks())
	}
}
