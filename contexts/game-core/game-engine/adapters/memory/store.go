package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tiebreak/contexts/game-core/game-engine/domain/entities"
	domainerrors "tiebreak/contexts/game-core/game-engine/domain/errors"
	"tiebreak/contexts/game-core/game-engine/ports"

	"github.com/google/uuid"
)

type answerNote struct {
	ParticipantID string
	QuestionID    string
	IsCorrect     bool
	Points        int
	Message       string
}

type questionProjection struct {
	CorrectOption string
	Points        int
}

// Store backs the engine for tests. Participant and question projections are
// seeded with Set helpers; the store stands in for the directory, catalog,
// tie breaker, and notifier ports.
type Store struct {
	mu sync.RWMutex

	answers map[string]entities.Answer

	participants map[string]ports.ParticipantRecord
	passwords    map[string]string
	questions    map[string]questionProjection

	tieBreaks int
	results   []answerNote

	now time.Time
}

func NewStore(seed []entities.Answer) *Store {
	answers := make(map[string]entities.Answer, len(seed))
	for _, answer := range seed {
		answers[answer.ID] = answer
	}
	return &Store{
		answers:      answers,
		participants: make(map[string]ports.ParticipantRecord),
		passwords:    make(map[string]string),
		questions:    make(map[string]questionProjection),
	}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) SetParticipant(record ports.ParticipantRecord, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[record.ID] = record
	s.passwords[record.ID] = password
}

func (s *Store) SetQuestion(questionID string, correctOption string, points int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[strings.TrimSpace(questionID)] = questionProjection{
		CorrectOption: correctOption,
		Points:        points,
	}
}

// TieBreaks reports how often the completion check invoked the tie breaker.
func (s *Store) TieBreaks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tieBreaks
}

func (s *Store) SaveAnswer(_ context.Context, answer entities.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.answers {
		if existing.ParticipantID == answer.ParticipantID && existing.QuestionID == answer.QuestionID {
			return domainerrors.ErrDuplicateAnswer
		}
	}
	s.answers[answer.ID] = answer
	return nil
}

func (s *Store) ListAnswersByParticipant(_ context.Context, participantID string) ([]entities.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Answer, 0)
	for _, answer := range s.answers {
		if answer.ParticipantID == strings.TrimSpace(participantID) {
			items = append(items, answer)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AnsweredAt.After(items[j].AnsweredAt)
	})
	return items, nil
}

func (s *Store) CountAnswers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.answers), nil
}

func (s *Store) Authenticate(_ context.Context, participantID string, password string) (ports.ParticipantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.participants[strings.TrimSpace(participantID)]
	if !ok {
		return ports.ParticipantRecord{}, domainerrors.ErrParticipantNotFound
	}
	if s.passwords[record.ID] != password {
		return ports.ParticipantRecord{}, domainerrors.ErrInvalidCredential
	}
	return record, nil
}

func (s *Store) RecordAnswer(_ context.Context, participantID string, points int) (ports.ParticipantRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.participants[strings.TrimSpace(participantID)]
	if !ok {
		return ports.ParticipantRecord{}, domainerrors.ErrParticipantNotFound
	}
	record.Score += points
	if record.Score < 0 {
		record.Score = 0
	}
	record.QuestionsAnswered++
	s.participants[record.ID] = record
	return record, nil
}

func (s *Store) CountParticipants(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants), nil
}

func (s *Store) CheckAnswer(_ context.Context, questionID string, selectedOption string) (bool, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	question, ok := s.questions[strings.TrimSpace(questionID)]
	if !ok {
		return false, 0, domainerrors.ErrQuestionNotFound
	}
	return question.CorrectOption == strings.TrimSpace(selectedOption), question.Points, nil
}

func (s *Store) CountActiveQuestions(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions), nil
}

func (s *Store) OpenSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tieBreaks++
	return nil
}

func (s *Store) AnswerResult(_ context.Context, participantID string, questionID string, isCorrect bool, points int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, answerNote{
		ParticipantID: participantID,
		QuestionID:    questionID,
		IsCorrect:     isCorrect,
		Points:        points,
		Message:       message,
	})
}

// Results returns the recorded answer notifications as (participant,
// question) pairs for assertions.
func (s *Store) Results() []struct{ ParticipantID, QuestionID string } {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]struct{ ParticipantID, QuestionID string }, 0, len(s.results))
	for _, note := range s.results {
		items = append(items, struct{ ParticipantID, QuestionID string }{note.ParticipantID, note.QuestionID})
	}
	return items
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
