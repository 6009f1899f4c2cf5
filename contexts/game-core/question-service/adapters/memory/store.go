package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tiebreak/contexts/game-core/question-service/domain/entities"
	domainerrors "tiebreak/contexts/game-core/question-service/domain/errors"

	"github.com/google/uuid"
)

// Store backs the module for tests and local runs. It also records notifier
// calls so tests can assert broadcasts without transport wiring.
type Store struct {
	mu sync.RWMutex

	questions map[string]entities.Question

	released []entities.Question
	resets   []int

	now time.Time
}

func NewStore(seed []entities.Question) *Store {
	questions := make(map[string]entities.Question, len(seed))
	for _, question := range seed {
		questions[question.ID] = question
	}
	return &Store{questions: questions}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Released() []entities.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Question(nil), s.released...)
}

func (s *Store) Resets() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int(nil), s.resets...)
}

func (s *Store) SaveQuestion(_ context.Context, question entities.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[question.ID] = question
	return nil
}

func (s *Store) GetQuestion(_ context.Context, questionID string) (entities.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	question, ok := s.questions[strings.TrimSpace(questionID)]
	if !ok {
		return entities.Question{}, domainerrors.ErrQuestionNotFound
	}
	return question, nil
}

func (s *Store) ListActiveQuestions(_ context.Context) ([]entities.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(func(q entities.Question) bool { return q.IsActive }), nil
}

func (s *Store) ListAllQuestions(_ context.Context) ([]entities.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(func(entities.Question) bool { return true }), nil
}

func (s *Store) OldestInactiveQuestion(_ context.Context) (entities.Question, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inactive := s.listLocked(func(q entities.Question) bool { return !q.IsActive })
	if len(inactive) == 0 {
		return entities.Question{}, false, nil
	}
	return inactive[0], true, nil
}

func (s *Store) DeactivateAllQuestions(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reset := 0
	for id, question := range s.questions {
		if question.IsActive {
			question.IsActive = false
			s.questions[id] = question
			reset++
		}
	}
	return reset, nil
}

func (s *Store) CountActiveQuestions(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, question := range s.questions {
		if question.IsActive {
			count++
		}
	}
	return count, nil
}

func (s *Store) QuestionReleased(_ context.Context, question entities.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = append(s.released, question)
}

func (s *Store) QuestionsReset(_ context.Context, reset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, reset)
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

func (s *Store) listLocked(keep func(entities.Question) bool) []entities.Question {
	items := make([]entities.Question, 0, len(s.questions))
	for _, question := range s.questions {
		if keep(question) {
			items = append(items, question)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}
