package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tiebreak/contexts/game-core/participant-service/domain/entities"
	domainerrors "tiebreak/contexts/game-core/participant-service/domain/errors"

	"github.com/google/uuid"
)

// Store backs the module for tests and local runs. It also implements the
// Clock, IDGenerator, PasswordHasher, and Notifier ports so a module can be
// assembled with no external infrastructure.
type Store struct {
	mu sync.RWMutex

	participants map[string]entities.Participant
	broadcasts   [][]entities.Participant

	now time.Time
}

func NewStore(seed []entities.Participant) *Store {
	participants := make(map[string]entities.Participant, len(seed))
	for _, participant := range seed {
		participants[participant.ID] = participant
	}
	return &Store{participants: participants}
}

// SetNow pins the clock for deterministic tests. Zero means wall clock.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Broadcasts returns the leaderboard snapshots the notifier recorded.
func (s *Store) Broadcasts() [][]entities.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([][]entities.Participant(nil), s.broadcasts...)
}

func (s *Store) SaveParticipant(_ context.Context, participant entities.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.participants {
		if existing.ID != participant.ID && strings.EqualFold(existing.Name, participant.Name) {
			return domainerrors.ErrNameTaken
		}
	}
	s.participants[participant.ID] = participant
	return nil
}

func (s *Store) GetParticipant(_ context.Context, participantID string) (entities.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	participant, ok := s.participants[strings.TrimSpace(participantID)]
	if !ok {
		return entities.Participant{}, domainerrors.ErrParticipantNotFound
	}
	return participant, nil
}

func (s *Store) GetParticipantByName(_ context.Context, name string) (entities.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, participant := range s.participants {
		if strings.EqualFold(participant.Name, strings.TrimSpace(name)) {
			return participant, nil
		}
	}
	return entities.Participant{}, domainerrors.ErrParticipantNotFound
}

func (s *Store) ListParticipants(_ context.Context) ([]entities.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Participant, 0, len(s.participants))
	for _, participant := range s.participants {
		items = append(items, participant)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ApplyScoreDelta(_ context.Context, participantID string, scoreDelta int, answeredDelta int) (entities.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant, ok := s.participants[strings.TrimSpace(participantID)]
	if !ok {
		return entities.Participant{}, domainerrors.ErrParticipantNotFound
	}
	participant.Score += scoreDelta
	if participant.Score < 0 {
		participant.Score = 0
	}
	participant.QuestionsAnswered += answeredDelta
	participant.UpdatedAt = s.nowLocked()
	s.participants[participant.ID] = participant
	return participant, nil
}

func (s *Store) CountParticipants(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants), nil
}

func (s *Store) DeleteAllParticipants(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.participants)
	s.participants = make(map[string]entities.Participant)
	return removed, nil
}

func (s *Store) LeaderboardUpdated(_ context.Context, leaderboard []entities.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcasts = append(s.broadcasts, leaderboard)
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowLocked()
}

func (s *Store) nowLocked() time.Time {
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// Hash keeps test credentials readable; production wiring swaps in bcrypt.
func (s *Store) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

func (s *Store) Compare(hash string, password string) error {
	if hash != "plain:"+password {
		return domainerrors.ErrInvalidCredential
	}
	return nil
}
