package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tiebreak/contexts/live-sessions/ranked-poll/domain/entities"
	domainerrors "tiebreak/contexts/live-sessions/ranked-poll/domain/errors"
	"tiebreak/contexts/live-sessions/ranked-poll/ports"

	"github.com/google/uuid"
)

// Store backs the module for tests. It stands in for every port: the
// repositories, the participant directory (seeded with Set helpers), a
// manual scheduler, and a recording notifier.
type Store struct {
	mu sync.RWMutex

	polls    map[string]entities.Poll
	rankings map[string]entities.Ranking

	participants map[string]ports.ParticipantRecord
	passwords    map[string]string

	armed     map[string]func()
	cancelled map[string]int

	activated      []entities.Poll
	rankingUpdates []string
	ended          []ports.PollResults

	now time.Time
}

func NewStore(seed []entities.Poll) *Store {
	polls := make(map[string]entities.Poll, len(seed))
	for _, poll := range seed {
		polls[poll.ID] = poll
	}
	return &Store{
		polls:        polls,
		rankings:     make(map[string]entities.Ranking),
		participants: make(map[string]ports.ParticipantRecord),
		passwords:    make(map[string]string),
		armed:        make(map[string]func()),
		cancelled:    make(map[string]int),
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

// FireTimer runs the armed callback for id, reporting whether one existed.
func (s *Store) FireTimer(id string) bool {
	s.mu.Lock()
	fn, ok := s.armed[id]
	delete(s.armed, id)
	s.mu.Unlock()

	if !ok {
		return false
	}
	fn()
	return true
}

func (s *Store) TimerArmed(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.armed[id]
	return ok
}

func (s *Store) Activated() []entities.Poll {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Poll(nil), s.activated...)
}

func (s *Store) RankingUpdates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.rankingUpdates...)
}

func (s *Store) Ended() []ports.PollResults {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.PollResults(nil), s.ended...)
}

func (s *Store) SavePoll(_ context.Context, poll entities.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[poll.ID] = poll
	return nil
}

func (s *Store) GetPoll(_ context.Context, pollID string) (entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	poll, ok := s.polls[strings.TrimSpace(pollID)]
	if !ok {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	return poll, nil
}

func (s *Store) ActivePoll(_ context.Context) (entities.Poll, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, poll := range s.polls {
		if poll.IsActive {
			return poll, true, nil
		}
	}
	return entities.Poll{}, false, nil
}

func (s *Store) ListPolls(_ context.Context) ([]entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Poll, 0, len(s.polls))
	for _, poll := range s.polls {
		items = append(items, poll)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListExpiredActivePolls(_ context.Context, now time.Time) ([]entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Poll, 0)
	for _, poll := range s.polls {
		if poll.IsActive && poll.PollEndsAt != nil && !poll.PollEndsAt.After(now) {
			items = append(items, poll)
		}
	}
	return items, nil
}

func (s *Store) CompleteIfActive(_ context.Context, pollID string, at time.Time) (entities.Poll, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[strings.TrimSpace(pollID)]
	if !ok {
		return entities.Poll{}, false, domainerrors.ErrPollNotFound
	}
	if !poll.IsActive {
		return poll, false, nil
	}
	poll.IsActive = false
	poll.Status = entities.PollStatusCompleted
	poll.UpdatedAt = at
	s.polls[poll.ID] = poll
	return poll, true, nil
}

func (s *Store) CompleteOtherActivePolls(_ context.Context, exceptPollID string, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	closed := 0
	for id, poll := range s.polls {
		if id == strings.TrimSpace(exceptPollID) || !poll.IsActive {
			continue
		}
		poll.IsActive = false
		poll.Status = entities.PollStatusCompleted
		poll.UpdatedAt = at
		s.polls[id] = poll
		closed++
	}
	return closed, nil
}

func (s *Store) DeletePoll(_ context.Context, pollID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(pollID)
	if _, ok := s.polls[id]; !ok {
		return domainerrors.ErrPollNotFound
	}
	delete(s.polls, id)
	return nil
}

func (s *Store) ReplaceRankings(_ context.Context, pollID string, rankerID string, rankings []entities.Ranking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ranking := range s.rankings {
		if ranking.PollID == strings.TrimSpace(pollID) &&
			ranking.RankerParticipantID == strings.TrimSpace(rankerID) {
			delete(s.rankings, id)
		}
	}
	for _, ranking := range rankings {
		s.rankings[ranking.ID] = ranking
	}
	return nil
}

func (s *Store) ListRankings(_ context.Context, pollID string) ([]entities.Ranking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Ranking, 0)
	for _, ranking := range s.rankings {
		if ranking.PollID == strings.TrimSpace(pollID) {
			items = append(items, ranking)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) DeleteRankingsByPoll(_ context.Context, pollID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ranking := range s.rankings {
		if ranking.PollID == strings.TrimSpace(pollID) {
			delete(s.rankings, id)
		}
	}
	return nil
}

func (s *Store) Authenticate(_ context.Context, participantID string, password string) (ports.ParticipantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.participants[strings.TrimSpace(participantID)]
	if !ok {
		return ports.ParticipantRecord{}, domainerrors.ErrInvalidCredential
	}
	if s.passwords[record.ID] != password {
		return ports.ParticipantRecord{}, domainerrors.ErrInvalidCredential
	}
	return record, nil
}

func (s *Store) Get(_ context.Context, participantID string) (ports.ParticipantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.participants[strings.TrimSpace(participantID)]
	if !ok {
		return ports.ParticipantRecord{}, domainerrors.ErrInvalidParticipant
	}
	return record, nil
}

func (s *Store) List(_ context.Context) ([]ports.ParticipantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.ParticipantRecord, 0, len(s.participants))
	for _, record := range s.participants {
		items = append(items, record)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (s *Store) AdjustScore(_ context.Context, participantID string, delta int) (ports.ParticipantRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.participants[strings.TrimSpace(participantID)]
	if !ok {
		return ports.ParticipantRecord{}, domainerrors.ErrInvalidParticipant
	}
	record.Score += delta
	if record.Score < 0 {
		record.Score = 0
	}
	s.participants[record.ID] = record
	return record, nil
}

func (s *Store) Arm(id string, _ time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed[id] = fn
}

func (s *Store) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.armed, id)
	s.cancelled[id]++
}

func (s *Store) PollActivated(_ context.Context, poll entities.Poll) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activated = append(s.activated, poll)
}

func (s *Store) RankingUpdated(_ context.Context, pollID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rankingUpdates = append(s.rankingUpdates, pollID)
}

func (s *Store) PollEnded(_ context.Context, results ports.PollResults) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = append(s.ended, results)
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
