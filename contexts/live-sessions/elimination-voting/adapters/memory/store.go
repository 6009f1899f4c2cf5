package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tiebreak/contexts/live-sessions/elimination-voting/domain/entities"
	domainerrors "tiebreak/contexts/live-sessions/elimination-voting/domain/errors"
	"tiebreak/contexts/live-sessions/elimination-voting/ports"

	"github.com/google/uuid"
)

// Store backs the module for tests. It stands in for every port: repositories,
// the participant directory (seeded with Set helpers), a manual scheduler, a
// deterministic rand, and a recording notifier.
type Store struct {
	mu sync.RWMutex

	sessions map[string]entities.VotingSession
	votes    map[string]entities.Vote

	participants map[string]ports.ParticipantRecord
	passwords    map[string]string

	armed     map[string]func()
	cancelled map[string]int

	started        []entities.VotingSession
	voteUpdates    []string
	ended          []ports.SessionResults
	cancelledNotes []string

	randPick int
	now      time.Time
}

func NewStore(seed []entities.VotingSession) *Store {
	sessions := make(map[string]entities.VotingSession, len(seed))
	for _, session := range seed {
		sessions[session.ID] = session
	}
	return &Store{
		sessions:     sessions,
		votes:        make(map[string]entities.Vote),
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

// SetRandPick pins which leader index the rand returns on vote ties.
func (s *Store) SetRandPick(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.randPick = index
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

// TimerArmed reports whether a callback is pending for id.
func (s *Store) TimerArmed(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.armed[id]
	return ok
}

// TimerCancels reports how often Cancel was called for id.
func (s *Store) TimerCancels(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cancelled[id]
}

func (s *Store) Started() []entities.VotingSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.VotingSession(nil), s.started...)
}

func (s *Store) VoteUpdates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.voteUpdates...)
}

func (s *Store) Ended() []ports.SessionResults {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.SessionResults(nil), s.ended...)
}

func (s *Store) CancelledNotes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.cancelledNotes...)
}

func (s *Store) SaveSession(_ context.Context, session entities.VotingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *Store) GetSession(_ context.Context, sessionID string) (entities.VotingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[strings.TrimSpace(sessionID)]
	if !ok {
		return entities.VotingSession{}, domainerrors.ErrSessionNotFound
	}
	return session, nil
}

func (s *Store) ActiveSession(_ context.Context) (entities.VotingSession, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, session := range s.sessions {
		if session.Status == entities.SessionStatusActive {
			return session, true, nil
		}
	}
	return entities.VotingSession{}, false, nil
}

func (s *Store) ListSessions(_ context.Context) ([]entities.VotingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.VotingSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		items = append(items, session)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListExpiredActiveSessions(_ context.Context, now time.Time) ([]entities.VotingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.VotingSession, 0)
	for _, session := range s.sessions {
		if session.Status == entities.SessionStatusActive && !session.VotingEndsAt.After(now) {
			items = append(items, session)
		}
	}
	return items, nil
}

func (s *Store) TransitionStatus(
	_ context.Context,
	sessionID string,
	from entities.SessionStatus,
	to entities.SessionStatus,
	at time.Time,
) (entities.VotingSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[strings.TrimSpace(sessionID)]
	if !ok {
		return entities.VotingSession{}, false, domainerrors.ErrSessionNotFound
	}
	if session.Status != from {
		return session, false, nil
	}
	session.Status = to
	session.UpdatedAt = at
	s.sessions[session.ID] = session
	return session, true, nil
}

func (s *Store) ForceStatus(_ context.Context, sessionID string, to entities.SessionStatus, at time.Time) (entities.VotingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[strings.TrimSpace(sessionID)]
	if !ok {
		return entities.VotingSession{}, domainerrors.ErrSessionNotFound
	}
	session.Status = to
	session.UpdatedAt = at
	s.sessions[session.ID] = session
	return session, nil
}

func (s *Store) SetEliminated(_ context.Context, sessionID string, participantID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[strings.TrimSpace(sessionID)]
	if !ok {
		return domainerrors.ErrSessionNotFound
	}
	session.EliminatedParticipantID = participantID
	session.UpdatedAt = at
	s.sessions[session.ID] = session
	return nil
}

func (s *Store) UpsertVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.votes {
		if existing.VotingSessionID == vote.VotingSessionID &&
			existing.VoterParticipantID == vote.VoterParticipantID {
			existing.TargetParticipantID = vote.TargetParticipantID
			s.votes[id] = existing
			return nil
		}
	}
	s.votes[vote.ID] = vote
	return nil
}

func (s *Store) ListVotes(_ context.Context, sessionID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.VotingSessionID == strings.TrimSpace(sessionID) {
			items = append(items, vote)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
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

func (s *Store) Get(_ context.Context, participantID string) (ports.ParticipantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.participants[strings.TrimSpace(participantID)]
	if !ok {
		return ports.ParticipantRecord{}, domainerrors.ErrParticipantNotFound
	}
	return record, nil
}

func (s *Store) Standings(_ context.Context) ([]entities.Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]ports.ParticipantRecord, 0, len(s.participants))
	for _, record := range s.participants {
		records = append(records, record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].ID < records[j].ID
	})

	standings := make([]entities.Standing, 0, len(records))
	for _, record := range records {
		standings = append(standings, entities.Standing{
			ParticipantID: record.ID,
			Score:         record.Score,
		})
	}
	return standings, nil
}

func (s *Store) AdjustScore(_ context.Context, participantID string, delta int) (ports.ParticipantRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.participants[strings.TrimSpace(participantID)]
	if !ok {
		return ports.ParticipantRecord{}, domainerrors.ErrParticipantNotFound
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

func (s *Store) Intn(int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.randPick
}

func (s *Store) SessionStarted(_ context.Context, session entities.VotingSession, _ []ports.ParticipantRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = append(s.started, session)
}

func (s *Store) VoteRegistered(_ context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voteUpdates = append(s.voteUpdates, sessionID)
}

func (s *Store) SessionEnded(_ context.Context, results ports.SessionResults) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = append(s.ended, results)
}

func (s *Store) SessionCancelled(_ context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelledNotes = append(s.cancelledNotes, sessionID)
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
