package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	gamesession "github.com/eskrenkovic/table-scheduler/internal/modules/game-session"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"

	"github.com/google/uuid"
)

var _ gamesession.SessionRepository = (*SessionRepository)(nil)

type SessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[uuid.UUID]domain.Session)}
}

func (r *SessionRepository) FindByID(_ context.Context, id uuid.UUID) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, notFound("session")
	}

	return s, nil
}

func (r *SessionRepository) Create(_ context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; ok {
		return conflict("game_session_pkey")
	}

	r.sessions[session.ID] = session
	return nil
}

func (r *SessionRepository) Update(
	_ context.Context,
	id uuid.UUID,
	expected domain.SessionStatus,
	update domain.SessionUpdate,
) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || s.Status != expected {
		return domain.Session{}, notFound("session")
	}

	update.Title.Apply(&s.Title)
	update.Description.Apply(&s.Description)
	update.ScheduledFor.Apply(&s.ScheduledFor)
	update.Status.Apply(&s.Status)
	s.UpdatedAt = time.Now().UTC()

	r.sessions[id] = s
	return s, nil
}

func (r *SessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *SessionRepository) FindByTableID(_ context.Context, tableID uuid.UUID, opts core.QueryOptions) ([]domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found []domain.Session
	for _, s := range r.sessions {
		if s.TableID == tableID {
			found = append(found, s)
		}
	}

	return page(found, func(s domain.Session) time.Time { return s.CreatedAt }, opts), nil
}

var _ gamesession.SessionIntentRepository = (*SessionIntentRepository)(nil)

type SessionIntentRepository struct {
	mu      sync.Mutex
	intents map[uuid.UUID]domain.SessionIntent
}

func NewSessionIntentRepository() *SessionIntentRepository {
	return &SessionIntentRepository{intents: make(map[uuid.UUID]domain.SessionIntent)}
}

func (r *SessionIntentRepository) FindByID(_ context.Context, id uuid.UUID) (domain.SessionIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	intent, ok := r.intents[id]
	if !ok {
		return domain.SessionIntent{}, notFound("session intent")
	}

	return intent, nil
}

func (r *SessionIntentRepository) FindByUserAndSession(
	_ context.Context,
	userID uuid.UUID,
	sessionID uuid.UUID,
) (domain.SessionIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, intent := range r.intents {
		if intent.UserID == userID && intent.SessionID == sessionID {
			return intent, nil
		}
	}

	return domain.SessionIntent{}, notFound("session intent")
}

func (r *SessionIntentRepository) FindBySessionID(
	_ context.Context,
	sessionID uuid.UUID,
	opts core.QueryOptions,
) ([]domain.SessionIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found []domain.SessionIntent
	for _, intent := range r.intents {
		if intent.SessionID == sessionID {
			found = append(found, intent)
		}
	}

	return page(found, func(i domain.SessionIntent) time.Time { return i.CreatedAt }, opts), nil
}

func (r *SessionIntentRepository) Create(_ context.Context, intent domain.SessionIntent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.intents {
		if existing.UserID == intent.UserID && existing.SessionID == intent.SessionID {
			return conflict("session_intent_user_session_uq")
		}
	}

	r.intents[intent.ID] = intent
	return nil
}

func (r *SessionIntentRepository) Update(_ context.Context, intent domain.SessionIntent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.intents[intent.ID]; !ok {
		return notFound("session intent")
	}

	r.intents[intent.ID] = intent
	return nil
}

func (r *SessionIntentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.intents, id)
	return nil
}

var _ gamesession.SessionCheckinRepository = (*SessionCheckinRepository)(nil)

// SessionCheckinRepository resolves intents through the intent repository it
// is built with, for the referential check and the attendance query.
type SessionCheckinRepository struct {
	mu       sync.Mutex
	intents  *SessionIntentRepository
	checkins map[uuid.UUID]domain.SessionCheckin
}

func NewSessionCheckinRepository(intents *SessionIntentRepository) *SessionCheckinRepository {
	return &SessionCheckinRepository{
		intents:  intents,
		checkins: make(map[uuid.UUID]domain.SessionCheckin),
	}
}

func (r *SessionCheckinRepository) FindByID(_ context.Context, id uuid.UUID) (domain.SessionCheckin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	checkin, ok := r.checkins[id]
	if !ok {
		return domain.SessionCheckin{}, notFound("session checkin")
	}

	return checkin, nil
}

func (r *SessionCheckinRepository) FindBySessionIntentID(_ context.Context, intentID uuid.UUID) (domain.SessionCheckin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, checkin := range r.checkins {
		if checkin.SessionIntentID == intentID {
			return checkin, nil
		}
	}

	return domain.SessionCheckin{}, notFound("session checkin")
}

func (r *SessionCheckinRepository) FindByAttendance(
	ctx context.Context,
	userID uuid.UUID,
	attendance bool,
	opts core.QueryOptions,
) ([]domain.SessionCheckin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found []domain.SessionCheckin
	for _, checkin := range r.checkins {
		if checkin.Attendance != attendance {
			continue
		}

		intent, err := r.intents.FindByID(ctx, checkin.SessionIntentID)
		if err != nil || intent.UserID != userID {
			continue
		}

		found = append(found, checkin)
	}

	return page(found, func(c domain.SessionCheckin) time.Time { return c.CreatedAt }, opts), nil
}

func (r *SessionCheckinRepository) Create(ctx context.Context, checkin domain.SessionCheckin) error {
	if _, err := r.intents.FindByID(ctx, checkin.SessionIntentID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.checkins {
		if existing.SessionIntentID == checkin.SessionIntentID {
			return conflict("session_checkin_intent_uq")
		}
	}

	r.checkins[checkin.ID] = checkin
	return nil
}

func (r *SessionCheckinRepository) Update(
	_ context.Context,
	id uuid.UUID,
	update domain.SessionCheckinUpdate,
) (domain.SessionCheckin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	checkin, ok := r.checkins[id]
	if !ok {
		return domain.SessionCheckin{}, notFound("session checkin")
	}

	update.Attendance.Apply(&checkin.Attendance)
	update.Notes.Apply(&checkin.Notes)
	checkin.UpdatedAt = time.Now().UTC()

	r.checkins[id] = checkin
	return checkin, nil
}

func (r *SessionCheckinRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.checkins, id)
	return nil
}
