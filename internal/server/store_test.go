package server

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-recommender/internal/db"
	"github.com/jonathan/career-recommender/internal/types"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*db.User
	profiles map[uuid.UUID]*db.Profile
	skills   map[uuid.UUID][]db.UserSkill
	resumes  map[uuid.UUID]*db.Resume
	recs     map[uuid.UUID]map[int]types.Recommendation
	pingErr  error
	clock    time.Time
}

var _ Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*db.User),
		profiles: make(map[uuid.UUID]*db.Profile),
		skills:   make(map[uuid.UUID][]db.UserSkill),
		resumes:  make(map[uuid.UUID]*db.Resume),
		recs:     make(map[uuid.UUID]map[int]types.Recommendation),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick advances the fake clock so consecutive writes get distinct timestamps.
func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) Ping(context.Context) error {
	return m.pingErr
}

func (m *memStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return uuid.Nil, errors.New("duplicate email")
		}
	}
	now := m.tick()
	u := &db.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		PasswordSet:  passwordHash != "",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpsertProfile(_ context.Context, p *db.Profile) (*db.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	stored := *p
	if prev, ok := m.profiles[p.UserID]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	m.profiles[p.UserID] = &stored
	cp := stored
	return &cp, nil
}

func (m *memStore) GetProfile(_ context.Context, userID uuid.UUID) (*db.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) UpsertUserSkill(_ context.Context, userID uuid.UUID, skillID string, level types.Level, years float64) (*db.UserSkill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	rows := m.skills[userID]
	for i := range rows {
		if rows[i].SkillID == skillID {
			rows[i].Level = level
			rows[i].YearsExperience = years
			rows[i].UpdatedAt = now
			cp := rows[i]
			return &cp, nil
		}
	}
	row := db.UserSkill{
		ID:              uuid.New(),
		UserID:          userID,
		SkillID:         skillID,
		Level:           level,
		YearsExperience: years,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.skills[userID] = append(rows, row)
	return &row, nil
}

func (m *memStore) ListUserSkills(_ context.Context, userID uuid.UUID) ([]db.UserSkill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := append([]db.UserSkill(nil), m.skills[userID]...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].SkillID < rows[j].SkillID })
	return rows, nil
}

func (m *memStore) DeleteUserSkill(_ context.Context, userID uuid.UUID, skillID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.skills[userID]
	for i := range rows {
		if rows[i].SkillID == skillID {
			m.skills[userID] = append(rows[:i], rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) SaveResume(_ context.Context, r *db.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *r
	stored.CreatedAt = m.tick()
	m.resumes[r.UserID] = &stored
	return nil
}

func (m *memStore) GetResume(_ context.Context, userID uuid.UUID) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[userID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) UpsertRecommendation(_ context.Context, userID uuid.UUID, rec *types.Recommendation) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recs[userID] == nil {
		m.recs[userID] = make(map[int]types.Recommendation)
	}
	stored := *rec
	stored.UpdatedAt = m.tick()
	m.recs[userID][rec.JobID] = stored
	return stored.UpdatedAt, nil
}

func (m *memStore) GetRecommendation(_ context.Context, userID uuid.UUID, jobID int) (*types.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[userID][jobID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memStore) ListRecommendations(_ context.Context, userID uuid.UUID, limit int) ([]types.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Recommendation, 0, len(m.recs[userID]))
	for _, rec := range m.recs[userID] {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		return out[i].JobID < out[j].JobID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
