package repo

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrDuplicateUser = errors.New("user already exists")

// Memory is a process-local Repository for development runs
// (DATABASE_URL=memory) and tests.
type Memory struct {
	mu    sync.Mutex
	users map[string]memUser
	runs  []Run
}

type memUser struct {
	id   int
	hash string
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]memUser)}
}

func (m *Memory) CreateUser(_ context.Context, login, _, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[login]; ok {
		return 0, ErrDuplicateUser
	}
	id := len(m.users) + 1
	m.users[login] = memUser{id: id, hash: password}
	return id, nil
}

func (m *Memory) GetBylogin(_ context.Context, login string) (int, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[login]
	return u.id, u.hash, nil
}

func (m *Memory) SaveRun(_ context.Context, userID int, title string, inputs []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run := Run{
		ID:        len(m.runs) + 1,
		UserID:    userID,
		Title:     title,
		Inputs:    append([]byte(nil), inputs...),
		CreatedAt: time.Now(),
	}
	m.runs = append(m.runs, run)
	return run.ID, nil
}

func (m *Memory) ListRuns(_ context.Context, userID int) ([]Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Run
	for _, r := range m.runs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) GetRun(_ context.Context, userID, id int) (Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.runs {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return Run{}, ErrNotFound
}
