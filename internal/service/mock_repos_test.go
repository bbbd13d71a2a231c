package service

import (
	"context"
	"fmt"
	"sync"

	"mobilis/backend/internal/lifecycle"
	"mobilis/backend/internal/model"
	"mobilis/backend/internal/repository"
)

// In-memory repositories shared by the service tests. They keep the same
// semantics as the GORM implementations for the paths the services exercise.

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*model.User{}}
}

func (r *mockUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		r.seq++
		u.ID = fmt.Sprintf("user-%d", r.seq)
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *mockUserRepo) ListOperators(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if u.Role == model.RoleOperator {
			out = append(out, *u)
		}
	}
	return out, nil
}

type mockMissionRepo struct {
	mu       sync.Mutex
	missions map[string]*model.Mission
	seq      int
}

func newMockMissionRepo() *mockMissionRepo {
	return &mockMissionRepo{missions: map[string]*model.Mission{}}
}

func (r *mockMissionRepo) Create(_ context.Context, m *model.Mission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		r.seq++
		m.ID = fmt.Sprintf("mission-%d", r.seq)
	}
	cp := *m
	r.missions[m.ID] = &cp
	return nil
}

func (r *mockMissionRepo) GetByID(_ context.Context, id string) (*model.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.missions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *mockMissionRepo) Update(_ context.Context, m *model.Mission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.missions[m.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *m
	r.missions[m.ID] = &cp
	return nil
}

func (r *mockMissionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.missions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.missions, id)
	return nil
}

func (r *mockMissionRepo) ListByStatus(_ context.Context, status lifecycle.Status) ([]model.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Mission
	for _, m := range r.missions {
		if m.Status == status {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *mockMissionRepo) ListByUser(_ context.Context, userID string) ([]model.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Mission
	for _, m := range r.missions {
		if m.CreatedByID == userID || (m.AssignedToID != nil && *m.AssignedToID == userID) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *mockMissionRepo) ListAll(_ context.Context) ([]model.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Mission
	for _, m := range r.missions {
		out = append(out, *m)
	}
	return out, nil
}

type mockProposalRepo struct {
	mu        sync.Mutex
	proposals map[string]*model.Proposal
	missions  *mockMissionRepo
	seq       int
}

func newMockProposalRepo(missions *mockMissionRepo) *mockProposalRepo {
	return &mockProposalRepo{proposals: map[string]*model.Proposal{}, missions: missions}
}

func (r *mockProposalRepo) Create(_ context.Context, p *model.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("proposal-%d", r.seq)
	}
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

// GetByID attaches the mission like the GORM preload does.
func (r *mockProposalRepo) GetByID(ctx context.Context, id string) (*model.Proposal, error) {
	r.mu.Lock()
	p, ok := r.proposals[id]
	if !ok {
		r.mu.Unlock()
		return nil, repository.ErrNotFound
	}
	cp := *p
	r.mu.Unlock()

	if mission, err := r.missions.GetByID(ctx, cp.MissionID); err == nil {
		cp.Mission = mission
	}
	return &cp, nil
}

func (r *mockProposalRepo) Update(_ context.Context, p *model.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.proposals[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

func (r *mockProposalRepo) ListByMission(_ context.Context, missionID string) ([]model.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Proposal
	for _, p := range r.proposals {
		if p.MissionID == missionID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type mockMessageRepo struct {
	mu       sync.Mutex
	messages map[string]*model.Message
	seq      int
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{messages: map[string]*model.Message{}}
}

func (r *mockMessageRepo) Create(_ context.Context, m *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		r.seq++
		m.ID = fmt.Sprintf("message-%d", r.seq)
	}
	cp := *m
	r.messages[m.ID] = &cp
	return nil
}

func (r *mockMessageRepo) GetByID(_ context.Context, id string) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *mockMessageRepo) ListByMission(_ context.Context, missionID string) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Message
	for _, m := range r.messages {
		if m.MissionID == missionID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *mockMessageRepo) DistinctPosterIDs(_ context.Context, missionID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, m := range r.messages {
		if m.MissionID == missionID && !seen[m.UserID] {
			seen[m.UserID] = true
			out = append(out, m.UserID)
		}
	}
	return out, nil
}

func newMockRepository() *repository.Repository {
	missions := newMockMissionRepo()
	return &repository.Repository{
		User:     newMockUserRepo(),
		Mission:  missions,
		Proposal: newMockProposalRepo(missions),
		Message:  newMockMessageRepo(),
	}
}
