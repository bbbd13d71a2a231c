package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"mobilis/backend/internal/event"
	"mobilis/backend/internal/lifecycle"
	"mobilis/backend/internal/model"
	"mobilis/backend/internal/queue"
	"mobilis/backend/internal/repository"
)

// ── fakes ──

type fakeUserRepo struct {
	users map[string]*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ListOperators(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Role == model.RoleOperator {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeMissionRepo struct {
	missions map[string]*model.Mission
}

func (r *fakeMissionRepo) Create(_ context.Context, m *model.Mission) error {
	r.missions[m.ID] = m
	return nil
}

func (r *fakeMissionRepo) GetByID(_ context.Context, id string) (*model.Mission, error) {
	m, ok := r.missions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

func (r *fakeMissionRepo) Update(_ context.Context, m *model.Mission) error {
	r.missions[m.ID] = m
	return nil
}

func (r *fakeMissionRepo) Delete(_ context.Context, id string) error {
	delete(r.missions, id)
	return nil
}

func (r *fakeMissionRepo) ListByStatus(_ context.Context, _ lifecycle.Status) ([]model.Mission, error) {
	return nil, nil
}

func (r *fakeMissionRepo) ListByUser(_ context.Context, _ string) ([]model.Mission, error) {
	return nil, nil
}

func (r *fakeMissionRepo) ListAll(_ context.Context) ([]model.Mission, error) {
	return nil, nil
}

type fakeProposalRepo struct {
	proposals map[string]*model.Proposal
}

func (r *fakeProposalRepo) Create(_ context.Context, p *model.Proposal) error {
	r.proposals[p.ID] = p
	return nil
}

func (r *fakeProposalRepo) GetByID(_ context.Context, id string) (*model.Proposal, error) {
	p, ok := r.proposals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeProposalRepo) Update(_ context.Context, p *model.Proposal) error {
	r.proposals[p.ID] = p
	return nil
}

func (r *fakeProposalRepo) ListByMission(_ context.Context, _ string) ([]model.Proposal, error) {
	return nil, nil
}

type fakeMessageRepo struct {
	messages map[string]*model.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, m *model.Message) error {
	r.messages[m.ID] = m
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id string) (*model.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

func (r *fakeMessageRepo) ListByMission(_ context.Context, _ string) ([]model.Message, error) {
	return nil, nil
}

func (r *fakeMessageRepo) DistinctPosterIDs(_ context.Context, missionID string) ([]string, error) {
	seen := map[string]bool{}
	var ids []string
	for _, m := range r.messages {
		if m.MissionID == missionID && !seen[m.UserID] {
			seen[m.UserID] = true
			ids = append(ids, m.UserID)
		}
	}
	return ids, nil
}

type recordingMailer struct {
	sent []string // "to|subject"
	fail int      // fail the first N sends
}

func (m *recordingMailer) Send(to, subject, _ string) error {
	if m.fail > 0 {
		m.fail--
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

// ── fixtures ──

func testRepo() *repository.Repository {
	return &repository.Repository{
		User:     &fakeUserRepo{users: map[string]*model.User{}},
		Mission:  &fakeMissionRepo{missions: map[string]*model.Mission{}},
		Proposal: &fakeProposalRepo{proposals: map[string]*model.Proposal{}},
		Message:  &fakeMessageRepo{messages: map[string]*model.Message{}},
	}
}

func seedUser(repo *repository.Repository, id, email, role string) {
	_ = repo.User.Create(context.Background(), &model.User{ID: id, Name: id, Email: email, Role: role})
}

func seedMission(repo *repository.Repository, id, creatorID string, status lifecycle.Status) *model.Mission {
	m := &model.Mission{ID: id, Title: "Paris to Lyon", Status: status, CreatedByID: creatorID}
	_ = repo.Mission.Create(context.Background(), m)
	return m
}

func newTestNotifier(repo *repository.Repository, m *recordingMailer) *Notifier {
	return NewNotifier(repo, m, zap.NewNop(), "http://localhost:3000")
}

// ── tests ──

func TestMissionPendedNotifiesAllOperators(t *testing.T) {
	repo := testRepo()
	seedUser(repo, "op-1", "op1@mobilis.test", model.RoleOperator)
	seedUser(repo, "op-2", "op2@mobilis.test", model.RoleOperator)
	seedUser(repo, "mover-1", "mover@mobilis.test", model.RoleMover)
	seedMission(repo, "m-1", "mover-1", lifecycle.StatusPending)

	m := &recordingMailer{}
	n := newTestNotifier(repo, m)

	if err := n.Handle(context.Background(), event.New(event.MissionPended, "m-1")); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(m.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d: %v", len(m.sent), m.sent)
	}
	for _, s := range m.sent {
		if s != "op1@mobilis.test|New Mission Pending Approval" && s != "op2@mobilis.test|New Mission Pending Approval" {
			t.Errorf("unexpected email %q", s)
		}
	}
}

func TestMissionRejectedNotifiesCreator(t *testing.T) {
	repo := testRepo()
	seedUser(repo, "mover-1", "mover@mobilis.test", model.RoleMover)
	mission := seedMission(repo, "m-1", "mover-1", lifecycle.StatusRejected)
	reason := "incomplete address"
	mission.RejectionReason = &reason

	m := &recordingMailer{}
	n := newTestNotifier(repo, m)

	if err := n.Handle(context.Background(), event.New(event.MissionRejected, "m-1")); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(m.sent) != 1 || m.sent[0] != "mover@mobilis.test|Your Mission Has Been Rejected" {
		t.Fatalf("unexpected emails: %v", m.sent)
	}
}

func TestPropositionAcceptedNotifiesBidder(t *testing.T) {
	repo := testRepo()
	seedUser(repo, "creator", "creator@mobilis.test", model.RoleMover)
	seedUser(repo, "bidder", "bidder@mobilis.test", model.RoleMover)
	seedMission(repo, "m-1", "creator", lifecycle.StatusAssigned)
	_ = repo.Proposal.Create(context.Background(), &model.Proposal{
		ID: "p-1", MissionID: "m-1", UserID: "bidder", Status: model.ProposalAccepted,
	})

	m := &recordingMailer{}
	n := newTestNotifier(repo, m)

	ev := event.New(event.PropositionAccepted, "m-1")
	ev.ProposalID = "p-1"
	if err := n.Handle(context.Background(), ev); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(m.sent) != 1 || m.sent[0] != "bidder@mobilis.test|Your Proposal Has Been Accepted!" {
		t.Fatalf("unexpected emails: %v", m.sent)
	}
}

func TestNewMessageNotifiesThreadMinusAuthor(t *testing.T) {
	repo := testRepo()
	seedUser(repo, "creator", "creator@mobilis.test", model.RoleMover)
	seedUser(repo, "alice", "alice@mobilis.test", model.RoleMover)
	seedUser(repo, "bob", "bob@mobilis.test", model.RoleMover)
	seedMission(repo, "m-1", "creator", lifecycle.StatusPublished)
	_ = repo.Message.Create(context.Background(), &model.Message{ID: "msg-1", MissionID: "m-1", UserID: "alice"})
	_ = repo.Message.Create(context.Background(), &model.Message{ID: "msg-2", MissionID: "m-1", UserID: "bob"})

	m := &recordingMailer{}
	n := newTestNotifier(repo, m)

	// bob posts msg-2: alice and the creator are told, bob is not
	ev := event.New(event.NewMessage, "m-1")
	ev.MessageID = "msg-2"
	if err := n.Handle(context.Background(), ev); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(m.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d: %v", len(m.sent), m.sent)
	}
	for _, s := range m.sent {
		if s == "bob@mobilis.test|New Message on Your Mission" {
			t.Error("the message author should not be notified")
		}
	}
}

func TestHandleDropsEventForMissingMission(t *testing.T) {
	repo := testRepo()
	m := &recordingMailer{}
	n := newTestNotifier(repo, m)

	if err := n.Handle(context.Background(), event.New(event.MissionPended, "gone")); err != nil {
		t.Fatalf("expected missing mission to be dropped, got: %v", err)
	}
	if len(m.sent) != 0 {
		t.Errorf("expected no emails, got %v", m.sent)
	}
}

func TestWorkerRetriesFailedJob(t *testing.T) {
	repo := testRepo()
	seedUser(repo, "op-1", "op@mobilis.test", model.RoleOperator)
	seedUser(repo, "mover-1", "mover@mobilis.test", model.RoleMover)
	seedMission(repo, "m-1", "mover-1", lifecycle.StatusPending)

	m := &recordingMailer{fail: 1}
	n := newTestNotifier(repo, m)
	q := queue.NewMemoryQueue(4)
	w := NewWorker(q, n, zap.NewNop(), 1, 3, time.Millisecond)

	ctx := context.Background()
	payload, _ := event.Marshal(event.New(event.MissionPended, "m-1"))
	if err := q.Enqueue(ctx, payload); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	// first pass fails and re-enqueues, second pass delivers
	if err := w.ProcessOne(ctx); err != nil {
		t.Fatalf("ProcessOne failed: %v", err)
	}
	if q.Len() != 1 {
		t.Fatalf("expected the job back on the queue, got %d buffered", q.Len())
	}
	if err := w.ProcessOne(ctx); err != nil {
		t.Fatalf("ProcessOne failed: %v", err)
	}
	if len(m.sent) != 1 || m.sent[0] != "op@mobilis.test|New Mission Pending Approval" {
		t.Fatalf("unexpected emails: %v", m.sent)
	}
}

func TestWorkerDropsJobAfterMaxAttempts(t *testing.T) {
	repo := testRepo()
	seedUser(repo, "op-1", "op@mobilis.test", model.RoleOperator)
	seedUser(repo, "mover-1", "mover@mobilis.test", model.RoleMover)
	seedMission(repo, "m-1", "mover-1", lifecycle.StatusPending)

	m := &recordingMailer{fail: 10}
	n := newTestNotifier(repo, m)
	q := queue.NewMemoryQueue(4)
	w := NewWorker(q, n, zap.NewNop(), 1, 2, time.Millisecond)

	ctx := context.Background()
	payload, _ := event.Marshal(event.New(event.MissionPended, "m-1"))
	_ = q.Enqueue(ctx, payload)

	_ = w.ProcessOne(ctx) // attempt 0 fails, re-enqueued as attempt 1
	_ = w.ProcessOne(ctx) // attempt 1 fails, dropped (max 2)

	if q.Len() != 0 {
		t.Errorf("expected the job to be dropped, got %d buffered", q.Len())
	}
	if len(m.sent) != 0 {
		t.Errorf("expected no emails, got %v", m.sent)
	}
}
