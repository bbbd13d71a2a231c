package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"mobilis/backend/internal/dto"
	"mobilis/backend/internal/event"
	"mobilis/backend/internal/lifecycle"
	"mobilis/backend/internal/model"
	"mobilis/backend/internal/policy"
	"mobilis/backend/internal/queue"
	"mobilis/backend/internal/repository"
)

var (
	operatorActor = policy.Actor{ID: "op-1", Role: model.RoleOperator}
	creatorActor  = policy.Actor{ID: "mover-1", Role: model.RoleMover}
	bidderActor   = policy.Actor{ID: "mover-2", Role: model.RoleMover}
)

func newTestDispatcher() (*Dispatcher, *queue.MemoryQueue) {
	q := queue.NewMemoryQueue(16)
	return NewDispatcher(q, zap.NewNop()), q
}

// drainEvents pops every queued event so tests can assert on the dispatches.
func drainEvents(t *testing.T, q *queue.MemoryQueue) []event.Event {
	t.Helper()
	var events []event.Event
	for q.Len() > 0 {
		payload, err := q.Dequeue(context.Background(), time.Second)
		if err != nil {
			t.Fatalf("Dequeue failed: %v", err)
		}
		ev, err := event.Unmarshal(payload)
		if err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		events = append(events, ev)
	}
	return events
}

func newTestMissionService() (*MissionService, *repository.Repository, *queue.MemoryQueue) {
	repo := newMockRepository()
	dispatcher, q := newTestDispatcher()
	return NewMissionService(repo, dispatcher, zap.NewNop()), repo, q
}

func createDraft(t *testing.T, svc *MissionService, actor policy.Actor) *dto.MissionResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), actor, &dto.CreateMissionRequest{
		Title:    "Move a piano",
		From:     "Paris",
		To:       "Lyon",
		When:     "2026-09-15",
		Distance: 465,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return resp
}

func TestCreateMissionStartsInDraft(t *testing.T) {
	svc, _, q := newTestMissionService()

	resp := createDraft(t, svc, creatorActor)
	if resp.Status != string(lifecycle.StatusDraft) {
		t.Errorf("expected DRAFT, got %s", resp.Status)
	}
	if resp.CreatedBy != creatorActor.ID {
		t.Errorf("expected creator %s, got %s", creatorActor.ID, resp.CreatedBy)
	}
	if resp.When != "2026-09-15" {
		t.Errorf("expected when 2026-09-15, got %s", resp.When)
	}
	if len(drainEvents(t, q)) != 0 {
		t.Error("creating a draft should not dispatch events")
	}
}

func TestCreateMissionRejectsBadDate(t *testing.T) {
	svc, _, _ := newTestMissionService()

	_, err := svc.Create(context.Background(), creatorActor, &dto.CreateMissionRequest{
		Title: "x", From: "a", To: "b", When: "15/09/2026", Distance: 10,
	})
	if err == nil {
		t.Fatal("expected an error for a malformed date")
	}
}

func TestPublishByCreatorGoesPendingAndNotifies(t *testing.T) {
	svc, _, q := newTestMissionService()
	m := createDraft(t, svc, creatorActor)

	resp, err := svc.Publish(context.Background(), creatorActor, m.ID)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if resp.Status != string(lifecycle.StatusPending) {
		t.Errorf("expected PENDING, got %s", resp.Status)
	}

	events := drainEvents(t, q)
	if len(events) != 1 || events[0].Type != event.MissionPended {
		t.Fatalf("expected one MissionPended event, got %v", events)
	}
}

func TestPublishByOperatorGoesLiveWithoutEvent(t *testing.T) {
	svc, _, q := newTestMissionService()
	m := createDraft(t, svc, creatorActor)

	resp, err := svc.Publish(context.Background(), operatorActor, m.ID)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if resp.Status != string(lifecycle.StatusPublished) {
		t.Errorf("expected PUBLISHED, got %s", resp.Status)
	}
	if len(drainEvents(t, q)) != 0 {
		t.Error("operator force-publish should not dispatch events")
	}
}

func TestPublishByStrangerForbidden(t *testing.T) {
	svc, _, _ := newTestMissionService()
	m := createDraft(t, svc, creatorActor)

	if _, err := svc.Publish(context.Background(), bidderActor, m.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
}

func TestReviewAcceptPublishesAndNotifies(t *testing.T) {
	svc, _, q := newTestMissionService()
	m := createDraft(t, svc, creatorActor)
	_, _ = svc.Publish(context.Background(), creatorActor, m.ID)
	drainEvents(t, q)

	resp, err := svc.Review(context.Background(), operatorActor, m.ID, "")
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if resp.Status != string(lifecycle.StatusPublished) {
		t.Errorf("expected PUBLISHED, got %s", resp.Status)
	}

	events := drainEvents(t, q)
	if len(events) != 1 || events[0].Type != event.MissionAccepted {
		t.Fatalf("expected one MissionAccepted event, got %v", events)
	}
}

func TestReviewRejectStoresReasonAndNotifies(t *testing.T) {
	svc, _, q := newTestMissionService()
	m := createDraft(t, svc, creatorActor)
	_, _ = svc.Publish(context.Background(), creatorActor, m.ID)
	drainEvents(t, q)

	resp, err := svc.Review(context.Background(), operatorActor, m.ID, "incomplete address")
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if resp.Status != string(lifecycle.StatusRejected) {
		t.Errorf("expected REJECTED, got %s", resp.Status)
	}
	if resp.RejectionReason == nil || *resp.RejectionReason != "incomplete address" {
		t.Errorf("expected the rejection reason to be stored, got %v", resp.RejectionReason)
	}

	events := drainEvents(t, q)
	if len(events) != 1 || events[0].Type != event.MissionRejected {
		t.Fatalf("expected one MissionRejected event, got %v", events)
	}
}

func TestReviewRequiresPendingStatus(t *testing.T) {
	svc, _, _ := newTestMissionService()
	m := createDraft(t, svc, creatorActor)

	if _, err := svc.Review(context.Background(), operatorActor, m.ID, ""); !errors.Is(err, ErrMissionNotAvailable) {
		t.Errorf("expected ErrMissionNotAvailable for a draft mission, got: %v", err)
	}
}

func TestReviewRequiresOperator(t *testing.T) {
	svc, _, _ := newTestMissionService()
	m := createDraft(t, svc, creatorActor)
	_, _ = svc.Publish(context.Background(), creatorActor, m.ID)

	if _, err := svc.Review(context.Background(), creatorActor, m.ID, ""); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
}

func TestRejectedMissionCanBeResubmitted(t *testing.T) {
	svc, _, q := newTestMissionService()
	m := createDraft(t, svc, creatorActor)
	_, _ = svc.Publish(context.Background(), creatorActor, m.ID)
	_, _ = svc.Review(context.Background(), operatorActor, m.ID, "too vague")
	drainEvents(t, q)

	resp, err := svc.Publish(context.Background(), creatorActor, m.ID)
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if resp.Status != string(lifecycle.StatusPending) {
		t.Errorf("expected PENDING after resubmit, got %s", resp.Status)
	}
	if resp.RejectionReason != nil {
		t.Error("resubmitting should clear the rejection reason")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	svc, _, _ := newTestMissionService()
	m := createDraft(t, svc, creatorActor)
	ctx := context.Background()

	first, err := svc.Close(ctx, creatorActor, m.ID)
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	second, err := svc.Close(ctx, creatorActor, m.ID)
	if err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if first.Status != string(lifecycle.StatusClosed) || second.Status != string(lifecycle.StatusClosed) {
		t.Errorf("expected CLOSED both times, got %s then %s", first.Status, second.Status)
	}
}

func TestCloseByStrangerForbidden(t *testing.T) {
	svc, _, _ := newTestMissionService()
	m := createDraft(t, svc, creatorActor)

	if _, err := svc.Close(context.Background(), bidderActor, m.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
}

func TestGetVisibility(t *testing.T) {
	svc, _, _ := newTestMissionService()
	m := createDraft(t, svc, creatorActor)
	ctx := context.Background()

	if _, err := svc.Get(ctx, creatorActor, m.ID); err != nil {
		t.Errorf("creator should see the draft: %v", err)
	}
	if _, err := svc.Get(ctx, operatorActor, m.ID); err != nil {
		t.Errorf("operator should see the draft: %v", err)
	}
	if _, err := svc.Get(ctx, bidderActor, m.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger should get ErrForbidden for a draft, got: %v", err)
	}

	_, _ = svc.Publish(ctx, operatorActor, m.ID)
	if _, err := svc.Get(ctx, bidderActor, m.ID); err != nil {
		t.Errorf("anyone should see a published mission: %v", err)
	}
}

func TestGetUnknownMission(t *testing.T) {
	svc, _, _ := newTestMissionService()

	if _, err := svc.Get(context.Background(), creatorActor, "nope"); !errors.Is(err, ErrMissionNotFound) {
		t.Errorf("expected ErrMissionNotFound, got: %v", err)
	}
}

func TestDeleteMission(t *testing.T) {
	svc, _, _ := newTestMissionService()
	m := createDraft(t, svc, creatorActor)
	ctx := context.Background()

	if err := svc.Delete(ctx, bidderActor, m.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger delete: expected ErrForbidden, got: %v", err)
	}
	if err := svc.Delete(ctx, creatorActor, m.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, creatorActor, m.ID); !errors.Is(err, ErrMissionNotFound) {
		t.Errorf("expected ErrMissionNotFound after delete, got: %v", err)
	}
}

func TestListPendedOperatorOnly(t *testing.T) {
	svc, _, _ := newTestMissionService()
	m := createDraft(t, svc, creatorActor)
	ctx := context.Background()
	_, _ = svc.Publish(ctx, creatorActor, m.ID)

	missions, err := svc.ListPended(ctx, operatorActor)
	if err != nil {
		t.Fatalf("ListPended failed: %v", err)
	}
	if len(missions) != 1 || missions[0].ID != m.ID {
		t.Errorf("expected the pending mission in the backlog, got %v", missions)
	}

	if _, err := svc.ListPended(ctx, creatorActor); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for a mover, got: %v", err)
	}
}

func TestListReturnsOnlyPublished(t *testing.T) {
	svc, _, _ := newTestMissionService()
	ctx := context.Background()

	draft := createDraft(t, svc, creatorActor)
	live := createDraft(t, svc, creatorActor)
	_, _ = svc.Publish(ctx, operatorActor, live.ID)

	missions, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(missions) != 1 || missions[0].ID != live.ID {
		t.Errorf("expected only the published mission, got %v", missions)
	}
	_ = draft
}
