// Package service contains the business logic. Services validate input,
// enforce the lifecycle and policy rules, and emit domain events; they never
// touch gin or Redis directly.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mobilis/backend/config"
	"mobilis/backend/internal/event"
	"mobilis/backend/internal/queue"
	"mobilis/backend/internal/repository"
	"mobilis/backend/pkg/jwt"
	"mobilis/backend/pkg/redis"
)

// Shared sentinel errors. Handlers map these onto HTTP statuses.
var (
	// ErrForbidden means the authenticated actor may not perform the action.
	ErrForbidden = errors.New("forbidden")
)

// Services aggregates every service behind one constructor.
type Services struct {
	Auth     *AuthService
	User     *UserService
	Mission  *MissionService
	Proposal *ProposalService
	Message  *MessageService
	Export   *ExportService
}

// New wires the services.
func New(
	cfg *config.Config,
	repo *repository.Repository,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	q queue.Queue,
	logger *zap.Logger,
) *Services {
	dispatcher := NewDispatcher(q, logger)
	return &Services{
		Auth:     NewAuthService(repo.User, jwtManager, redisClient, logger),
		User:     NewUserService(repo.User),
		Mission:  NewMissionService(repo, dispatcher, logger),
		Proposal: NewProposalService(repo, dispatcher, logger),
		Message:  NewMessageService(repo, dispatcher),
		Export:   NewExportService(repo, cfg.Server.BaseURL),
	}
}

// Dispatcher puts domain events on the notification queue. Delivery is best
// effort from the request's point of view: a full or broken queue is logged
// and the request still succeeds, matching the asynchronous contract.
type Dispatcher struct {
	queue  queue.Queue
	logger *zap.Logger
}

// NewDispatcher wraps the queue.
func NewDispatcher(q queue.Queue, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{queue: q, logger: logger}
}

// Dispatch enqueues the event.
func (d *Dispatcher) Dispatch(ctx context.Context, ev event.Event) {
	payload, err := event.Marshal(ev)
	if err != nil {
		d.logger.Error("marshal event", zap.String("type", string(ev.Type)), zap.Error(err))
		return
	}
	if err := d.queue.Enqueue(ctx, payload); err != nil {
		d.logger.Error("enqueue event",
			zap.String("type", string(ev.Type)),
			zap.String("mission_id", ev.MissionID),
			zap.Error(err),
		)
	}
}
