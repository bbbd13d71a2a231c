// Package notify turns domain events into emails. The Notifier resolves each
// event's recipient set and renders the message; the Worker drains the queue
// and drives the Notifier with retries.
package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mobilis/backend/internal/event"
	"mobilis/backend/internal/model"
	"mobilis/backend/internal/repository"
	"mobilis/backend/pkg/mailer"
)

// Notifier resolves recipients for a domain event and sends one email per
// recipient.
type Notifier struct {
	repo    *repository.Repository
	mailer  mailer.Mailer
	logger  *zap.Logger
	baseURL string
}

// NewNotifier wires the notifier. baseURL is the public dashboard origin
// used to build deep links in the emails.
func NewNotifier(repo *repository.Repository, m mailer.Mailer, logger *zap.Logger, baseURL string) *Notifier {
	return &Notifier{repo: repo, mailer: m, logger: logger, baseURL: baseURL}
}

// Handle processes one event. It returns an error only when the event should
// be retried; unknown event types are dropped with a log line.
func (n *Notifier) Handle(ctx context.Context, ev event.Event) error {
	mission, err := n.repo.Mission.GetByID(ctx, ev.MissionID)
	if err != nil {
		if err == repository.ErrNotFound {
			// the mission was deleted after the event was queued
			n.logger.Warn("dropping event for missing mission",
				zap.String("event_id", ev.ID),
				zap.String("mission_id", ev.MissionID),
			)
			return nil
		}
		return fmt.Errorf("load mission %s: %w", ev.MissionID, err)
	}

	recipients, err := n.resolveRecipients(ctx, ev, mission)
	if err != nil {
		return err
	}

	subject, body := n.render(ev, mission)
	if subject == "" {
		n.logger.Warn("dropping event of unknown type",
			zap.String("event_id", ev.ID),
			zap.String("type", string(ev.Type)),
		)
		return nil
	}

	for _, user := range recipients {
		if err := n.mailer.Send(user.Email, subject, body); err != nil {
			return fmt.Errorf("send to %s: %w", user.Email, err)
		}
		n.logger.Info("notification sent",
			zap.String("event_id", ev.ID),
			zap.String("type", string(ev.Type)),
			zap.String("to", user.Email),
		)
	}
	return nil
}

// resolveRecipients maps an event type to the users who must be told.
func (n *Notifier) resolveRecipients(ctx context.Context, ev event.Event, mission *model.Mission) ([]model.User, error) {
	switch ev.Type {
	case event.MissionPended:
		// every operator sees the review backlog
		return n.repo.User.ListOperators(ctx)

	case event.MissionAccepted, event.MissionRejected, event.NewProposition:
		creator, err := n.userByID(ctx, mission.CreatedByID)
		if err != nil || creator == nil {
			return nil, err
		}
		return []model.User{*creator}, nil

	case event.PropositionAccepted, event.PropositionRejected:
		proposal, err := n.repo.Proposal.GetByID(ctx, ev.ProposalID)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil, nil
			}
			return nil, fmt.Errorf("load proposal %s: %w", ev.ProposalID, err)
		}
		owner, err := n.userByID(ctx, proposal.UserID)
		if err != nil || owner == nil {
			return nil, err
		}
		return []model.User{*owner}, nil

	case event.NewMessage:
		return n.messageRecipients(ctx, ev, mission)
	}
	return nil, nil
}

// messageRecipients is everyone already in the thread plus the mission
// creator, minus the author of the new message.
func (n *Notifier) messageRecipients(ctx context.Context, ev event.Event, mission *model.Mission) ([]model.User, error) {
	message, err := n.repo.Message.GetByID(ctx, ev.MessageID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("load message %s: %w", ev.MessageID, err)
	}

	posterIDs, err := n.repo.Message.DistinctPosterIDs(ctx, mission.ID)
	if err != nil {
		return nil, fmt.Errorf("list posters of mission %s: %w", mission.ID, err)
	}

	seen := map[string]bool{message.UserID: true}
	var recipients []model.User
	for _, id := range append(posterIDs, mission.CreatedByID) {
		if seen[id] {
			continue
		}
		seen[id] = true
		user, err := n.userByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user != nil {
			recipients = append(recipients, *user)
		}
	}
	return recipients, nil
}

func (n *Notifier) userByID(ctx context.Context, id string) (*model.User, error) {
	user, err := n.repo.User.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}
	return user, nil
}

// render returns the subject and HTML body for the event. An empty subject
// means the type is unknown.
func (n *Notifier) render(ev event.Event, mission *model.Mission) (string, string) {
	link := fmt.Sprintf("%s/dashboard/missions/%s", n.baseURL, mission.ID)

	switch ev.Type {
	case event.MissionPended:
		return "New Mission Pending Approval", n.body(
			fmt.Sprintf("The mission <strong>%s</strong> is waiting for review.", mission.Title),
			link, "Review mission")

	case event.MissionAccepted:
		return "Your Mission Has Been Published", n.body(
			fmt.Sprintf("Your mission <strong>%s</strong> has been approved and is now visible to movers.", mission.Title),
			link, "View mission")

	case event.MissionRejected:
		reason := ""
		if mission.RejectionReason != nil {
			reason = fmt.Sprintf("<p>Reason: %s</p>", *mission.RejectionReason)
		}
		return "Your Mission Has Been Rejected", n.body(
			fmt.Sprintf("Your mission <strong>%s</strong> was rejected by an operator.%s", mission.Title, reason),
			link, "Edit mission")

	case event.NewProposition:
		return "New Proposal for Your Mission", n.body(
			fmt.Sprintf("A mover submitted a proposal on your mission <strong>%s</strong>.", mission.Title),
			link, "View proposals")

	case event.PropositionAccepted:
		return "Your Proposal Has Been Accepted!", n.body(
			fmt.Sprintf("Your proposal on <strong>%s</strong> was accepted. The mission is now assigned to you.", mission.Title),
			link, "View mission")

	case event.PropositionRejected:
		return "Your Proposal Has Been Rejected", n.body(
			fmt.Sprintf("Your proposal on <strong>%s</strong> was not retained.", mission.Title),
			link, "Browse missions")

	case event.NewMessage:
		return "New Message on Your Mission", n.body(
			fmt.Sprintf("A new message was posted on the mission <strong>%s</strong>.", mission.Title),
			link, "Open discussion")
	}
	return "", ""
}

func (n *Notifier) body(lead, link, action string) string {
	return fmt.Sprintf(
		`<p>Hello,</p><p>%s</p><p><a href="%s">%s</a></p><p>The Mobilis Bourse team</p>`,
		lead, link, action,
	)
}
