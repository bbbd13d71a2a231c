// Package policy holds the authorization predicates. Each function is a pure
// check of an actor against a resource so handlers, services, and tests share
// one definition of who may do what.
package policy

import (
	"mobilis/backend/internal/lifecycle"
	"mobilis/backend/internal/model"
)

// Actor identifies the authenticated caller of a request.
type Actor struct {
	ID   string
	Role string
}

// IsOperator reports whether the actor carries the operator role.
func (a Actor) IsOperator() bool { return a.Role == model.RoleOperator }

// CanViewMission allows the creator, the assignee, any operator, and, for
// published missions, everyone.
func CanViewMission(a Actor, m *model.Mission) bool {
	if a.IsOperator() || m.CreatedByID == a.ID {
		return true
	}
	if m.AssignedToID != nil && *m.AssignedToID == a.ID {
		return true
	}
	return m.Status == lifecycle.StatusPublished
}

// CanSubmitForReview allows only the mission creator to request publication.
func CanSubmitForReview(a Actor, m *model.Mission) bool {
	return a.IsOperator() || m.CreatedByID == a.ID
}

// CanReviewMission allows only operators to accept or reject a pending
// mission.
func CanReviewMission(a Actor) bool { return a.IsOperator() }

// CanCloseMission allows the creator, the assignee, or any operator.
func CanCloseMission(a Actor, m *model.Mission) bool {
	if a.IsOperator() || m.CreatedByID == a.ID {
		return true
	}
	return m.AssignedToID != nil && *m.AssignedToID == a.ID
}

// CanDeleteMission allows the creator or any operator.
func CanDeleteMission(a Actor, m *model.Mission) bool {
	return a.IsOperator() || m.CreatedByID == a.ID
}

// CanListProposals allows the creator or an operator, and only while the
// mission is still published. Once assigned the bids are sealed.
func CanListProposals(a Actor, m *model.Mission) bool {
	if !a.IsOperator() && m.CreatedByID != a.ID {
		return false
	}
	return m.Status == lifecycle.StatusPublished
}

// CanViewProposal allows the bidder, the mission creator, or an operator.
func CanViewProposal(a Actor, p *model.Proposal) bool {
	if a.IsOperator() || p.UserID == a.ID {
		return true
	}
	return p.Mission != nil && p.Mission.CreatedByID == a.ID
}

// CanDecideProposal allows only the mission creator to accept or reject a
// bid on their mission.
func CanDecideProposal(a Actor, p *model.Proposal) bool {
	return p.Mission != nil && p.Mission.CreatedByID == a.ID
}

// CanListPended allows only operators to see the review backlog.
func CanListPended(a Actor) bool { return a.IsOperator() }
