// services/authz.go - Permission guards
package services

import "pickleball/models"

// RemovalDecision is the outcome of a member-removal permission check. The
// creator branch wins when the requester is both creator and target.
type RemovalDecision int

const (
	RemovalDenied RemovalDecision = iota
	RemovalAsCreator
	RemovalAsSelf
)

func (d RemovalDecision) Allowed() bool {
	return d != RemovalDenied
}

// DecideMemberRemoval determines whether requester may remove member from
// group: the group creator may remove anyone, a member may remove themself.
func DecideMemberRemoval(group *models.Group, memberID, requesterID uint) RemovalDecision {
	if group.CreatorID == requesterID {
		return RemovalAsCreator
	}
	if memberID == requesterID {
		return RemovalAsSelf
	}
	return RemovalDenied
}

// CanDeleteGroup reports whether requester may delete the group. Only the
// creator can.
func CanDeleteGroup(group *models.Group, requesterID uint) bool {
	return group.CreatorID == requesterID
}

// CanCloseSession reports whether requester may close the session. Only the
// creator can, regardless of the session's current state.
func CanCloseSession(session *models.Session, requesterID uint) bool {
	return session.CreatedByID == requesterID
}
