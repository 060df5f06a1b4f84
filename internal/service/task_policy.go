package service

import (
	"github.com/google/uuid"

	"taskflow/internal/auth"
	"taskflow/internal/errors"
	"taskflow/internal/model"
)

// TaskPolicy decides whether an actor may act on a task. Admins are
// unrestricted; everyone else only touches tasks they own. Ownership is
// identity equality on the assigned user, nothing transitive.
//
// Callers must resolve task existence before consulting the policy: a missing
// task is always "not found", never "forbidden", regardless of role.
type TaskPolicy struct{}

// CanCreate checks task creation with the effective assignee (explicit, or
// defaulted to the actor). Non-admins may only create tasks for themselves.
func (TaskPolicy) CanCreate(actor *auth.Claims, assignee uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	if assignee != actor.UserID {
		return errors.ErrCreateForOther
	}
	return nil
}

// ListScope returns the owner filter for listing. all is true for admins, in
// which case ownerID is meaningless.
func (TaskPolicy) ListScope(actor *auth.Claims) (ownerID uuid.UUID, all bool) {
	if actor.IsAdmin() {
		return uuid.Nil, true
	}
	return actor.UserID, false
}

// CanView checks single-task reads.
func (TaskPolicy) CanView(actor *auth.Claims, task *model.Task) error {
	if actor.IsAdmin() || task.AssignedUserID == actor.UserID {
		return nil
	}
	return errors.ErrViewForbidden
}

// CanUpdate checks task mutation. The ownership gate is the same as CanView;
// reassignment is gated separately by CanReassign.
func (TaskPolicy) CanUpdate(actor *auth.Claims, task *model.Task) error {
	if actor.IsAdmin() || task.AssignedUserID == actor.UserID {
		return nil
	}
	return errors.ErrUpdateForbidden
}

// CanReassign checks a change of assignee inside an update. Non-admins may
// never move a task to someone else, even one they currently own.
func (TaskPolicy) CanReassign(actor *auth.Claims, newAssignee uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	if newAssignee != actor.UserID {
		return errors.ErrReassignNotAdmin
	}
	return nil
}

// CanDelete checks task deletion.
func (TaskPolicy) CanDelete(actor *auth.Claims, task *model.Task) error {
	if actor.IsAdmin() || task.AssignedUserID == actor.UserID {
		return nil
	}
	return errors.ErrDeleteForbidden
}
