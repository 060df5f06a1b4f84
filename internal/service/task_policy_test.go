package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskflow/internal/auth"
	"taskflow/internal/errors"
	"taskflow/internal/model"
)

func actorClaims(id uuid.UUID, role model.Role) *auth.Claims {
	return &auth.Claims{UserID: id, Email: "actor@example.com", Role: role}
}

func TestTaskPolicy_CanCreate(t *testing.T) {
	var policy TaskPolicy
	self := uuid.New()
	other := uuid.New()

	tests := []struct {
		name     string
		role     model.Role
		assignee uuid.UUID
		wantErr  error
	}{
		{"user creates for self", model.RoleUser, self, nil},
		{"user creates for other", model.RoleUser, other, errors.ErrCreateForOther},
		{"admin creates for self", model.RoleAdmin, self, nil},
		{"admin creates for other", model.RoleAdmin, other, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CanCreate(actorClaims(self, tt.role), tt.assignee)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskPolicy_ListScope(t *testing.T) {
	var policy TaskPolicy
	self := uuid.New()

	ownerID, all := policy.ListScope(actorClaims(self, model.RoleAdmin))
	assert.True(t, all)
	assert.Equal(t, uuid.Nil, ownerID)

	ownerID, all = policy.ListScope(actorClaims(self, model.RoleUser))
	assert.False(t, all)
	assert.Equal(t, self, ownerID)
}

func TestTaskPolicy_OwnershipGates(t *testing.T) {
	var policy TaskPolicy
	owner := uuid.New()
	stranger := uuid.New()
	task := &model.Task{ID: uuid.New(), Title: "t", AssignedUserID: owner}

	tests := []struct {
		name    string
		actor   *auth.Claims
		check   func(*auth.Claims, *model.Task) error
		wantErr error
	}{
		{"owner views own task", actorClaims(owner, model.RoleUser), policy.CanView, nil},
		{"stranger views task", actorClaims(stranger, model.RoleUser), policy.CanView, errors.ErrViewForbidden},
		{"admin views any task", actorClaims(stranger, model.RoleAdmin), policy.CanView, nil},
		{"owner updates own task", actorClaims(owner, model.RoleUser), policy.CanUpdate, nil},
		{"stranger updates task", actorClaims(stranger, model.RoleUser), policy.CanUpdate, errors.ErrUpdateForbidden},
		{"admin updates any task", actorClaims(stranger, model.RoleAdmin), policy.CanUpdate, nil},
		{"owner deletes own task", actorClaims(owner, model.RoleUser), policy.CanDelete, nil},
		{"stranger deletes task", actorClaims(stranger, model.RoleUser), policy.CanDelete, errors.ErrDeleteForbidden},
		{"admin deletes any task", actorClaims(stranger, model.RoleAdmin), policy.CanDelete, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.actor, task)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskPolicy_CanReassign(t *testing.T) {
	var policy TaskPolicy
	self := uuid.New()
	other := uuid.New()

	// Keeping the assignee as yourself is not a reassignment.
	assert.NoError(t, policy.CanReassign(actorClaims(self, model.RoleUser), self))

	// Moving a task to someone else is admin-only, even for the current owner.
	err := policy.CanReassign(actorClaims(self, model.RoleUser), other)
	assert.ErrorIs(t, err, errors.ErrReassignNotAdmin)

	assert.NoError(t, policy.CanReassign(actorClaims(self, model.RoleAdmin), other))
}
