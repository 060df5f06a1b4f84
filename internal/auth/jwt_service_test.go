package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskflow/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: "test@example.com",
		Role:  model.RoleUser,
	}
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := testUser()

	token, err := svc.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
	assert.False(t, claims.IsAdmin())
}

func TestJWTService_Validate_Failures(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := testUser()

	token, err := svc.Issue(user)
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
		svc   *JWTService
	}{
		{
			name:  "malformed token",
			token: "not.a.token",
			svc:   svc,
		},
		{
			name:  "empty token",
			token: "",
			svc:   svc,
		},
		{
			name:  "tampered signature",
			token: token + "x",
			svc:   svc,
		},
		{
			name:  "wrong secret",
			token: token,
			svc:   NewJWTService("other-secret", time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.svc.Validate(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTService_Validate_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", time.Nanosecond)
	token, err := svc.Issue(testUser())
	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	claims, err := svc.Validate(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// A token snapshots the user's role at issuance. Changing the record
// afterwards does not change what an already-issued token says.
func TestJWTService_RoleSnapshotIsStale(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := testUser()

	token, err := svc.Issue(user)
	assert.NoError(t, err)

	user.Role = model.RoleAdmin

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.False(t, claims.IsAdmin())

	fresh, err := svc.Issue(user)
	assert.NoError(t, err)
	freshClaims, err := svc.Validate(fresh)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, freshClaims.Role)
}

func TestNewJWTService_DefaultTTL(t *testing.T) {
	svc := NewJWTService("test-secret", 0)
	assert.Equal(t, DefaultTokenTTL, svc.ttl)
}
