package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/power-play/models"
)

var superuserActor = Actor{ID: 1, Role: models.RoleSuperuser}

func newAdminFixture() (AdminService, *fakeProfileRepo, *recordingAudit) {
	super := player(1, 0)
	super.Role = models.RoleSuperuser
	admin := player(900, 0)
	admin.Role = models.RoleAdmin
	profiles := newFakeProfileRepo(super, admin, player(10, 0))
	audit := &recordingAudit{}
	return NewAdminService(profiles, nil, nil, nil, audit), profiles, audit
}

func TestSetRole(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		userID  int
		role    models.UserRole
		wantErr error
	}{
		{
			name:   "superuser promotes user",
			actor:  superuserActor,
			userID: 10,
			role:   models.RoleAdmin,
		},
		{
			name:    "admin cannot change roles",
			actor:   adminActor,
			userID:  10,
			role:    models.RoleAdmin,
			wantErr: ErrSuperuserRequired,
		},
		{
			name:    "superuser cannot demote self",
			actor:   superuserActor,
			userID:  1,
			role:    models.RoleUser,
			wantErr: ErrForbiddenOperation,
		},
		{
			name:    "unknown role",
			actor:   superuserActor,
			userID:  10,
			role:    models.UserRole("owner"),
			wantErr: ErrInvalidRole,
		},
		{
			name:    "unknown user",
			actor:   superuserActor,
			userID:  99,
			role:    models.RoleAdmin,
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, profiles, audit := newAdminFixture()
			before := map[int]models.UserRole{1: profiles.profiles[1].Role, 10: profiles.profiles[10].Role}

			err := svc.SetRole(context.Background(), tt.actor, tt.userID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, audit.entries)
				for id, role := range before {
					assert.Equal(t, role, profiles.profiles[id].Role)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, profiles.profiles[tt.userID].Role)
			require.Len(t, audit.entries, 1)
			assert.Equal(t, ActionRoleChanged, audit.entries[0].Action)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	t.Run("admin deletes plain user", func(t *testing.T) {
		svc, profiles, audit := newAdminFixture()

		require.NoError(t, svc.DeleteUser(context.Background(), adminActor, 10))
		assert.True(t, profiles.profiles[10].IsDeleted())
		require.Len(t, audit.entries, 1)
		assert.Equal(t, ActionUserDeleted, audit.entries[0].Action)
	})

	t.Run("admin cannot delete superuser", func(t *testing.T) {
		svc, profiles, _ := newAdminFixture()

		assert.ErrorIs(t, svc.DeleteUser(context.Background(), adminActor, 1), ErrSuperuserRequired)
		assert.False(t, profiles.profiles[1].IsDeleted())
	})

	t.Run("superuser deletes admin", func(t *testing.T) {
		svc, profiles, _ := newAdminFixture()

		require.NoError(t, svc.DeleteUser(context.Background(), superuserActor, 900))
		assert.True(t, profiles.profiles[900].IsDeleted())
	})

	t.Run("nobody deletes self", func(t *testing.T) {
		svc, _, _ := newAdminFixture()

		assert.ErrorIs(t, svc.DeleteUser(context.Background(), adminActor, adminActor.ID), ErrForbiddenOperation)
		assert.ErrorIs(t, svc.DeleteUser(context.Background(), superuserActor, superuserActor.ID), ErrForbiddenOperation)
	})

	t.Run("plain user is refused", func(t *testing.T) {
		svc, profiles, _ := newAdminFixture()

		assert.ErrorIs(t, svc.DeleteUser(context.Background(), Actor{ID: 10, Role: models.RoleUser}, 900), ErrAdminRequired)
		assert.False(t, profiles.profiles[900].IsDeleted())
	})
}
