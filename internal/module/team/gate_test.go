package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CurrentTeam(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	t.Run("no team", func(t *testing.T) {
		_, err := svc.CurrentTeam(ctx, bob)
		assert.ErrorIs(t, err, ErrNoCurrentTeam)
	})

	t.Run("after creating a team", func(t *testing.T) {
		team, err := svc.CreateTeam(ctx, alice, &CreateTeamRequest{Name: "Gophers"})
		require.NoError(t, err)

		current, err := svc.CurrentTeam(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, team.ID, current)
	})
}

func TestService_AuthorizeWrite(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	gophers, err := svc.CreateTeam(ctx, alice, &CreateTeamRequest{Name: "Gophers"})
	require.NoError(t, err)
	rust, err := svc.CreateTeam(ctx, bob, &CreateTeamRequest{Name: "Rustaceans"})
	require.NoError(t, err)

	t.Run("member of the current team may write", func(t *testing.T) {
		assert.NoError(t, svc.AuthorizeWrite(ctx, alice, gophers.ID))
	})

	t.Run("other team's resource is denied", func(t *testing.T) {
		err := svc.AuthorizeWrite(ctx, alice, rust.ID)
		assert.ErrorIs(t, err, ErrTeamMismatch)
	})

	t.Run("no current team is denied", func(t *testing.T) {
		err := svc.AuthorizeWrite(ctx, carol, gophers.ID)
		assert.ErrorIs(t, err, ErrTeamMismatch)
	})

	t.Run("pending member is denied even pointing at the team", func(t *testing.T) {
		require.NoError(t, svc.RequestJoin(ctx, carol, gophers.ID))
		// Force the pointer without going through SwitchTeam to prove
		// the gate checks the membership itself.
		require.NoError(t, NewUserStore(db).SetCurrentTeam(ctx, carol, &gophers.ID))

		err := svc.AuthorizeWrite(ctx, carol, gophers.ID)
		assert.ErrorIs(t, err, ErrTeamMismatch)
	})
}
