package problem

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/problemhub/server/internal/module/team"
)

type testEnv struct {
	*testing.T
	db    *gorm.DB
	svc   *Service
	teams *team.Service
	ctx   context.Context
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&team.UserRef{}, &team.Team{}, &team.TeamMember{},
		&Problem{}, &ProblemSet{},
	))

	teams := team.NewService(team.NewRepository(db), team.NewUserStore(db), nil, zap.NewNop())
	svc := NewService(NewRepository(db), teams, zap.NewNop())

	return &testEnv{T: t, db: db, svc: svc, teams: teams, ctx: context.Background()}
}

func (e *testEnv) user(name string) uuid.UUID {
	e.Helper()
	u := &team.UserRef{ID: uuid.New(), Email: name + "@example.com", Name: name}
	require.NoError(e, e.db.Create(u).Error)
	return u.ID
}

// userWithTeam creates a user leading their own fresh team.
func (e *testEnv) userWithTeam(name, teamName string) uuid.UUID {
	e.Helper()
	id := e.user(name)
	_, err := e.teams.CreateTeam(e.ctx, id, &team.CreateTeamRequest{Name: teamName})
	require.NoError(e, err)
	return id
}

func TestService_CreateProblem(t *testing.T) {
	e := setup(t)

	t.Run("requires a current team", func(t *testing.T) {
		loner := e.user("loner")
		_, err := e.svc.CreateProblem(e.ctx, loner, &CreateProblemRequest{Title: "Two Sum"})
		assert.ErrorIs(t, err, ErrNoTeamSelected)
	})

	t.Run("stamps the current team and defaults", func(t *testing.T) {
		alice := e.userWithTeam("alice", "Gophers")
		p, err := e.svc.CreateProblem(e.ctx, alice, &CreateProblemRequest{
			Title: "Two Sum",
			Tags:  []string{"array", "hash-table"},
		})
		require.NoError(t, err)
		assert.Equal(t, DifficultyMedium, p.Difficulty)
		assert.Equal(t, SourceCustom, p.Source)
		assert.Equal(t, alice, p.CreatedBy)

		current, err := e.teams.CurrentTeam(e.ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, current, p.TeamID)
	})
}

func TestService_ListProblems(t *testing.T) {
	e := setup(t)
	alice := e.userWithTeam("alice", "Gophers")
	bob := e.userWithTeam("bob", "Rustaceans")

	for _, title := range []string{"Two Sum", "Three Sum", "Binary Search"} {
		_, err := e.svc.CreateProblem(e.ctx, alice, &CreateProblemRequest{Title: title})
		require.NoError(t, err)
	}
	_, err := e.svc.CreateProblem(e.ctx, bob, &CreateProblemRequest{Title: "Ownership Sum"})
	require.NoError(t, err)

	t.Run("no team means empty list, not an error", func(t *testing.T) {
		loner := e.user("loner")
		problems, total, err := e.svc.ListProblems(e.ctx, loner, &ListProblemsRequest{})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, problems)
	})

	t.Run("only the current team's problems show", func(t *testing.T) {
		problems, total, err := e.svc.ListProblems(e.ctx, alice, &ListProblemsRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		for _, p := range problems {
			assert.NotEqual(t, "Ownership Sum", p.Title)
		}
	})

	t.Run("keyword search is case-insensitive", func(t *testing.T) {
		problems, total, err := e.svc.ListProblems(e.ctx, alice, &ListProblemsRequest{Keyword: "sum"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, problems, 2)
	})
}

func TestService_ProblemScoping(t *testing.T) {
	e := setup(t)
	alice := e.userWithTeam("alice", "Gophers")
	bob := e.userWithTeam("bob", "Rustaceans")

	p, err := e.svc.CreateProblem(e.ctx, alice, &CreateProblemRequest{Title: "Two Sum"})
	require.NoError(t, err)

	t.Run("get across teams is forbidden", func(t *testing.T) {
		_, err := e.svc.GetProblem(e.ctx, bob, p.ID)
		assert.ErrorIs(t, err, team.ErrTeamMismatch)
	})

	t.Run("update across teams is forbidden", func(t *testing.T) {
		title := "Stolen"
		_, err := e.svc.UpdateProblem(e.ctx, bob, p.ID, &UpdateProblemRequest{Title: &title})
		assert.ErrorIs(t, err, team.ErrTeamMismatch)
	})

	t.Run("delete across teams is forbidden", func(t *testing.T) {
		err := e.svc.DeleteProblem(e.ctx, bob, p.ID)
		assert.ErrorIs(t, err, team.ErrTeamMismatch)
	})

	t.Run("owner team member may update and delete", func(t *testing.T) {
		title := "Two Sum II"
		updated, err := e.svc.UpdateProblem(e.ctx, alice, p.ID, &UpdateProblemRequest{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Two Sum II", updated.Title)

		require.NoError(t, e.svc.DeleteProblem(e.ctx, alice, p.ID))
		_, err = e.svc.GetProblem(e.ctx, alice, p.ID)
		assert.ErrorIs(t, err, ErrProblemNotFound)
	})

	t.Run("unknown problem is not found", func(t *testing.T) {
		_, err := e.svc.GetProblem(e.ctx, alice, uuid.New())
		assert.ErrorIs(t, err, ErrProblemNotFound)
	})
}

func TestService_ProblemSets(t *testing.T) {
	e := setup(t)
	alice := e.userWithTeam("alice", "Gophers")
	bob := e.userWithTeam("bob", "Rustaceans")

	p1, err := e.svc.CreateProblem(e.ctx, alice, &CreateProblemRequest{Title: "Two Sum"})
	require.NoError(t, err)
	p2, err := e.svc.CreateProblem(e.ctx, alice, &CreateProblemRequest{Title: "Three Sum"})
	require.NoError(t, err)
	foreign, err := e.svc.CreateProblem(e.ctx, bob, &CreateProblemRequest{Title: "Ownership Sum"})
	require.NoError(t, err)

	t.Run("create attaches only same-team problems", func(t *testing.T) {
		set, err := e.svc.CreateSet(e.ctx, alice, &CreateSetRequest{
			Title:      "Week 1",
			ProblemIDs: []uuid.UUID{p1.ID, p2.ID, foreign.ID},
		})
		require.NoError(t, err)
		assert.Len(t, set.Problems, 2)
	})

	t.Run("requires a current team", func(t *testing.T) {
		loner := e.user("loner")
		_, err := e.svc.CreateSet(e.ctx, loner, &CreateSetRequest{Title: "Nope"})
		assert.ErrorIs(t, err, ErrNoTeamSelected)
	})

	t.Run("list is team-scoped", func(t *testing.T) {
		sets, total, err := e.svc.ListSets(e.ctx, bob, 20, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, sets)
	})

	t.Run("update replaces the problem list", func(t *testing.T) {
		set, err := e.svc.CreateSet(e.ctx, alice, &CreateSetRequest{
			Title:      "Week 2",
			ProblemIDs: []uuid.UUID{p1.ID},
		})
		require.NoError(t, err)

		ids := []uuid.UUID{p2.ID}
		updated, err := e.svc.UpdateSet(e.ctx, alice, set.ID, &UpdateSetRequest{ProblemIDs: &ids})
		require.NoError(t, err)
		require.Len(t, updated.Problems, 1)
		assert.Equal(t, p2.ID, updated.Problems[0].ID)
	})

	t.Run("cross-team access is forbidden", func(t *testing.T) {
		set, err := e.svc.CreateSet(e.ctx, alice, &CreateSetRequest{Title: "Week 3"})
		require.NoError(t, err)

		_, err = e.svc.GetSet(e.ctx, bob, set.ID)
		assert.ErrorIs(t, err, team.ErrTeamMismatch)

		err = e.svc.DeleteSet(e.ctx, bob, set.ID)
		assert.ErrorIs(t, err, team.ErrTeamMismatch)
	})
}
