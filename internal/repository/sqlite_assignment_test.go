package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stainprep/stainprep/internal/domain"
	"github.com/stainprep/stainprep/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPrimaries(t *testing.T, repo *SQLiteReagentRepo, names ...string) []*domain.Reagent {
	t.Helper()
	ctx := context.Background()
	out := make([]*domain.Reagent, 0, len(names))
	for _, name := range names {
		r := testutil.NewReagent(name, domain.ReagentPrimary)
		require.NoError(t, repo.Create(ctx, r))
		out = append(out, r)
	}
	return out
}

func TestSQLiteAssignmentRepo_ListOrdering(t *testing.T) {
	database := testutil.NewTestDB(t)
	reagents := NewSQLiteReagentRepo(database)
	repo := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	prims := seedPrimaries(t, reagents, "CD3", "CD8", "CD20")
	now := time.Now().UTC()

	// Insert out of order; listing must sort by plex then position.
	require.NoError(t, repo.Create(ctx, &domain.PlexAssignment{Plex: 2, ReagentID: prims[2].ID, Position: 1, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.PlexAssignment{Plex: 1, ReagentID: prims[1].ID, Position: 2, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.PlexAssignment{Plex: 1, ReagentID: prims[0].ID, Position: 1, CreatedAt: now}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, prims[0].ID, all[0].ReagentID)
	assert.Equal(t, prims[1].ID, all[1].ReagentID)
	assert.Equal(t, prims[2].ID, all[2].ReagentID)

	plex1, err := repo.ListByPlex(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, plex1, 2)
}

func TestSQLiteAssignmentRepo_DuplicateRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	reagents := NewSQLiteReagentRepo(database)
	repo := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	prims := seedPrimaries(t, reagents, "CD3")
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, &domain.PlexAssignment{Plex: 1, ReagentID: prims[0].ID, Position: 1, CreatedAt: now}))
	err := repo.Create(ctx, &domain.PlexAssignment{Plex: 1, ReagentID: prims[0].ID, Position: 2, CreatedAt: now})
	assert.Error(t, err, "one primary per plex at most once")
}

func TestSQLiteAssignmentRepo_ForeignKeyEnforced(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAssignmentRepo(database)

	err := repo.Create(context.Background(), &domain.PlexAssignment{
		Plex: 1, ReagentID: "no-such-reagent", Position: 1, CreatedAt: time.Now().UTC(),
	})
	assert.Error(t, err)
}

func TestSQLiteAssignmentRepo_Deletes(t *testing.T) {
	database := testutil.NewTestDB(t)
	reagents := NewSQLiteReagentRepo(database)
	repo := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	prims := seedPrimaries(t, reagents, "CD3", "CD8")
	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, &domain.PlexAssignment{Plex: 1, ReagentID: prims[0].ID, Position: 1, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.PlexAssignment{Plex: 2, ReagentID: prims[0].ID, Position: 1, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.PlexAssignment{Plex: 2, ReagentID: prims[1].ID, Position: 2, CreatedAt: now}))

	require.NoError(t, repo.DeleteByPlex(ctx, 2))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.DeleteByReagent(ctx, prims[0].ID))
	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
