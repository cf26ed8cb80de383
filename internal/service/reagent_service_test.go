package service

import (
	"context"
	"testing"

	"github.com/stainprep/stainprep/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReagentService_Add(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	r := &domain.Reagent{
		Name:             "  CD8 clone C8/144B  ",
		Type:             domain.ReagentPrimary,
		InitialStockUL:   300,
		VolumePerSlideUL: 3,
	}
	require.NoError(t, env.Reagents.Add(ctx, r))
	assert.NotEmpty(t, r.ID, "UUID should be generated")

	fetched, err := env.Reagents.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "CD8 clone C8/144B", fetched.Name, "name should be trimmed")
}

func TestReagentService_Add_Invalid(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	err := env.Reagents.Add(ctx, &domain.Reagent{
		Name: "Bad", Type: domain.ReagentOpal, VolumePerSlideUL: -1,
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestReagentService_Update_DemotionDropsAssignments(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	r := &domain.Reagent{Name: "CD3", Type: domain.ReagentPrimary, VolumePerSlideUL: 2}
	require.NoError(t, env.Reagents.Add(ctx, r))
	require.NoError(t, env.Worksheet.AssignPlex(ctx, 1, []string{r.ID}))

	// Reclassify as secondary: its plex assignment must go away too.
	r.Type = domain.ReagentSecondary
	require.NoError(t, env.Reagents.Update(ctx, r))

	assignments, err := env.Worksheet.Assignments(ctx)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestReagentService_Remove(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	r := &domain.Reagent{Name: "DAPI", Type: domain.ReagentDAPI, VolumePerSlideUL: 1}
	require.NoError(t, env.Reagents.Add(ctx, r))
	require.NoError(t, env.Reagents.Remove(ctx, r.ID))

	_, err := env.Reagents.GetByID(ctx, r.ID)
	assert.Error(t, err)
}
