//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/juliabase/juliabase/internal/infrastructure/persistence/models"
	"github.com/juliabase/juliabase/internal/pkg/config"
)

func createTestDeposition(t *testing.T, ctx *TestContext, number string, operatorID, sampleID string) *processes.Deposition {
	t.Helper()

	deposition := &processes.Deposition{
		ID:         uuid.NewString(),
		Number:     number,
		OperatorID: operatorID,
		Timestamp:  time.Now().UTC(),
		SampleIDs:  []string{sampleID},
		Layers: []processes.Layer{
			{Number: 1, Thickness: 100, Temperature: 200, Power: 30, Duration: 60, GasFlows: map[string]float64{"SiH4": 2.5}},
			{Number: 2, Thickness: 50, Temperature: 180, Power: 20, Duration: 30},
		},
	}
	require.NoError(t, ctx.DepositionRepo.Create(context.Background(), deposition))
	return deposition
}

func TestDepositionSqliteRepository_CreateAndGetByNumber(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, ctx, "operator")
	sample := CreateTestSample(t, ctx, "14-TB-1", user.ID)
	deposition := createTestDeposition(t, ctx, "26D-001", user.ID, sample.ID)

	// The process row is written alongside the deposition row.
	var processModel models.ProcessModel
	require.NoError(t, ctx.DB.First(&processModel, "id = ?", deposition.ID).Error)
	assert.Equal(t, processes.KindDeposition, processModel.Kind)

	fetched, err := ctx.DepositionRepo.GetByNumber(context.Background(), "26D-001")
	require.NoError(t, err)
	assert.Equal(t, deposition.ID, fetched.ID)
	require.Len(t, fetched.Layers, 2)
	assert.Equal(t, 2.5, fetched.Layers[0].GasFlows["SiH4"])
	assert.Equal(t, []string{sample.ID}, fetched.SampleIDs)
}

func TestDepositionSqliteRepository_Create_DuplicateNumber(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, ctx, "operator")
	sample := CreateTestSample(t, ctx, "14-TB-1", user.ID)
	createTestDeposition(t, ctx, "26D-001", user.ID, sample.ID)

	duplicate := &processes.Deposition{
		ID:         uuid.NewString(),
		Number:     "26D-001",
		OperatorID: user.ID,
		Timestamp:  time.Now().UTC(),
		SampleIDs:  []string{sample.ID},
	}
	err := ctx.DepositionRepo.Create(context.Background(), duplicate)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestDepositionSqliteRepository_UpdateByID_ReplacesLayers(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, ctx, "operator")
	sample := CreateTestSample(t, ctx, "14-TB-1", user.ID)
	deposition := createTestDeposition(t, ctx, "26D-001", user.ID, sample.ID)

	deposition.Layers = []processes.Layer{
		{Number: 1, Thickness: 75},
	}
	deposition.Comments = "trimmed to one layer"
	require.NoError(t, ctx.DepositionRepo.UpdateByID(context.Background(), deposition))

	fetched, err := ctx.DepositionRepo.GetByNumber(context.Background(), "26D-001")
	require.NoError(t, err)
	require.Len(t, fetched.Layers, 1)
	assert.Equal(t, 75.0, fetched.Layers[0].Thickness)
	assert.Equal(t, "trimmed to one layer", fetched.Comments)

	var layerCount int64
	require.NoError(t, ctx.DB.Model(&models.LayerModel{}).Count(&layerCount).Error)
	assert.EqualValues(t, 1, layerCount)
}

func TestDepositionSqliteRepository_NextSerial(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, ctx, "operator")
	sample := CreateTestSample(t, ctx, "14-TB-1", user.ID)

	serial, err := ctx.DepositionRepo.NextSerial(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, serial)

	createTestDeposition(t, ctx, processes.DepositionNumber(2026, serial), user.ID, sample.ID)

	serial, err = ctx.DepositionRepo.NextSerial(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, serial)

	// Counters are per year.
	serial, err = ctx.DepositionRepo.NextSerial(context.Background(), 2027)
	require.NoError(t, err)
	assert.Equal(t, 1, serial)
}

func TestDepositionSqliteRepository_List_BySampleAndYear(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, ctx, "operator")
	first := CreateTestSample(t, ctx, "14-TB-1", user.ID)
	second := CreateTestSample(t, ctx, "14-TB-2", user.ID)

	createTestDeposition(t, ctx, "25D-001", user.ID, first.ID)
	createTestDeposition(t, ctx, "26D-001", user.ID, first.ID)
	createTestDeposition(t, ctx, "26D-002", user.ID, second.ID)

	t.Run("by sample", func(t *testing.T) {
		query := processes.NewDepositionQuery()
		query.SampleID = second.ID
		listed, err := ctx.DepositionRepo.List(context.Background(), query)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "26D-002", listed[0].Number)
	})

	t.Run("by year", func(t *testing.T) {
		query := processes.NewDepositionQuery()
		query.Year = 2026
		listed, err := ctx.DepositionRepo.List(context.Background(), query)
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})
}
