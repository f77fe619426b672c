package service

import (
	"context"
	"testing"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	dash := NewDashboardService(repository.NewDashboardRepo(env.db))

	stats, err := dash.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProducts)
	assert.Equal(t, int64(0), stats.BatchesByStage[string(model.StageCompleted)])

	shipped := env.receivedBatch(t, 10)
	env.receivedBatch(t, 4)
	env.createBatch(t, env.createProduct(t).ID, 1)
	_, err = env.shipments.CreateShipment(ctx, &CreateShipmentRequest{Batches: []uint{shipped}})
	require.NoError(t, err)

	stats, err = dash.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalProducts)
	assert.EqualValues(t, 2, stats.BatchesByStage[string(model.StageCompleted)])
	assert.EqualValues(t, 1, stats.BatchesByStage[string(model.StageInitialized)])
	assert.EqualValues(t, 2, stats.ReceivedBatches)
	assert.EqualValues(t, 1, stats.ShippedBatches)
	assert.EqualValues(t, 4, stats.StockOnHand)
	assert.EqualValues(t, 1, stats.ShipmentsByStatus[string(model.ShipmentPending)])
}
