package plans

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/auralink/auralink-backend/internal/ydb/mocks"
)

func TestSeedUpsertsAllTiers(t *testing.T) {
	mockDB := mocks.NewDatabase(t)
	service := NewService(mockDB, slog.Default())

	seeded := make(map[string]*ydb.Plan)
	mockDB.On("UpsertPlan", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		plan := args.Get(1).(*ydb.Plan)
		seeded[plan.PlanID] = plan
	}).Return(nil).Times(4)

	require.NoError(t, service.Seed(context.Background()))

	free := seeded["plan-free"]
	require.NotNil(t, free)
	assert.Equal(t, int64(100*1024*1024), free.MaxFileSizeBytes)
	assert.Equal(t, int64(500*1024*1024), free.TotalStorageBytes)
	require.NotNil(t, free.MaxVideos)
	assert.Equal(t, int64(5), *free.MaxVideos)
	assert.False(t, free.CloudUploadAllowed)

	premium := seeded["plan-premium"]
	require.NotNil(t, premium)
	assert.Nil(t, premium.MaxVideos)
	assert.True(t, premium.PlaylistLoopAllowed)

	staffBasic := seeded["plan-staff-basic"]
	require.NotNil(t, staffBasic)
	assert.True(t, staffBasic.IsStaffPlan)
	require.NotNil(t, staffBasic.MaxClients)
	assert.Equal(t, int64(2), *staffBasic.MaxClients)
}

func TestAllowedFormats(t *testing.T) {
	plan := &ydb.Plan{AllowedFormats: "mp4, MKV ,webm,"}
	assert.Equal(t, []string{"mp4", "mkv", "webm"}, AllowedFormats(plan))
	assert.Nil(t, AllowedFormats(&ydb.Plan{}))
}

func TestFormatAllowed(t *testing.T) {
	plan := &ydb.Plan{AllowedFormats: "mp4,mkv"}
	assert.True(t, FormatAllowed(plan, "mp4"))
	assert.True(t, FormatAllowed(plan, ".MP4"))
	assert.True(t, FormatAllowed(plan, "MKV"))
	assert.False(t, FormatAllowed(plan, "avi"))
	assert.False(t, FormatAllowed(plan, ""))
}
