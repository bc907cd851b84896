package quota

import (
	"testing"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func freePlan() *ydb.Plan {
	return &ydb.Plan{
		PlanID:             "plan-free",
		Name:               "Free",
		MaxVideos:          int64Ptr(5),
		MaxFileSizeBytes:   100 * 1024 * 1024,
		MaxDurationSeconds: 600,
		AllowedFormats:     "mp4",
		TotalStorageBytes:  500 * 1024 * 1024,
	}
}

func premiumPlan() *ydb.Plan {
	return &ydb.Plan{
		PlanID:             "plan-premium",
		Name:               "Premium",
		MaxVideos:          nil,
		MaxFileSizeBytes:   500 * 1024 * 1024,
		MaxDurationSeconds: 3600,
		AllowedFormats:     "mp4,mkv,webm",
		TotalStorageBytes:  50 * 1024 * 1024 * 1024,
		CloudUploadAllowed: true,
	}
}

func TestCanUploadAdmitsWithinLimits(t *testing.T) {
	usage := &ydb.VideoUsage{VideoCount: 2, TotalBytes: 150 * 1024 * 1024}

	err := CanUpload(freePlan(), usage, UploadRequest{
		FileSizeBytes: 50 * 1024 * 1024,
		Format:        "mp4",
	})

	assert.NoError(t, err)
}

func TestCanUploadRejectsMissingPlan(t *testing.T) {
	err := CanUpload(nil, &ydb.VideoUsage{}, UploadRequest{FileSizeBytes: 1, Format: "mp4"})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindPlanLimitExceeded))
}

func TestCanUploadRejectsDisallowedFormat(t *testing.T) {
	for _, plan := range []*ydb.Plan{freePlan(), premiumPlan()} {
		err := CanUpload(plan, &ydb.VideoUsage{}, UploadRequest{
			FileSizeBytes: 1024,
			Format:        ".avi",
		})

		require.Error(t, err, "plan %s must reject avi", plan.Name)
		assert.True(t, apperrors.Is(err, apperrors.KindFileValidation))
		assert.Contains(t, err.Error(), "avi")
	}
}

func TestCanUploadFormatIsCaseInsensitive(t *testing.T) {
	err := CanUpload(freePlan(), &ydb.VideoUsage{}, UploadRequest{
		FileSizeBytes: 1024,
		Format:        "MP4",
	})

	assert.NoError(t, err)
}

func TestCanUploadRejectsOversizedFile(t *testing.T) {
	err := CanUpload(freePlan(), &ydb.VideoUsage{}, UploadRequest{
		FileSizeBytes: 101 * 1024 * 1024,
		Format:        "mp4",
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindFileValidation))
	assert.Contains(t, err.Error(), "101.0MB")
	assert.Contains(t, err.Error(), "100.0MB")
}

func TestCanUploadRejectsAtVideoCountCeiling(t *testing.T) {
	usage := &ydb.VideoUsage{VideoCount: 5, TotalBytes: 10 * 1024 * 1024}

	err := CanUpload(freePlan(), usage, UploadRequest{
		FileSizeBytes: 1024,
		Format:        "mp4",
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindPlanLimitExceeded))
	assert.Contains(t, err.Error(), "video limit reached")
}

func TestCanUploadUnlimitedVideosOnPremium(t *testing.T) {
	usage := &ydb.VideoUsage{VideoCount: 1000, TotalBytes: 0}

	err := CanUpload(premiumPlan(), usage, UploadRequest{
		FileSizeBytes: 1024,
		Format:        "mkv",
	})

	assert.NoError(t, err)
}

// Five 100MB uploads exactly fill the free tier: the count ceiling and the
// storage pool run out at the same time, and the count check fires first.
func TestCanUploadFreeTierFillsAtFiveFullSizeVideos(t *testing.T) {
	plan := freePlan()
	usage := &ydb.VideoUsage{}
	req := UploadRequest{FileSizeBytes: 100 * 1024 * 1024, Format: "mp4"}

	for i := 0; i < 5; i++ {
		require.NoError(t, CanUpload(plan, usage, req), "upload %d must be admitted", i+1)
		usage.VideoCount++
		usage.TotalBytes += req.FileSizeBytes
	}

	err := CanUpload(plan, usage, req)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindPlanLimitExceeded))
}

func TestCanUploadRejectsWhenStoragePoolWouldOverflow(t *testing.T) {
	usage := &ydb.VideoUsage{VideoCount: 4, TotalBytes: 450 * 1024 * 1024}

	err := CanUpload(freePlan(), usage, UploadRequest{
		FileSizeBytes: 60 * 1024 * 1024,
		Format:        "mp4",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Storage quota exceeded")
}

func TestCheckDuration(t *testing.T) {
	assert.NoError(t, CheckDuration(freePlan(), 600))

	err := CheckDuration(freePlan(), 601)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindPlanLimitExceeded))
}

func TestCanUploadStaffEnforcesProfileAllowance(t *testing.T) {
	profile := &ydb.StaffProfile{MaxClients: 2, MaxStorageGB: 5}
	usage := &ydb.VideoUsage{VideoCount: 1, TotalBytes: 5 * 1024 * 1024 * 1024}

	err := CanUploadStaff(premiumPlan(), profile, usage, UploadRequest{
		FileSizeBytes: 1024,
		Format:        "mp4",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "staff allowance")
}

func TestCanAddClientFailsClosedAtCeiling(t *testing.T) {
	profile := &ydb.StaffProfile{MaxClients: 2, MaxStorageGB: 5}

	assert.NoError(t, CanAddClient(profile, 0))
	assert.NoError(t, CanAddClient(profile, 1))

	err := CanAddClient(profile, 2)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindPlanLimitExceeded))
}

func TestCloudAllowed(t *testing.T) {
	assert.False(t, CloudAllowed(nil))
	assert.False(t, CloudAllowed(freePlan()))
	assert.True(t, CloudAllowed(premiumPlan()))
}
