package video

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/audit"
	"github.com/auralink/auralink-backend/internal/identity"
	"github.com/auralink/auralink-backend/internal/queue"
	storagemocks "github.com/auralink/auralink-backend/internal/storage/mocks"
	"github.com/auralink/auralink-backend/internal/ydb"
	ydbmocks "github.com/auralink/auralink-backend/internal/ydb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	jobs []queue.Job
	err  error
}

func (f *fakeQueue) Enqueue(ctx context.Context, job queue.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func setupVideoService(t *testing.T) (*Service, *ydbmocks.Database, *storagemocks.Provider, *fakeQueue) {
	mockDB := ydbmocks.NewDatabase(t)
	mockStorage := storagemocks.NewProvider(t)
	q := &fakeQueue{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := identity.NewRegistry()
	audits := audit.NewService(mockDB, registry, logger)

	service := NewService(mockDB, mockStorage, nil, q, registry, audits, "https://api.test.com", logger)
	return service, mockDB, mockStorage, q
}

func int64Ptr(v int64) *int64 { return &v }

func freeAccount() *ydb.Account {
	planID := "plan-free"
	return &ydb.Account{
		AccountID: "acct-1", Username: "alice",
		Kind: string(identity.KindRegularUser), PlanID: &planID, IsActive: true,
	}
}

func freePlan() *ydb.Plan {
	return &ydb.Plan{
		PlanID: "plan-free", Name: "Free",
		MaxVideos:         int64Ptr(5),
		MaxFileSizeBytes:  100 * 1024 * 1024,
		AllowedFormats:    "mp4",
		TotalStorageBytes: 500 * 1024 * 1024,
	}
}

func TestUploadRejectedOverStorageQuotaCreatesNothing(t *testing.T) {
	service, mockDB, _, q := setupVideoService(t)
	ctx := context.Background()

	mockDB.On("GetPlanByID", ctx, "plan-free").Return(freePlan(), nil)
	mockDB.On("GetVideoUsage", ctx, "acct-1").Return(&ydb.VideoUsage{
		VideoCount: 4, TotalBytes: 460 * 1024 * 1024,
	}, nil)

	video, err := service.Upload(ctx, freeAccount(), UploadRequest{
		Title: "too big", Filename: "clip.mp4",
		Size: 60 * 1024 * 1024, Body: strings.NewReader("data"),
	})

	require.Error(t, err)
	assert.Nil(t, video)
	assert.True(t, apperrors.Is(err, apperrors.KindPlanLimitExceeded))
	assert.Empty(t, q.jobs)
	mockDB.AssertNotCalled(t, "CreateVideo", mock.Anything, mock.Anything)
}

func TestUploadRejectsDisallowedFormatBeforeStorage(t *testing.T) {
	service, mockDB, mockStorage, _ := setupVideoService(t)
	ctx := context.Background()

	mockDB.On("GetPlanByID", ctx, "plan-free").Return(freePlan(), nil)
	mockDB.On("GetVideoUsage", ctx, "acct-1").Return(&ydb.VideoUsage{}, nil)

	_, err := service.Upload(ctx, freeAccount(), UploadRequest{
		Title: "wrong container", Filename: "clip.avi",
		Size: 1024, Body: strings.NewReader("data"),
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindFileValidation))
	mockStorage.AssertNotCalled(t, "Save",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadSuccessEnqueuesProbe(t *testing.T) {
	service, mockDB, mockStorage, q := setupVideoService(t)
	ctx := context.Background()

	mockDB.On("GetPlanByID", ctx, "plan-free").Return(freePlan(), nil)
	mockDB.On("GetVideoUsage", ctx, "acct-1").Return(&ydb.VideoUsage{}, nil)
	mockStorage.On("Save", ctx, mock.AnythingOfType("string"), mock.Anything,
		int64(1024), "video/mp4").Return("stored-key", nil)
	mockDB.On("CreateVideo", ctx, mock.MatchedBy(func(v *ydb.Video) bool {
		return v.OwnerID == "acct-1" && v.Format == "mp4" && v.IsActive && !v.IsGlobal
	})).Return(nil)

	video, err := service.Upload(ctx, freeAccount(), UploadRequest{
		Title: "demo", Filename: "Clip.MP4",
		Size: 1024, Body: strings.NewReader("data"),
	})

	require.NoError(t, err)
	require.Len(t, q.jobs, 1)
	assert.Equal(t, queue.JobProbeVideo, q.jobs[0].Kind)
	assert.Equal(t, video.VideoID, q.jobs[0].VideoID)
}

// A failed enqueue rolls back both the row and the stored file.
func TestUploadEnqueueFailureRollsBack(t *testing.T) {
	service, mockDB, mockStorage, q := setupVideoService(t)
	ctx := context.Background()
	q.err = errors.New("redis down")

	mockDB.On("GetPlanByID", ctx, "plan-free").Return(freePlan(), nil)
	mockDB.On("GetVideoUsage", ctx, "acct-1").Return(&ydb.VideoUsage{}, nil)
	mockStorage.On("Save", ctx, mock.AnythingOfType("string"), mock.Anything,
		int64(1024), "video/mp4").Return("stored-key", nil)
	mockDB.On("CreateVideo", ctx, mock.Anything).Return(nil)
	mockDB.On("DeleteVideoRow", ctx, mock.AnythingOfType("string")).Return(nil)
	mockStorage.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

	video, err := service.Upload(ctx, freeAccount(), UploadRequest{
		Title: "demo", Filename: "clip.mp4",
		Size: 1024, Body: strings.NewReader("data"),
	})

	require.Error(t, err)
	assert.Nil(t, video)
	assert.True(t, apperrors.Is(err, apperrors.KindExternalService))
	mockDB.AssertCalled(t, "DeleteVideoRow", ctx, mock.AnythingOfType("string"))
	mockStorage.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("string"))
}

func TestUploadGlobalRequiresAdmin(t *testing.T) {
	service, mockDB, _, _ := setupVideoService(t)
	ctx := context.Background()

	mockDB.On("GetPlanByID", ctx, "plan-free").Return(freePlan(), nil)
	mockDB.On("GetVideoUsage", ctx, "acct-1").Return(&ydb.VideoUsage{}, nil)

	_, err := service.Upload(ctx, freeAccount(), UploadRequest{
		Title: "global", Filename: "clip.mp4",
		Size: 1024, Body: strings.NewReader("data"), Global: true,
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindOwnershipViolation))
}

func TestVisibleVideosAdminSeesEverything(t *testing.T) {
	service, mockDB, _, _ := setupVideoService(t)
	ctx := context.Background()

	all := []*ydb.Video{{VideoID: "v1"}, {VideoID: "v2", IsActive: false}}
	mockDB.On("ListAllVideos", ctx).Return(all, nil)

	admin := &ydb.Account{AccountID: "admin", Kind: string(identity.KindAdministrator), Elevated: true}
	videos, err := service.VisibleVideos(ctx, admin)

	require.NoError(t, err)
	assert.Len(t, videos, 2)
}

func TestVisibleVideosOwnerSeesOwnAndGlobal(t *testing.T) {
	service, mockDB, _, _ := setupVideoService(t)
	ctx := context.Background()

	mockDB.On("ListOwnedOrGlobalVideos", ctx, "acct-1").Return([]*ydb.Video{
		{VideoID: "own"}, {VideoID: "global", IsGlobal: true},
	}, nil)

	videos, err := service.VisibleVideos(ctx, freeAccount())

	require.NoError(t, err)
	assert.Len(t, videos, 2)
}

func TestClientPlaylistMergesAndOrders(t *testing.T) {
	service, mockDB, _, _ := setupVideoService(t)
	ctx := context.Background()

	client := &ydb.ClientAccount{
		ClientID: "client-1", StaffID: "staff-1", IsActive: true,
	}
	base := time.Now()
	shared := &ydb.Video{VideoID: "v-shared", CreatedAt: base}
	mockDB.On("ListSpecificPlaylist", ctx, "client-1").Return([]*ydb.PlaylistEntry{
		{Video: shared, PlayOrder: 3},
		{Video: &ydb.Video{VideoID: "v-spec", CreatedAt: base.Add(time.Minute)}, PlayOrder: 1},
	}, nil)
	mockDB.On("ListGlobalPlaylist", ctx, "staff-1").Return([]*ydb.PlaylistEntry{
		{Video: shared, PlayOrder: 9}, // duplicate, specific wins
		{Video: &ydb.Video{VideoID: "v-glob", CreatedAt: base.Add(2 * time.Minute)}, PlayOrder: 1},
	}, nil)

	entries, err := service.ClientPlaylist(ctx, client)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "v-spec", entries[0].Video.VideoID)
	assert.Equal(t, "v-glob", entries[1].Video.VideoID)
	assert.Equal(t, "v-shared", entries[2].Video.VideoID)
}

func TestClientPlaylistRejectsDeactivatedDevice(t *testing.T) {
	service, _, _, _ := setupVideoService(t)

	_, err := service.ClientPlaylist(context.Background(), &ydb.ClientAccount{
		ClientID: "client-1", IsActive: false,
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindOwnershipViolation))
}

func TestCanDeleteMatrix(t *testing.T) {
	service, _, _, _ := setupVideoService(t)

	adminAcct := &ydb.Account{AccountID: "admin", Kind: string(identity.KindAdministrator), Elevated: true}
	ownerAcct := &ydb.Account{AccountID: "owner", Kind: string(identity.KindRegularUser)}

	plain := &ydb.Video{VideoID: "v1", OwnerID: "owner"}
	global := &ydb.Video{VideoID: "v2", OwnerID: "owner", IsGlobal: true}
	adminUploaded := &ydb.Video{VideoID: "v3", OwnerID: "owner", UploadedByAdmin: true}
	foreign := &ydb.Video{VideoID: "v4", OwnerID: "other"}

	assert.True(t, service.CanDelete(plain, ownerAcct))
	assert.False(t, service.CanDelete(global, ownerAcct))
	assert.False(t, service.CanDelete(adminUploaded, ownerAcct))
	assert.False(t, service.CanDelete(foreign, ownerAcct))

	for _, v := range []*ydb.Video{plain, global, adminUploaded, foreign} {
		assert.True(t, service.CanDelete(v, adminAcct))
	}
}

// Protected videos are routed to the request workflow, not deleted.
func TestDeleteProtectedVideoRoutesToRequestWorkflow(t *testing.T) {
	service, mockDB, _, _ := setupVideoService(t)
	ctx := context.Background()

	mockDB.On("GetVideo", ctx, "v-global").Return(&ydb.Video{
		VideoID: "v-global", OwnerID: "acct-1", IsGlobal: true, IsActive: true,
	}, nil)

	err := service.Delete(ctx, freeAccount(), "v-global")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deletion request")
	mockDB.AssertNotCalled(t, "SoftDeleteVideo", mock.Anything, mock.Anything)
}

func TestDeleteOwnPlainVideo(t *testing.T) {
	service, mockDB, _, _ := setupVideoService(t)
	ctx := context.Background()

	mockDB.On("GetVideo", ctx, "v1").Return(&ydb.Video{
		VideoID: "v1", OwnerID: "acct-1", Title: "mine", IsActive: true,
	}, nil)
	mockDB.On("SoftDeleteVideo", ctx, "v1").Return(nil)
	mockDB.On("CreateAdminActionLog", ctx, mock.MatchedBy(func(e *ydb.AdminActionLog) bool {
		return e.ActionType == audit.ActionVideoDeleted && e.TargetID == "v1"
	})).Return(nil)

	require.NoError(t, service.Delete(ctx, freeAccount(), "v1"))
	mockDB.AssertExpectations(t)
}

func TestSetRotationValidatesAngle(t *testing.T) {
	service, mockDB, _, _ := setupVideoService(t)
	ctx := context.Background()

	mockDB.On("GetVideo", ctx, "v1").Return(&ydb.Video{
		VideoID: "v1", OwnerID: "acct-1",
	}, nil)

	err := service.SetRotation(ctx, freeAccount(), "v1", 45)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindFileValidation))
}

func TestAssignRejectsForeignClient(t *testing.T) {
	service, mockDB, _, _ := setupVideoService(t)
	ctx := context.Background()

	staff := &ydb.Account{AccountID: "staff-1", Kind: string(identity.KindStaffTenant)}
	mockDB.On("GetVideo", ctx, "v1").Return(&ydb.Video{
		VideoID: "v1", OwnerID: "staff-1", IsActive: true,
	}, nil)
	mockDB.On("GetClientAccountByID", ctx, "client-x").Return(&ydb.ClientAccount{
		ClientID: "client-x", StaffID: "staff-2",
	}, nil)

	_, err := service.Assign(ctx, staff, "v1", "client-x", 1, false)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindOwnershipViolation))
}

func TestAssignLoopRequiresPlanFeature(t *testing.T) {
	service, mockDB, _, _ := setupVideoService(t)
	ctx := context.Background()

	planID := "plan-staff-basic"
	staff := &ydb.Account{AccountID: "staff-1", Kind: string(identity.KindStaffTenant), PlanID: &planID}
	mockDB.On("GetVideo", ctx, "v1").Return(&ydb.Video{
		VideoID: "v1", OwnerID: "staff-1", IsActive: true,
	}, nil)
	mockDB.On("GetPlanByID", ctx, "plan-staff-basic").Return(&ydb.Plan{
		PlanID: "plan-staff-basic", Name: "Staff Basic", PlaylistLoopAllowed: false,
	}, nil)

	_, err := service.Assign(ctx, staff, "v1", "", 1, true)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindPlanLimitExceeded))
}

func TestAssignGlobalForStaff(t *testing.T) {
	service, mockDB, _, _ := setupVideoService(t)
	ctx := context.Background()

	staff := &ydb.Account{AccountID: "staff-1", Kind: string(identity.KindStaffTenant)}
	mockDB.On("GetVideo", ctx, "v1").Return(&ydb.Video{
		VideoID: "v1", OwnerID: "staff-1", IsActive: true,
	}, nil)
	mockDB.On("GetAssignment", ctx, "v1", (*string)(nil)).
		Return(nil, apperrors.NotFound("assignment not found"))
	mockDB.On("CreateAssignment", ctx, mock.MatchedBy(func(a *ydb.StaffVideoAssignment) bool {
		return a.IsGlobalForStaff && a.AssignedTo == nil && a.StaffID == "staff-1"
	})).Return(nil)
	mockDB.On("CreateAdminActionLog", ctx, mock.Anything).Return(nil)

	assignment, err := service.Assign(ctx, staff, "v1", "", 2, false)

	require.NoError(t, err)
	assert.True(t, assignment.IsGlobalForStaff)
	assert.Equal(t, int32(2), assignment.PlayOrder)
}
