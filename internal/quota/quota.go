// Package quota evaluates upload admission against a tier's limits. All
// checks are pure so they can run before any byte touches storage.
package quota

import (
	"fmt"
	"strings"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/plans"
	"github.com/auralink/auralink-backend/internal/ydb"
)

// UploadRequest carries the facts about one candidate upload.
type UploadRequest struct {
	FileSizeBytes int64
	Format        string // extension, with or without leading dot
}

func megabytes(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024)
}

// CanUpload checks one upload against the plan and the owner's current
// usage. Checks run in a fixed order so the caller always gets the most
// fundamental violation first. A nil error means the upload is admitted.
func CanUpload(plan *ydb.Plan, usage *ydb.VideoUsage, req UploadRequest) error {
	if plan == nil {
		return apperrors.PlanLimitExceeded("no plan assigned to account")
	}

	ext := strings.ToLower(strings.TrimPrefix(req.Format, "."))
	if !plans.FormatAllowed(plan, ext) {
		return apperrors.FileValidation(fmt.Sprintf(
			"file format '%s' not allowed. Allowed formats: %s",
			ext, strings.Join(plans.AllowedFormats(plan), ", "),
		))
	}

	if req.FileSizeBytes > plan.MaxFileSizeBytes {
		return apperrors.FileValidation(
			"file size %.1fMB exceeds plan limit of %.1fMB",
			megabytes(req.FileSizeBytes), megabytes(plan.MaxFileSizeBytes),
		)
	}

	if plan.MaxVideos != nil && usage.VideoCount >= *plan.MaxVideos {
		return apperrors.PlanLimitExceeded(
			"video limit reached (%d of %d)", usage.VideoCount, *plan.MaxVideos,
		)
	}

	if usage.TotalBytes+req.FileSizeBytes > plan.TotalStorageBytes {
		return apperrors.PlanLimitExceeded(
			"Storage quota exceeded: %.1fMB used of %.1fMB",
			megabytes(usage.TotalBytes), megabytes(plan.TotalStorageBytes),
		)
	}

	return nil
}

// CheckDuration validates probed duration after upload. It runs separately
// from CanUpload because duration is only known once ffprobe has seen the
// file.
func CheckDuration(plan *ydb.Plan, durationSeconds int32) error {
	if plan.MaxDurationSeconds > 0 && int64(durationSeconds) > plan.MaxDurationSeconds {
		return apperrors.PlanLimitExceeded(
			"video duration %ds exceeds plan limit of %ds",
			durationSeconds, plan.MaxDurationSeconds,
		)
	}
	return nil
}

// CanUploadStaff checks a staff tenant's upload against the profile's
// storage allowance, which overrides the plan's generic storage pool.
func CanUploadStaff(plan *ydb.Plan, profile *ydb.StaffProfile, usage *ydb.VideoUsage, req UploadRequest) error {
	if err := CanUpload(plan, usage, req); err != nil {
		return err
	}
	limit := int64(profile.MaxStorageGB) * 1024 * 1024 * 1024
	if usage.TotalBytes+req.FileSizeBytes > limit {
		return apperrors.PlanLimitExceeded(
			"Storage quota exceeded: %.1fMB used of %dGB staff allowance",
			megabytes(usage.TotalBytes), profile.MaxStorageGB,
		)
	}
	return nil
}

// CanAddClient enforces the staff profile's device ceiling. activeCodes
// counts live access codes, issued or redeemed, since each one reserves a
// client slot.
func CanAddClient(profile *ydb.StaffProfile, activeCodes int64) error {
	if activeCodes >= int64(profile.MaxClients) {
		return apperrors.PlanLimitExceeded(
			"client limit reached (%d of %d)", activeCodes, profile.MaxClients,
		)
	}
	return nil
}

// CloudAllowed reports whether the plan admits cloud-backed storage.
func CloudAllowed(plan *ydb.Plan) bool {
	return plan != nil && plan.CloudUploadAllowed
}
