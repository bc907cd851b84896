// Package plans seeds and serves the subscription tier registry. Tier limits
// are deployment constants, upserted on boot so code and storage always agree.
package plans

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/google/uuid"
)

// Canonical plan names.
const (
	PlanFree       = "Free"
	PlanPremium    = "Premium"
	PlanStaffBasic = "Staff Basic"
	PlanStaffPro   = "Staff Pro"
)

func int64Ptr(v int64) *int64 { return &v }

// seedPlans are the tier definitions upserted on every boot. PlanIDs are
// fixed so repeated boots hit the same rows.
var seedPlans = []ydb.Plan{
	{
		PlanID:              "plan-free",
		Name:                PlanFree,
		Price:               0,
		MaxVideos:           int64Ptr(5),
		MaxFileSizeBytes:    100 * 1024 * 1024,
		MaxDurationSeconds:  600,
		AllowedFormats:      "mp4",
		TotalStorageBytes:   500 * 1024 * 1024,
		CloudUploadAllowed:  false,
		PlaylistLoopAllowed: false,
	},
	{
		PlanID:              "plan-premium",
		Name:                PlanPremium,
		Price:               9.99,
		MaxVideos:           nil,
		MaxFileSizeBytes:    500 * 1024 * 1024,
		MaxDurationSeconds:  3600,
		AllowedFormats:      "mp4,mkv,webm",
		TotalStorageBytes:   50 * 1024 * 1024 * 1024,
		CloudUploadAllowed:  true,
		PlaylistLoopAllowed: true,
	},
	{
		PlanID:              "plan-staff-basic",
		Name:                PlanStaffBasic,
		Price:               19.99,
		MaxFileSizeBytes:    500 * 1024 * 1024,
		MaxDurationSeconds:  3600,
		AllowedFormats:      "mp4,mkv,webm",
		TotalStorageBytes:   5 * 1024 * 1024 * 1024,
		CloudUploadAllowed:  false,
		PlaylistLoopAllowed: true,
		MaxClients:          int64Ptr(2),
		MaxStorageGB:        int64Ptr(5),
		IsStaffPlan:         true,
	},
	{
		PlanID:              "plan-staff-pro",
		Name:                PlanStaffPro,
		Price:               49.99,
		MaxFileSizeBytes:    500 * 1024 * 1024,
		MaxDurationSeconds:  3600,
		AllowedFormats:      "mp4,mkv,webm",
		TotalStorageBytes:   50 * 1024 * 1024 * 1024,
		CloudUploadAllowed:  true,
		PlaylistLoopAllowed: true,
		MaxClients:          int64Ptr(10),
		MaxStorageGB:        int64Ptr(50),
		IsStaffPlan:         true,
	},
}

// Service serves plan lookups backed by the database.
type Service struct {
	db     ydb.Database
	logger *slog.Logger
}

func NewService(db ydb.Database, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Seed upserts the tier definitions. Existing rows keep their plan IDs, so
// accounts referencing them stay valid across redeploys.
func (s *Service) Seed(ctx context.Context) error {
	for i := range seedPlans {
		plan := seedPlans[i]
		if err := s.db.UpsertPlan(ctx, &plan); err != nil {
			return fmt.Errorf("failed to seed plan %s: %w", plan.Name, err)
		}
		s.logger.Info("plan seeded", "plan_id", plan.PlanID, "name", plan.Name)
	}
	return nil
}

func (s *Service) GetPlanByID(ctx context.Context, planID string) (*ydb.Plan, error) {
	return s.db.GetPlanByID(ctx, planID)
}

func (s *Service) GetPlanByName(ctx context.Context, name string) (*ydb.Plan, error) {
	return s.db.GetPlanByName(ctx, name)
}

func (s *Service) GetAllPlans(ctx context.Context) ([]*ydb.Plan, error) {
	return s.db.GetAllPlans(ctx)
}

// FreePlan returns the fallback tier every account without a subscription
// runs under.
func (s *Service) FreePlan(ctx context.Context) (*ydb.Plan, error) {
	return s.db.GetPlanByName(ctx, PlanFree)
}

// CreatePlan registers a new tier at runtime, for administrative use.
func (s *Service) CreatePlan(ctx context.Context, plan *ydb.Plan) error {
	if plan.PlanID == "" {
		plan.PlanID = uuid.New().String()
	}
	return s.db.UpsertPlan(ctx, plan)
}

// AllowedFormats splits a plan's format list into lowercase extensions.
func AllowedFormats(plan *ydb.Plan) []string {
	if plan.AllowedFormats == "" {
		return nil
	}
	parts := strings.Split(plan.AllowedFormats, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}

// FormatAllowed reports whether ext (with or without a leading dot, any
// case) is in the plan's allowed set.
func FormatAllowed(plan *ydb.Plan, ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range AllowedFormats(plan) {
		if allowed == ext {
			return true
		}
	}
	return false
}
