package ydb

import (
	"time"
)

// Account is a platform identity. Kind is the actor variant; Elevated marks
// administrative privilege independently of the kind.
type Account struct {
	AccountID    string     `db:"account_id"`
	Username     string     `db:"username"`
	MobileNumber *string    `db:"mobile_number"`
	Email        *string    `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Kind         string     `db:"kind"`
	Elevated     bool       `db:"elevated"`
	PlanID       *string    `db:"plan_id"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// Plan is immutable reference data seeded at deploy time. MaxVideos of nil
// means unlimited. AllowedFormats is a comma-separated lowercase list.
type Plan struct {
	PlanID              string    `db:"plan_id"`
	Name                string    `db:"name"`
	Price               float64   `db:"price"`
	MaxVideos           *int64    `db:"max_videos"`
	MaxFileSizeBytes    int64     `db:"max_file_size_bytes"`
	MaxDurationSeconds  int64     `db:"max_duration_seconds"`
	AllowedFormats      string    `db:"allowed_formats"`
	TotalStorageBytes   int64     `db:"total_storage_bytes"`
	CloudUploadAllowed  bool      `db:"cloud_upload_allowed"`
	PlaylistLoopAllowed bool      `db:"playlist_loop_allowed"`
	MaxClients          *int64    `db:"max_clients"`
	MaxStorageGB        *int64    `db:"max_storage_gb"`
	IsStaffPlan         bool      `db:"is_staff_plan"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// Subscription statuses.
const (
	SubscriptionActive        = "ACTIVE"
	SubscriptionInGracePeriod = "IN_GRACE_PERIOD"
	SubscriptionExpired       = "EXPIRED"
	SubscriptionCancelled     = "CANCELLED"
)

// Subscription is one-to-one with an Account.
type Subscription struct {
	SubscriptionID  string    `db:"subscription_id"`
	AccountID       string    `db:"account_id"`
	PlanID          string    `db:"plan_id"`
	Status          string    `db:"status"`
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	GracePeriodDays int32     `db:"grace_period_days"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Video storage backends.
const (
	StorageLocal = "LOCAL"
	StorageCloud = "CLOUD"
)

// Video is owned by exactly one Account. Soft-deleted by IsActive=false.
type Video struct {
	VideoID         string     `db:"video_id"`
	OwnerID         string     `db:"owner_id"`
	Title           string     `db:"title"`
	StorageType     string     `db:"storage_type"`
	FilePath        string     `db:"file_path"`
	CloudURL        *string    `db:"cloud_url"`
	FileSizeBytes   int64      `db:"file_size_bytes"`
	DurationSeconds int32      `db:"duration_seconds"`
	Format          string     `db:"format"`
	Width           *int32     `db:"width"`
	Height          *int32     `db:"height"`
	Codec           *string    `db:"codec"`
	Rotation        int32      `db:"rotation"`
	IsActive        bool       `db:"is_active"`
	IsGlobal        bool       `db:"is_global"`
	UploadedByAdmin bool       `db:"uploaded_by_admin"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// StaffProfile holds the plan-derived limits for a staff tenant.
type StaffProfile struct {
	AccountID    string    `db:"account_id"`
	MaxClients   int32     `db:"max_clients"`
	MaxStorageGB int32     `db:"max_storage_gb"`
	CanUseCloud  bool      `db:"can_use_cloud"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// AccessCode is a one-time pairing token owned by a staff tenant. Once used
// it is permanently bound to one client account until staff deactivation.
type AccessCode struct {
	CodeID      string     `db:"code_id"`
	Code        string     `db:"code"`
	StaffID     string     `db:"staff_id"`
	ClientID    *string    `db:"client_id"`
	IsActive    bool       `db:"is_active"`
	IsUsed      bool       `db:"is_used"`
	CreatedAt   time.Time  `db:"created_at"`
	ActivatedAt *time.Time `db:"activated_at"`
}

// ClientAccount is a playback device bound to a staff tenant.
type ClientAccount struct {
	ClientID         string     `db:"client_id"`
	AccountID        string     `db:"account_id"`
	StaffID          string     `db:"staff_id"`
	AccessCodeID     *string    `db:"access_code_id"`
	DeviceName       string     `db:"device_name"`
	DeviceIdentifier string     `db:"device_identifier"`
	IsActive         bool       `db:"is_active"`
	IsOnline         bool       `db:"is_online"`
	LastSeen         *time.Time `db:"last_seen"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// StaffVideoAssignment maps a staff-owned video to one client, or globally
// to all of the staff's clients when AssignedTo is nil and IsGlobalForStaff
// is set. Global and specific targeting are mutually exclusive per row.
type StaffVideoAssignment struct {
	AssignmentID     string    `db:"assignment_id"`
	VideoID          string    `db:"video_id"`
	StaffID          string    `db:"staff_id"`
	AssignedTo       *string   `db:"assigned_to"`
	IsGlobalForStaff bool      `db:"is_global_for_staff"`
	PlayOrder        int32     `db:"play_order"`
	LoopEnabled      bool      `db:"loop_enabled"`
	CreatedAt        time.Time `db:"created_at"`
}

// PlaylistEntry is an assignment joined with its video, ready for playlist
// assembly.
type PlaylistEntry struct {
	Video       *Video
	PlayOrder   int32
	LoopEnabled bool
	AssignedAt  time.Time
}

// Deletion request statuses.
const (
	DeletionPending  = "PENDING"
	DeletionApproved = "APPROVED"
	DeletionRejected = "REJECTED"
)

// VideoDeletionRequest tracks a request to remove a protected video.
type VideoDeletionRequest struct {
	RequestID   string     `db:"request_id"`
	VideoID     string     `db:"video_id"`
	RequestedBy string     `db:"requested_by"`
	Status      string     `db:"status"`
	Reason      string     `db:"reason"`
	AdminNotes  string     `db:"admin_notes"`
	ResolvedBy  *string    `db:"resolved_by"`
	RequestedAt time.Time  `db:"requested_at"`
	ResolvedAt  *time.Time `db:"resolved_at"`
}

// AdminActionLog is an append-only audit record of an administrative
// mutation.
type AdminActionLog struct {
	LogID       string    `db:"log_id"`
	AdminID     *string   `db:"admin_id"`
	ActionType  string    `db:"action_type"`
	TargetModel string    `db:"target_model"`
	TargetID    string    `db:"target_id"`
	Description string    `db:"description"`
	IPAddress   *string   `db:"ip_address"`
	Timestamp   time.Time `db:"timestamp"`
}

// VideoUsage is the active-video aggregate for one owner.
type VideoUsage struct {
	VideoCount int64
	TotalBytes int64
}

// AuditFilter describes query options for reading audit entries.
type AuditFilter struct {
	AdminID    string
	ActionType string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
