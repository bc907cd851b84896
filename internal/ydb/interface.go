package ydb

import (
	"context"
	"time"
)

// Database defines the persistence contract for the platform. The *Tx
// methods apply several writes in one interactive transaction; either all
// commit or none do.
type Database interface {
	// Accounts
	CreateAccount(ctx context.Context, account *Account) error
	GetAccountByID(ctx context.Context, accountID string) (*Account, error)
	GetAccountByLogin(ctx context.Context, identifier string) (*Account, error)
	GetAccountByMobile(ctx context.Context, mobile string) (*Account, error)
	UpdateAccount(ctx context.Context, account *Account) error

	// Plans
	UpsertPlan(ctx context.Context, plan *Plan) error
	GetPlanByID(ctx context.Context, planID string) (*Plan, error)
	GetPlanByName(ctx context.Context, name string) (*Plan, error)
	GetAllPlans(ctx context.Context) ([]*Plan, error)

	// Subscriptions
	CreateSubscription(ctx context.Context, subscription *Subscription) error
	GetSubscriptionByAccount(ctx context.Context, accountID string) (*Subscription, error)
	UpdateSubscription(ctx context.Context, subscription *Subscription) error
	ListActiveSubscriptions(ctx context.Context) ([]*Subscription, error)
	// ExpireSubscriptionTx marks the subscription EXPIRED and reassigns the
	// account's plan in the same transaction.
	ExpireSubscriptionTx(ctx context.Context, subscriptionID, accountID, freePlanID string) error

	// Videos
	CreateVideo(ctx context.Context, video *Video) error
	GetVideo(ctx context.Context, videoID string) (*Video, error)
	UpdateVideo(ctx context.Context, video *Video) error
	SoftDeleteVideo(ctx context.Context, videoID string) error
	// DeleteVideoRow removes the row entirely; used only for upload
	// compensation and admin hard deletes of cloud assets.
	DeleteVideoRow(ctx context.Context, videoID string) error
	ListVideosByOwner(ctx context.Context, ownerID string) ([]*Video, error)
	ListOwnedOrGlobalVideos(ctx context.Context, ownerID string) ([]*Video, error)
	ListAllVideos(ctx context.Context) ([]*Video, error)
	GetVideoUsage(ctx context.Context, ownerID string) (*VideoUsage, error)
	UpdateVideoProbeResult(ctx context.Context, videoID string, durationSeconds int32, width, height *int32, codec *string) error

	// Staff profiles
	CreateStaffProfile(ctx context.Context, profile *StaffProfile) error
	GetStaffProfile(ctx context.Context, accountID string) (*StaffProfile, error)
	UpdateStaffProfile(ctx context.Context, profile *StaffProfile) error

	// Access codes
	CreateAccessCode(ctx context.Context, code *AccessCode) error
	GetAccessCodeByCode(ctx context.Context, code string) (*AccessCode, error)
	CountActiveCodesForStaff(ctx context.Context, staffID string) (int64, error)
	ListAccessCodesByStaff(ctx context.Context, staffID string) ([]*AccessCode, error)
	// RedeemAccessCodeTx promotes the account to a client device, creates or
	// reactivates the client account, and marks the code used atomically.
	RedeemAccessCodeTx(ctx context.Context, account *Account, client *ClientAccount, code *AccessCode) error
	// DeactivateAccessCodeTx deactivates the code and its bound client
	// account in one transaction.
	DeactivateAccessCodeTx(ctx context.Context, codeID string) error

	// Client accounts
	GetClientAccountByID(ctx context.Context, clientID string) (*ClientAccount, error)
	GetClientAccountByAccount(ctx context.Context, accountID string) (*ClientAccount, error)
	UpdateClientAccount(ctx context.Context, client *ClientAccount) error
	ListClientsByStaff(ctx context.Context, staffID string) ([]*ClientAccount, error)
	UpdateClientHeartbeat(ctx context.Context, clientID string, online bool, seenAt time.Time) error

	// Staff video assignments
	CreateAssignment(ctx context.Context, assignment *StaffVideoAssignment) error
	GetAssignment(ctx context.Context, videoID string, assignedTo *string) (*StaffVideoAssignment, error)
	DeleteAssignment(ctx context.Context, assignmentID string) error
	ListSpecificPlaylist(ctx context.Context, clientID string) ([]*PlaylistEntry, error)
	ListGlobalPlaylist(ctx context.Context, staffID string) ([]*PlaylistEntry, error)

	// Deletion requests
	CreateDeletionRequest(ctx context.Context, request *VideoDeletionRequest) error
	GetDeletionRequest(ctx context.Context, videoID, requestedBy string) (*VideoDeletionRequest, error)
	GetDeletionRequestByID(ctx context.Context, requestID string) (*VideoDeletionRequest, error)
	ListDeletionRequests(ctx context.Context, status string) ([]*VideoDeletionRequest, error)
	// ResolveDeletionRequestTx stamps the resolution, optionally soft-deletes
	// the target video, and appends the audit entry in one transaction.
	ResolveDeletionRequestTx(ctx context.Context, request *VideoDeletionRequest, softDeleteVideo bool, entry *AdminActionLog) error

	// Audit
	CreateAdminActionLog(ctx context.Context, entry *AdminActionLog) error
	ListAdminActionLogs(ctx context.Context, filter *AuditFilter) ([]*AdminActionLog, error)
	PruneAdminActionLogs(ctx context.Context, before time.Time) (int64, error)

	Close() error
}
