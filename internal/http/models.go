package http

// Auth Request/Response Models

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=32"`
	MobileNumber string `json:"mobile_number" validate:"required,e164"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
}

// RegisterResponse represents a registration response
type RegisterResponse struct {
	Message string `json:"message"`
}

// ConfirmRegistrationRequest carries the one-time code for signup confirmation
type ConfirmRegistrationRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=32"`
	MobileNumber string `json:"mobile_number" validate:"required,e164"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Code         string `json:"code" validate:"required,min=4,max=10"`
}

// LoginRequest represents a login request. Identifier accepts a username or
// a mobile number. AccessCode is only used at client-device login.
type LoginRequest struct {
	Identifier       string `json:"identifier" validate:"required"`
	Password         string `json:"password" validate:"required"`
	AccessCode       string `json:"access_code,omitempty"`
	DeviceName       string `json:"device_name,omitempty"`
	DeviceIdentifier string `json:"device_identifier,omitempty"`
}

// RefreshTokenRequest represents a refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse represents a refresh token response
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// SetAccountTypeRequest selects the role for a freshly registered account
type SetAccountTypeRequest struct {
	AccountType string `json:"account_type" validate:"required,oneof=REGULAR STAFF"`
}

// StaffProfileResponse represents a staff tenant's allowances
type StaffProfileResponse struct {
	AccountID    string `json:"account_id"`
	MaxClients   int32  `json:"max_clients"`
	MaxStorageGB int32  `json:"max_storage_gb"`
	CanUseCloud  bool   `json:"can_use_cloud"`
}

// Video Models

// VideoResponse represents a stored video
type VideoResponse struct {
	VideoID         string  `json:"video_id"`
	Title           string  `json:"title"`
	FileSizeBytes   int64   `json:"file_size_bytes"`
	DurationSeconds int32   `json:"duration_seconds"`
	Format          string  `json:"format"`
	StorageBackend  string  `json:"storage_backend"`
	IsGlobal        bool    `json:"is_global"`
	Rotation        int32   `json:"rotation"`
	CloudURL        *string `json:"cloud_url,omitempty"`
	CreatedAt       int64   `json:"created_at"`
}

// VideoListResponse wraps a set of videos visible to the caller
type VideoListResponse struct {
	Videos []*VideoResponse `json:"videos"`
	Total  int              `json:"total"`
}

// PlaybackResponse carries a time-limited download link
type PlaybackResponse struct {
	VideoID string `json:"video_id"`
	URL     string `json:"url"`
}

// DeleteVideoRequest represents a direct video deletion request
type DeleteVideoRequest struct {
	VideoID string `json:"video_id" validate:"required,uuid"`
}

// SetRotationRequest updates playback rotation for an owned video
type SetRotationRequest struct {
	VideoID  string `json:"video_id" validate:"required,uuid"`
	Rotation int32  `json:"rotation" validate:"oneof=0 90 180 270"`
}

// AssignVideoRequest targets a video at one client or all of the staff's
// clients when ClientID is empty.
type AssignVideoRequest struct {
	VideoID   string `json:"video_id" validate:"required,uuid"`
	ClientID  string `json:"client_id,omitempty" validate:"omitempty,uuid"`
	PlayOrder int32  `json:"play_order" validate:"gte=0"`
	Loop      bool   `json:"loop"`
}

// UnassignVideoRequest removes an assignment row
type UnassignVideoRequest struct {
	VideoID  string `json:"video_id" validate:"required,uuid"`
	ClientID string `json:"client_id,omitempty" validate:"omitempty,uuid"`
}

// PlaylistEntryResponse is one playable row for a client device
type PlaylistEntryResponse struct {
	Video       *VideoResponse `json:"video"`
	PlayOrder   int32          `json:"play_order"`
	LoopEnabled bool           `json:"loop_enabled"`
}

// PlaylistResponse is the ordered playlist for a client device
type PlaylistResponse struct {
	Entries []*PlaylistEntryResponse `json:"entries"`
}

// Access Code Models

// AccessCodeResponse represents a pairing code
type AccessCodeResponse struct {
	CodeID      string  `json:"code_id"`
	Code        string  `json:"code"`
	IsActive    bool    `json:"is_active"`
	IsUsed      bool    `json:"is_used"`
	ClientID    *string `json:"client_id,omitempty"`
	ActivatedAt *int64  `json:"activated_at,omitempty"`
	CreatedAt   int64   `json:"created_at"`
}

// DeactivateCodeRequest revokes a pairing code and its bound device
type DeactivateCodeRequest struct {
	CodeID string `json:"code_id" validate:"required,uuid"`
}

// ClientResponse represents a paired client device
type ClientResponse struct {
	ClientID   string `json:"client_id"`
	DeviceName string `json:"device_name"`
	IsActive   bool   `json:"is_active"`
	IsOnline   bool   `json:"is_online"`
	LastSeen   *int64 `json:"last_seen,omitempty"`
}

// HeartbeatRequest reports a device's online state
type HeartbeatRequest struct {
	Online bool `json:"online"`
}

// Subscription Models

// ActivateSubscriptionRequest starts a paid subscription
type ActivateSubscriptionRequest struct {
	PlanID       string `json:"plan_id" validate:"required"`
	DurationDays int    `json:"duration_days" validate:"omitempty,gte=1,lte=365"`
}

// SubscriptionResponse represents the caller's subscription state
type SubscriptionResponse struct {
	SubscriptionID string `json:"subscription_id"`
	PlanID         string `json:"plan_id"`
	Status         string `json:"status"`
	StartDate      int64  `json:"start_date"`
	EndDate        int64  `json:"end_date"`
}

// PlanResponse represents one subscription tier
type PlanResponse struct {
	PlanID              string  `json:"plan_id"`
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	MaxVideos           *int64  `json:"max_videos,omitempty"`
	MaxFileSizeBytes    int64   `json:"max_file_size_bytes"`
	MaxDurationSeconds  int64   `json:"max_duration_seconds"`
	AllowedFormats      string  `json:"allowed_formats"`
	TotalStorageBytes   int64   `json:"total_storage_bytes"`
	CloudUploadAllowed  bool    `json:"cloud_upload_allowed"`
	PlaylistLoopAllowed bool    `json:"playlist_loop_allowed"`
}

// Deletion Request Models

// DeletionRequestRequest opens a deletion request for a protected video
type DeletionRequestRequest struct {
	VideoID string `json:"video_id" validate:"required,uuid"`
	Reason  string `json:"reason" validate:"max=500"`
}

// ResolveDeletionRequest approves or rejects a pending deletion request
type ResolveDeletionRequest struct {
	RequestID string `json:"request_id" validate:"required,uuid"`
	Notes     string `json:"notes" validate:"max=500"`
}

// DeletionRequestResponse represents a deletion request record
type DeletionRequestResponse struct {
	RequestID   string  `json:"request_id"`
	VideoID     string  `json:"video_id"`
	RequestedBy string  `json:"requested_by"`
	Status      string  `json:"status"`
	Reason      string  `json:"reason,omitempty"`
	AdminNotes  string  `json:"admin_notes,omitempty"`
	ResolvedBy  *string `json:"resolved_by,omitempty"`
	RequestedAt int64   `json:"requested_at"`
	ResolvedAt  *int64  `json:"resolved_at,omitempty"`
}

// Audit Models

// AuditLogResponse represents one administrative action
type AuditLogResponse struct {
	LogID       string  `json:"log_id"`
	AdminID     *string `json:"admin_id,omitempty"`
	ActionType  string  `json:"action_type"`
	TargetModel string  `json:"target_model"`
	TargetID    string  `json:"target_id"`
	Description string  `json:"description,omitempty"`
	Timestamp   int64   `json:"timestamp"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// MessageResponse is a generic acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}
