package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/auralink/auralink-backend/internal/access"
	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/audit"
	"github.com/auralink/auralink-backend/internal/auth"
	"github.com/auralink/auralink-backend/internal/deletion"
	"github.com/auralink/auralink-backend/internal/identity"
	"github.com/auralink/auralink-backend/internal/plans"
	"github.com/auralink/auralink-backend/internal/subscription"
	"github.com/auralink/auralink-backend/internal/validation"
	"github.com/auralink/auralink-backend/internal/video"
	"github.com/auralink/auralink-backend/internal/ydb"
)

// maxUploadMemory bounds the multipart form buffer; file parts beyond this
// spill to disk.
const maxUploadMemory = 32 << 20

const playbackLinkLifetime = 24 * time.Hour

var validate = validator.New()

// Server represents HTTP server
type Server struct {
	authService     *auth.Service
	videoService    *video.Service
	accessService   *access.Service
	deletionService *deletion.Service
	subscriptions   *subscription.Service
	planService     *plans.Service
	auditService    *audit.Service
	db              ydb.Database
	graceDays       int32
}

// NewServer creates a new HTTP server
func NewServer(
	authService *auth.Service,
	videoService *video.Service,
	accessService *access.Service,
	deletionService *deletion.Service,
	subscriptions *subscription.Service,
	planService *plans.Service,
	auditService *audit.Service,
	db ydb.Database,
	graceDays int32,
) *Server {
	return &Server{
		authService:     authService,
		videoService:    videoService,
		accessService:   accessService,
		deletionService: deletionService,
		subscriptions:   subscriptions,
		planService:     planService,
		auditService:    auditService,
		db:              db,
		graceDays:       graceDays,
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// writeServiceError maps a service-layer error to an HTTP status
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidToken):
		s.writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrAccountBlocked),
		errors.Is(err, apperrors.ErrReadOnlyGracePeriod),
		errors.Is(err, apperrors.ErrSubscriptionExpired):
		s.writeError(w, http.StatusForbidden, err.Error())
	default:
		var vErr validation.ValidationError
		if errors.As(err, &vErr) {
			s.writeError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		switch apperrors.KindOf(err) {
		case apperrors.KindFileValidation:
			s.writeError(w, http.StatusBadRequest, err.Error())
		case apperrors.KindPlanLimitExceeded, apperrors.KindOwnershipViolation:
			s.writeError(w, http.StatusForbidden, err.Error())
		case apperrors.KindNotFound:
			s.writeError(w, http.StatusNotFound, err.Error())
		case apperrors.KindExternalService:
			s.writeError(w, http.StatusBadGateway, err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

// validateRequest decodes a JSON body and checks its validation tags
func (s *Server) validateRequest(r *http.Request, req interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return err
	}
	return validate.Struct(req)
}

// account returns the authenticated account or writes a 401
func (s *Server) account(w http.ResponseWriter, r *http.Request) (*ydb.Account, bool) {
	account, ok := GetAccount(r)
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return account, true
}

// Health is the liveness endpoint
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, MessageResponse{Message: "ok"})
}

// Auth Handlers

// Register starts a signup: identifier checks plus a verification code SMS.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	resp, err := s.authService.Register(r.Context(), &auth.RegisterRequest{
		Username:     req.Username,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusAccepted, RegisterResponse{Message: resp.Message})
}

// ConfirmRegistration finishes a signup with the one-time code
func (s *Server) ConfirmRegistration(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRegistrationRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	resp, err := s.authService.ConfirmRegistration(r.Context(), &auth.ConfirmRegistrationRequest{
		Username:     req.Username,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
		Code:         req.Code,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, resp)
}

// Login authenticates by username or mobile number
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	resp, err := s.authService.Login(r.Context(), &auth.LoginRequest{
		Identifier:       req.Identifier,
		Password:         req.Password,
		AccessCode:       req.AccessCode,
		DeviceName:       req.DeviceName,
		DeviceIdentifier: req.DeviceIdentifier,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// RefreshToken mints a new access token
func (s *Server) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	resp, err := s.authService.Refresh(r.Context(), &auth.RefreshRequest{RefreshToken: req.RefreshToken})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, RefreshTokenResponse{AccessToken: resp.AccessToken})
}

// GetProfile returns the authenticated account
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	info, err := s.authService.Profile(r.Context(), account.AccountID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, info)
}

// SetAccountType lets a regular account choose its role. STAFF provisions a
// tenant profile with the default allowances; REGULAR is accepted as a no-op
// so the client can always submit the choice screen.
func (s *Server) SetAccountType(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	var req SetAccountTypeRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	if req.AccountType == string(identity.KindRegularUser) {
		if account.Kind != string(identity.KindRegularUser) {
			s.writeServiceError(w, apperrors.OwnershipViolation("account type already set"))
			return
		}
		s.writeJSON(w, http.StatusOK, MessageResponse{Message: "Account type confirmed"})
		return
	}

	profile, err := s.accessService.BecomeStaff(r.Context(), account)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, StaffProfileResponse{
		AccountID:    profile.AccountID,
		MaxClients:   profile.MaxClients,
		MaxStorageGB: profile.MaxStorageGB,
		CanUseCloud:  profile.CanUseCloud,
	})
}

// Video Handlers

// UploadVideo ingests a multipart upload through the plan quota gate
func (s *Server) UploadVideo(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Missing file part")
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}
	if err := validation.ValidateTitle(title); err != nil {
		s.writeServiceError(w, err)
		return
	}
	if err := validation.ValidateFilename(header.Filename); err != nil {
		s.writeServiceError(w, err)
		return
	}

	v, err := s.videoService.Upload(r.Context(), account, video.UploadRequest{
		Title:    title,
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
		Global:   r.FormValue("global") == "true",
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, videoResponse(v))
}

// ListVideos returns the videos visible to the caller
func (s *Server) ListVideos(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	videos, err := s.videoService.VisibleVideos(r.Context(), account)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := &VideoListResponse{Videos: make([]*VideoResponse, 0, len(videos)), Total: len(videos)}
	for _, v := range videos {
		resp.Videos = append(resp.Videos, videoResponse(v))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// PlaybackVideo returns a time-limited link for one visible video
func (s *Server) PlaybackVideo(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		s.writeError(w, http.StatusBadRequest, "video_id is required")
		return
	}

	v, err := s.videoService.Get(r.Context(), videoID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	if allowed, err := s.canPlayback(r, account, v); err != nil {
		s.writeServiceError(w, err)
		return
	} else if !allowed {
		s.writeError(w, http.StatusForbidden, "You do not have access to this video")
		return
	}

	url, err := s.videoService.PlaybackURL(r.Context(), v, playbackLinkLifetime)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, PlaybackResponse{VideoID: v.VideoID, URL: url})
}

// canPlayback applies the visibility policy to a single video read
func (s *Server) canPlayback(r *http.Request, account *ydb.Account, v *ydb.Video) (bool, error) {
	if account.Elevated || v.OwnerID == account.AccountID || v.IsGlobal {
		return true, nil
	}

	client, err := s.db.GetClientAccountByAccount(r.Context(), account.AccountID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	if !client.IsActive {
		return false, nil
	}

	if _, err := s.db.GetAssignment(r.Context(), v.VideoID, &client.ClientID); err == nil {
		return true, nil
	} else if !apperrors.Is(err, apperrors.KindNotFound) {
		return false, err
	}

	global, err := s.db.GetAssignment(r.Context(), v.VideoID, nil)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return global.IsGlobalForStaff && global.StaffID == client.StaffID, nil
}

// DeleteVideo removes a video the caller is permitted to delete directly
func (s *Server) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	var req DeleteVideoRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	if err := s.videoService.Delete(r.Context(), account, req.VideoID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MessageResponse{Message: "Video deleted"})
}

// SetRotation updates playback rotation on an owned video
func (s *Server) SetRotation(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	var req SetRotationRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	if err := s.videoService.SetRotation(r.Context(), account, req.VideoID, req.Rotation); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MessageResponse{Message: "Rotation updated"})
}

// AssignVideo targets a staff video at one client or all clients
func (s *Server) AssignVideo(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	var req AssignVideoRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	assignment, err := s.videoService.Assign(r.Context(), account, req.VideoID, req.ClientID, req.PlayOrder, req.Loop)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, assignment)
}

// UnassignVideo removes an assignment row
func (s *Server) UnassignVideo(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	var req UnassignVideoRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	if err := s.videoService.Unassign(r.Context(), account, req.VideoID, req.ClientID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MessageResponse{Message: "Assignment removed"})
}

// GetPlaylist returns the ordered playlist for the calling client device
func (s *Server) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	client, err := s.db.GetClientAccountByAccount(r.Context(), account.AccountID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	entries, err := s.videoService.ClientPlaylist(r.Context(), client)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := &PlaylistResponse{Entries: make([]*PlaylistEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, &PlaylistEntryResponse{
			Video:       videoResponse(entry.Video),
			PlayOrder:   entry.PlayOrder,
			LoopEnabled: entry.LoopEnabled,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// Access Code Handlers

// GenerateAccessCode mints a pairing code for the calling staff tenant
func (s *Server) GenerateAccessCode(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	code, err := s.accessService.GenerateCode(r.Context(), account.AccountID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, accessCodeResponse(code))
}

// ListAccessCodes lists the calling staff tenant's codes
func (s *Server) ListAccessCodes(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	codes, err := s.accessService.ListCodes(r.Context(), account.AccountID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := make([]*AccessCodeResponse, 0, len(codes))
	for _, code := range codes {
		resp = append(resp, accessCodeResponse(code))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// DeactivateAccessCode revokes a code and the device it activated
func (s *Server) DeactivateAccessCode(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	var req DeactivateCodeRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	if err := s.accessService.Deactivate(r.Context(), account.AccountID, req.CodeID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MessageResponse{Message: "Access code deactivated"})
}

// ListClients lists the calling staff tenant's paired devices
func (s *Server) ListClients(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	clients, err := s.accessService.ListClients(r.Context(), account.AccountID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := make([]*ClientResponse, 0, len(clients))
	for _, client := range clients {
		resp = append(resp, clientResponse(client))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// Heartbeat records the calling client device's online state
func (s *Server) Heartbeat(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	var req HeartbeatRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	client, err := s.db.GetClientAccountByAccount(r.Context(), account.AccountID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	if err := s.accessService.Heartbeat(r.Context(), client.ClientID, req.Online); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MessageResponse{Message: "Heartbeat recorded"})
}

// Subscription Handlers

// ListPlans returns the available subscription tiers
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	allPlans, err := s.planService.GetAllPlans(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := make([]*PlanResponse, 0, len(allPlans))
	for _, p := range allPlans {
		resp = append(resp, &PlanResponse{
			PlanID:              p.PlanID,
			Name:                p.Name,
			Price:               p.Price,
			MaxVideos:           p.MaxVideos,
			MaxFileSizeBytes:    p.MaxFileSizeBytes,
			MaxDurationSeconds:  p.MaxDurationSeconds,
			AllowedFormats:      p.AllowedFormats,
			TotalStorageBytes:   p.TotalStorageBytes,
			CloudUploadAllowed:  p.CloudUploadAllowed,
			PlaylistLoopAllowed: p.PlaylistLoopAllowed,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ActivateSubscription starts a subscription on the chosen plan
func (s *Server) ActivateSubscription(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	var req ActivateSubscriptionRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	days := req.DurationDays
	if days == 0 {
		days = 30
	}

	sub, err := s.subscriptions.Activate(r.Context(), account.AccountID, req.PlanID,
		time.Duration(days)*24*time.Hour, s.graceDays)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, subscriptionResponse(sub))
}

// CancelSubscription cancels the caller's subscription
func (s *Server) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	if err := s.subscriptions.Cancel(r.Context(), account.AccountID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MessageResponse{Message: "Subscription cancelled"})
}

// GetSubscription returns the caller's subscription state
func (s *Server) GetSubscription(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	sub, err := s.db.GetSubscriptionByAccount(r.Context(), account.AccountID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, subscriptionResponse(sub))
}

// Deletion Request Handlers

// CreateDeletionRequest opens a deletion request for a protected video
func (s *Server) CreateDeletionRequest(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	var req DeletionRequestRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	record, err := s.deletionService.Request(r.Context(), account, req.VideoID, req.Reason)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, deletionRequestResponse(record))
}

// ListDeletionRequests lists deletion requests for review
func (s *Server) ListDeletionRequests(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	records, err := s.deletionService.List(r.Context(), account, r.URL.Query().Get("status"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := make([]*DeletionRequestResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, deletionRequestResponse(record))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ApproveDeletionRequest approves a pending request and soft-deletes the video
func (s *Server) ApproveDeletionRequest(w http.ResponseWriter, r *http.Request) {
	s.resolveDeletionRequest(w, r, true)
}

// RejectDeletionRequest rejects a pending request; the video stays untouched
func (s *Server) RejectDeletionRequest(w http.ResponseWriter, r *http.Request) {
	s.resolveDeletionRequest(w, r, false)
}

func (s *Server) resolveDeletionRequest(w http.ResponseWriter, r *http.Request, approve bool) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	var req ResolveDeletionRequest
	if err := s.validateRequest(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	var record *ydb.VideoDeletionRequest
	var err error
	if approve {
		record, err = s.deletionService.Approve(r.Context(), account, req.RequestID, req.Notes)
	} else {
		record, err = s.deletionService.Reject(r.Context(), account, req.RequestID, req.Notes)
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, deletionRequestResponse(record))
}

// Admin Handlers

// GetAuditLogs lists administrative actions with optional filters
func (s *Server) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	account, ok := s.account(w, r)
	if !ok {
		return
	}

	filter := &ydb.AuditFilter{
		AdminID:    r.URL.Query().Get("admin_id"),
		ActionType: r.URL.Query().Get("action_type"),
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid 'from' timestamp, expected RFC3339")
			return
		}
		filter.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid 'to' timestamp, expected RFC3339")
			return
		}
		filter.To = &t
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			s.writeError(w, http.StatusBadRequest, "Invalid 'limit', expected 1-1000")
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "Invalid 'offset'")
			return
		}
		filter.Offset = n
	}

	logs, err := s.auditService.List(r.Context(), account, filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := make([]*AuditLogResponse, 0, len(logs))
	for _, entry := range logs {
		resp = append(resp, &AuditLogResponse{
			LogID:       entry.LogID,
			AdminID:     entry.AdminID,
			ActionType:  entry.ActionType,
			TargetModel: entry.TargetModel,
			TargetID:    entry.TargetID,
			Description: entry.Description,
			Timestamp:   entry.Timestamp.Unix(),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// Response mapping helpers

func videoResponse(v *ydb.Video) *VideoResponse {
	return &VideoResponse{
		VideoID:         v.VideoID,
		Title:           v.Title,
		FileSizeBytes:   v.FileSizeBytes,
		DurationSeconds: v.DurationSeconds,
		Format:          v.Format,
		StorageBackend:  v.StorageType,
		IsGlobal:        v.IsGlobal,
		Rotation:        v.Rotation,
		CloudURL:        v.CloudURL,
		CreatedAt:       v.CreatedAt.Unix(),
	}
}

func accessCodeResponse(code *ydb.AccessCode) *AccessCodeResponse {
	resp := &AccessCodeResponse{
		CodeID:    code.CodeID,
		Code:      code.Code,
		IsActive:  code.IsActive,
		IsUsed:    code.IsUsed,
		ClientID:  code.ClientID,
		CreatedAt: code.CreatedAt.Unix(),
	}
	if code.ActivatedAt != nil {
		ts := code.ActivatedAt.Unix()
		resp.ActivatedAt = &ts
	}
	return resp
}

func clientResponse(client *ydb.ClientAccount) *ClientResponse {
	resp := &ClientResponse{
		ClientID:   client.ClientID,
		DeviceName: client.DeviceName,
		IsActive:   client.IsActive,
		IsOnline:   client.IsOnline,
	}
	if client.LastSeen != nil {
		ts := client.LastSeen.Unix()
		resp.LastSeen = &ts
	}
	return resp
}

func subscriptionResponse(sub *ydb.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		SubscriptionID: sub.SubscriptionID,
		PlanID:         sub.PlanID,
		Status:         sub.Status,
		StartDate:      sub.StartDate.Unix(),
		EndDate:        sub.EndDate.Unix(),
	}
}

func deletionRequestResponse(record *ydb.VideoDeletionRequest) *DeletionRequestResponse {
	resp := &DeletionRequestResponse{
		RequestID:   record.RequestID,
		VideoID:     record.VideoID,
		RequestedBy: record.RequestedBy,
		Status:      record.Status,
		Reason:      record.Reason,
		AdminNotes:  record.AdminNotes,
		ResolvedBy:  record.ResolvedBy,
		RequestedAt: record.RequestedAt.Unix(),
	}
	if record.ResolvedAt != nil {
		ts := record.ResolvedAt.Unix()
		resp.ResolvedAt = &ts
	}
	return resp
}
