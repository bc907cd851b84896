package http

import (
	"net/http"

	"github.com/auralink/auralink-backend/internal/jwt"
	"github.com/auralink/auralink-backend/internal/subscription"
	"github.com/auralink/auralink-backend/internal/ydb"
)

// SetupRouter creates and configures HTTP router
func SetupRouter(server *Server, tokens jwt.TokenManager, subs *subscription.Service, db ydb.Database) http.Handler {
	mux := http.NewServeMux()

	public := []func(http.Handler) http.Handler{
		CORSMiddleware, RequestIDMiddleware, LoggingMiddleware, ContentTypeMiddleware,
	}
	authed := func(next http.Handler) http.Handler {
		return AuthMiddleware(tokens, db, next)
	}
	gated := func(next http.Handler) http.Handler {
		return SubscriptionGateMiddleware(subs, next)
	}

	// Health check endpoint (no auth required)
	mux.Handle("/health", chainMiddleware(server.Health, methodMiddleware("GET")))

	// Auth routes (no auth required)
	mux.HandleFunc("/api/v1/auth/register", chainMiddleware(server.Register, append([]func(http.Handler) http.Handler{methodMiddleware("POST")}, public...)...))
	mux.HandleFunc("/api/v1/auth/confirm", chainMiddleware(server.ConfirmRegistration, append([]func(http.Handler) http.Handler{methodMiddleware("POST")}, public...)...))
	mux.HandleFunc("/api/v1/auth/login", chainMiddleware(server.Login, append([]func(http.Handler) http.Handler{methodMiddleware("POST")}, public...)...))
	mux.HandleFunc("/api/v1/auth/refresh", chainMiddleware(server.RefreshToken, append([]func(http.Handler) http.Handler{methodMiddleware("POST")}, public...)...))

	// Protected auth routes
	handle := func(path, method string, handler http.HandlerFunc, withContentType bool) {
		mw := []func(http.Handler) http.Handler{methodMiddleware(method), CORSMiddleware, RequestIDMiddleware, LoggingMiddleware}
		if withContentType {
			mw = append(mw, ContentTypeMiddleware)
		}
		mw = append(mw, authed, gated)
		mux.HandleFunc(path, chainMiddleware(handler, mw...))
	}

	handle("/api/v1/auth/profile", "GET", server.GetProfile, false)
	handle("/api/v1/auth/account-type", "POST", server.SetAccountType, true)

	// Video routes. Upload takes multipart form data, so the JSON
	// content-type check is skipped there.
	handle("/api/v1/video/upload", "POST", server.UploadVideo, false)
	handle("/api/v1/video", "GET", server.ListVideos, false)
	handle("/api/v1/video/playback", "GET", server.PlaybackVideo, false)
	handle("/api/v1/video/delete", "POST", server.DeleteVideo, true)
	handle("/api/v1/video/rotation", "POST", server.SetRotation, true)
	handle("/api/v1/video/assign", "POST", server.AssignVideo, true)
	handle("/api/v1/video/unassign", "POST", server.UnassignVideo, true)
	handle("/api/v1/playlist", "GET", server.GetPlaylist, false)

	// Access code routes
	mux.HandleFunc("/api/v1/access/codes", chainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST":
			server.GenerateAccessCode(w, r)
		case "GET":
			server.ListAccessCodes(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}, CORSMiddleware, RequestIDMiddleware, LoggingMiddleware, authed, gated))
	handle("/api/v1/access/codes/deactivate", "POST", server.DeactivateAccessCode, true)
	handle("/api/v1/access/clients", "GET", server.ListClients, false)
	handle("/api/v1/access/heartbeat", "POST", server.Heartbeat, true)

	// Subscription routes (reachable with an expired subscription)
	handle("/api/v1/plans", "GET", server.ListPlans, false)
	handle("/api/v1/subscription", "GET", server.GetSubscription, false)
	handle("/api/v1/subscription/activate", "POST", server.ActivateSubscription, true)
	handle("/api/v1/subscription/cancel", "POST", server.CancelSubscription, true)

	// Deletion request routes
	handle("/api/v1/deletion/request", "POST", server.CreateDeletionRequest, true)
	handle("/api/v1/deletion/requests", "GET", server.ListDeletionRequests, false)
	handle("/api/v1/deletion/approve", "POST", server.ApproveDeletionRequest, true)
	handle("/api/v1/deletion/reject", "POST", server.RejectDeletionRequest, true)

	// Admin routes
	handle("/api/v1/admin/audit-logs", "GET", server.GetAuditLogs, false)

	return mux
}

// chainMiddleware applies multiple middleware to a handler function
func chainMiddleware(handler http.HandlerFunc, middleware ...func(http.Handler) http.Handler) http.HandlerFunc {
	h := http.Handler(handler)
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	}
}

// methodMiddleware creates middleware that checks for specific HTTP method
func methodMiddleware(method string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
