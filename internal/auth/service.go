package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/auralink/auralink-backend/internal/access"
	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/identity"
	"github.com/auralink/auralink-backend/internal/jwt"
	"github.com/auralink/auralink-backend/internal/otp"
	"github.com/auralink/auralink-backend/internal/validation"
	"github.com/auralink/auralink-backend/internal/ydb"
)

// dummyHash is compared against when the login identifier resolves to no
// account, so lookup misses and password misses take the same time.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type Service struct {
	db     ydb.Database
	tokens jwt.TokenManager
	otp    otp.Sender
	access *access.Service
	logger *slog.Logger
}

func NewService(db ydb.Database, tokens jwt.TokenManager, otpSender otp.Sender, accessService *access.Service, logger *slog.Logger) *Service {
	return &Service{
		db:     db,
		tokens: tokens,
		otp:    otpSender,
		access: accessService,
		logger: logger,
	}
}

type RegisterRequest struct {
	Username     string `json:"username"`
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
}

// Register validates the signup payload, checks identifier uniqueness and
// sends a verification code to the mobile number. No account row exists
// until ConfirmRegistration succeeds.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if err := s.validateSignup(req); err != nil {
		return nil, err
	}
	if err := s.checkIdentifiersFree(ctx, req.Username, req.MobileNumber); err != nil {
		return nil, err
	}

	if err := s.otp.Send(ctx, req.MobileNumber); err != nil {
		return nil, err
	}

	return &RegisterResponse{
		Message: "Verification code sent. Confirm your mobile number to finish registration.",
	}, nil
}

type ConfirmRegistrationRequest struct {
	Username     string `json:"username"`
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
	Code         string `json:"code"`
}

// ConfirmRegistration checks the one-time code and creates the account.
// The mobile number is only trusted after the provider approves the code.
func (s *Service) ConfirmRegistration(ctx context.Context, req *ConfirmRegistrationRequest) (*LoginResponse, error) {
	if err := s.validateSignup(&RegisterRequest{
		Username:     req.Username,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
	}); err != nil {
		return nil, err
	}

	approved, err := s.otp.Check(ctx, req.MobileNumber, req.Code)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, apperrors.FileValidation("invalid or expired verification code")
	}

	// Re-checked here: another signup may have raced between Register and
	// the code confirmation.
	if err := s.checkIdentifiersFree(ctx, req.Username, req.MobileNumber); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	mobile := req.MobileNumber
	account := &ydb.Account{
		AccountID:    uuid.New().String(),
		Username:     req.Username,
		MobileNumber: &mobile,
		PasswordHash: string(passwordHash),
		Kind:         string(identity.KindRegularUser),
		Elevated:     false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	s.logger.Info("account registered", "account_id", account.AccountID, "username", account.Username)

	return s.issueTokens(account)
}

type LoginRequest struct {
	// Identifier is a username or a mobile number.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`

	// AccessCode pairs this session's account to a staff tenant as a client
	// device. Optional; only meaningful at device login.
	AccessCode       string `json:"access_code,omitempty"`
	DeviceName       string `json:"device_name,omitempty"`
	DeviceIdentifier string `json:"device_identifier,omitempty"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	Account      *AccountInfo `json:"account"`
}

type AccountInfo struct {
	AccountID    string  `json:"account_id"`
	Username     string  `json:"username"`
	MobileNumber *string `json:"mobile_number,omitempty"`
	Kind         string  `json:"kind"`
	Elevated     bool    `json:"elevated"`
	PlanID       *string `json:"plan_id,omitempty"`
	CreatedAt    int64   `json:"created_at"`
}

// Login authenticates by username or mobile number. A blocked account is
// rejected after the password check so the response does not reveal whether
// the credentials were right.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	account, err := s.db.GetAccountByLogin(ctx, req.Identifier)
	if err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, apperrors.ErrAccountBlocked
	}

	if req.AccessCode != "" {
		if _, err := s.access.Redeem(ctx, account, req.AccessCode, req.DeviceName, req.DeviceIdentifier); err != nil {
			return nil, err
		}
		// Redemption may have promoted the account to a client device.
		account, err = s.db.GetAccountByID(ctx, account.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload account: %w", err)
		}
	}

	s.logger.Info("login", "account_id", account.AccountID, "kind", account.Kind)
	return s.issueTokens(account)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Refresh mints a new access token from a valid refresh token.
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*RefreshResponse, error) {
	accessToken, err := s.tokens.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	return &RefreshResponse{AccessToken: accessToken}, nil
}

// Profile returns the account behind an authenticated session.
func (s *Service) Profile(ctx context.Context, accountID string) (*AccountInfo, error) {
	account, err := s.db.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, apperrors.NotFound("account not found")
	}
	return accountInfo(account), nil
}

func (s *Service) validateSignup(req *RegisterRequest) error {
	if err := validation.ValidateUsername(req.Username); err != nil {
		return err
	}
	if err := validation.ValidateMobile(req.MobileNumber); err != nil {
		return err
	}
	return validation.ValidatePassword(req.Password)
}

func (s *Service) checkIdentifiersFree(ctx context.Context, username, mobile string) error {
	if existing, err := s.db.GetAccountByLogin(ctx, username); err == nil && existing != nil {
		return apperrors.FileValidation("username already taken")
	}
	if existing, err := s.db.GetAccountByMobile(ctx, mobile); err == nil && existing != nil {
		return apperrors.FileValidation("mobile number already registered")
	}
	return nil
}

func (s *Service) issueTokens(account *ydb.Account) (*LoginResponse, error) {
	accessToken, refreshToken, err := s.tokens.GenerateTokenPair(account.AccountID, account.Username, account.Kind, account.Elevated)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      accountInfo(account),
	}, nil
}

func accountInfo(account *ydb.Account) *AccountInfo {
	return &AccountInfo{
		AccountID:    account.AccountID,
		Username:     account.Username,
		MobileNumber: account.MobileNumber,
		Kind:         account.Kind,
		Elevated:     account.Elevated,
		PlanID:       account.PlanID,
		CreatedAt:    account.CreatedAt.Unix(),
	}
}
