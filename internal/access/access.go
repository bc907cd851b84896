// Package access provisions device-pairing codes and runs the redemption
// protocol that binds client devices to staff tenants.
package access

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/identity"
	"github.com/auralink/auralink-backend/internal/quota"
	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/google/uuid"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
)

type Service struct {
	db     ydb.Database
	logger *slog.Logger
}

func NewService(db ydb.Database, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Default allowances for a freshly provisioned staff tenant. A staff plan
// raises them on activation.
const (
	defaultMaxClients   = 2
	defaultMaxStorageGB = 5
)

// BecomeStaff converts a regular account into a staff tenant and provisions
// its profile with the default allowances. Calling it again on an account
// that is already staff returns the existing profile, so a retried onboarding
// never duplicates anything.
func (s *Service) BecomeStaff(ctx context.Context, account *ydb.Account) (*ydb.StaffProfile, error) {
	switch identity.ActorKind(account.Kind) {
	case identity.KindClientDevice:
		return nil, apperrors.OwnershipViolation("client devices cannot become staff accounts")
	case identity.KindAdministrator:
		return nil, apperrors.OwnershipViolation("administrator accounts cannot become staff accounts")
	case identity.KindStaffTenant:
		profile, err := s.db.GetStaffProfile(ctx, account.AccountID)
		if err == nil {
			return profile, nil
		}
		if !apperrors.Is(err, apperrors.KindNotFound) {
			return nil, err
		}
		// Аккаунт уже STAFF, но профиль не создан: достраиваем онбординг.
	default:
		account.Kind = string(identity.KindStaffTenant)
		if err := s.db.UpdateAccount(ctx, account); err != nil {
			return nil, fmt.Errorf("failed to promote account: %w", err)
		}
	}

	profile := &ydb.StaffProfile{
		AccountID:    account.AccountID,
		MaxClients:   defaultMaxClients,
		MaxStorageGB: defaultMaxStorageGB,
		CanUseCloud:  false,
	}
	if err := s.db.CreateStaffProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create staff profile: %w", err)
	}

	s.logger.Info("account promoted to staff", "account_id", account.AccountID)
	return profile, nil
}

func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// GenerateCode mints a pairing code for the staff tenant. It fails closed
// when the tenant's live codes already fill the client allowance, and
// retries on the rare collision against an existing code.
func (s *Service) GenerateCode(ctx context.Context, staffID string) (*ydb.AccessCode, error) {
	profile, err := s.db.GetStaffProfile(ctx, staffID)
	if err != nil {
		return nil, err
	}

	activeCodes, err := s.db.CountActiveCodesForStaff(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active codes: %w", err)
	}
	if err := quota.CanAddClient(profile, activeCodes); err != nil {
		return nil, err
	}

	var value string
	for {
		value, err = randomCode()
		if err != nil {
			return nil, err
		}
		_, err = s.db.GetAccessCodeByCode(ctx, value)
		if apperrors.Is(err, apperrors.KindNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		// Collision; 36^8 keyspace makes repeats here vanishingly rare.
	}

	code := &ydb.AccessCode{
		CodeID:   uuid.New().String(),
		Code:     value,
		StaffID:  staffID,
		IsActive: true,
	}
	if err := s.db.CreateAccessCode(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to create access code: %w", err)
	}

	s.logger.Info("access code generated", "staff_id", staffID, "code_id", code.CodeID)
	return code, nil
}

// Redeem runs the pairing protocol for a submitted code and the
// authenticating account. On success the account acts as a client device
// bound to the code's staff tenant.
func (s *Service) Redeem(ctx context.Context, account *ydb.Account, codeValue, deviceName, deviceIdentifier string) (*ydb.ClientAccount, error) {
	if account.Kind == string(identity.KindStaffTenant) {
		return nil, apperrors.OwnershipViolation("staff accounts cannot be registered as client devices")
	}

	code, err := s.db.GetAccessCodeByCode(ctx, codeValue)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.FileValidation("invalid access code")
		}
		return nil, err
	}
	if !code.IsActive {
		return nil, apperrors.FileValidation("access code has been deactivated")
	}

	existing, err := s.db.GetClientAccountByAccount(ctx, account.AccountID)
	if err != nil && !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, err
	}

	// A used code is only honored by the device it already activated.
	sameBinding := existing != nil && existing.AccessCodeID != nil && *existing.AccessCodeID == code.CodeID
	if code.IsUsed && !sameBinding {
		return nil, apperrors.FileValidation("access code has already been used")
	}

	if existing != nil && !sameBinding {
		staff, err := s.db.GetAccountByID(ctx, existing.StaffID)
		if err != nil {
			return nil, err
		}
		return nil, apperrors.OwnershipViolation(
			"device already registered to staff %s, unlink first", staff.Username)
	}

	client := existing
	if client == nil {
		client = &ydb.ClientAccount{
			ClientID:  uuid.New().String(),
			AccountID: account.AccountID,
		}
	}
	client.StaffID = code.StaffID
	client.AccessCodeID = &code.CodeID
	client.DeviceName = deviceName
	client.DeviceIdentifier = deviceIdentifier
	client.IsActive = true

	account.Kind = string(identity.KindClientDevice)
	code.ClientID = &client.ClientID
	code.IsUsed = true
	if code.ActivatedAt == nil {
		now := time.Now()
		code.ActivatedAt = &now
	}

	if err := s.db.RedeemAccessCodeTx(ctx, account, client, code); err != nil {
		return nil, fmt.Errorf("failed to redeem access code: %w", err)
	}

	s.logger.Info("access code redeemed",
		"code_id", code.CodeID, "staff_id", code.StaffID, "client_id", client.ClientID)
	return client, nil
}

// Deactivate revokes a code and the device trust it granted. Assignment
// history for the client is kept.
func (s *Service) Deactivate(ctx context.Context, staffID, codeID string) error {
	codes, err := s.db.ListAccessCodesByStaff(ctx, staffID)
	if err != nil {
		return err
	}
	var owned bool
	for _, code := range codes {
		if code.CodeID == codeID {
			owned = true
			break
		}
	}
	if !owned {
		return apperrors.OwnershipViolation("access code belongs to another staff account")
	}

	if err := s.db.DeactivateAccessCodeTx(ctx, codeID); err != nil {
		return fmt.Errorf("failed to deactivate access code: %w", err)
	}

	s.logger.Info("access code deactivated", "staff_id", staffID, "code_id", codeID)
	return nil
}

func (s *Service) ListCodes(ctx context.Context, staffID string) ([]*ydb.AccessCode, error) {
	return s.db.ListAccessCodesByStaff(ctx, staffID)
}

func (s *Service) ListClients(ctx context.Context, staffID string) ([]*ydb.ClientAccount, error) {
	return s.db.ListClientsByStaff(ctx, staffID)
}

// Heartbeat records a client device check-in.
func (s *Service) Heartbeat(ctx context.Context, clientID string, online bool) error {
	return s.db.UpdateClientHeartbeat(ctx, clientID, online, time.Now())
}
