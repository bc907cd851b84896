package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/auralink/auralink-backend/internal/access"
	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/config"
	"github.com/auralink/auralink-backend/internal/identity"
	"github.com/auralink/auralink-backend/internal/jwt"
	"github.com/auralink/auralink-backend/internal/validation"
	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/auralink/auralink-backend/internal/ydb/mocks"
)

type fakeSender struct {
	sent     []string
	sendErr  error
	approved bool
	checkErr error
}

func (f *fakeSender) Send(ctx context.Context, phone string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, phone)
	return nil
}

func (f *fakeSender) Check(ctx context.Context, phone, code string) (bool, error) {
	return f.approved, f.checkErr
}

func setupAuthService(t *testing.T, sender *fakeSender) (*Service, *mocks.Database) {
	t.Helper()
	mockDB := mocks.NewDatabase(t)
	logger := slog.Default()
	tokens := jwt.NewJWTManager(&config.Config{JWTSecretKey: "test-secret"})
	accessService := access.NewService(mockDB, logger)
	return NewService(mockDB, tokens, sender, accessService, logger), mockDB
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegisterSendsVerificationCode(t *testing.T) {
	sender := &fakeSender{}
	service, mockDB := setupAuthService(t, sender)

	mockDB.On("GetAccountByLogin", mock.Anything, "alice").Return(nil, apperrors.NotFound("account not found"))
	mockDB.On("GetAccountByMobile", mock.Anything, "+15551234567").Return(nil, apperrors.NotFound("account not found"))

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Username:     "alice",
		MobileNumber: "+15551234567",
		Password:     "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Verification code sent")
	assert.Equal(t, []string{"+15551234567"}, sender.sent)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	sender := &fakeSender{}
	service, mockDB := setupAuthService(t, sender)

	mockDB.On("GetAccountByLogin", mock.Anything, "alice").Return(&ydb.Account{AccountID: "acct-1"}, nil)

	_, err := service.Register(context.Background(), &RegisterRequest{
		Username:     "alice",
		MobileNumber: "+15551234567",
		Password:     "s3cret-pass",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username already taken")
	assert.Empty(t, sender.sent)
}

func TestRegisterRejectsBadMobileNumber(t *testing.T) {
	sender := &fakeSender{}
	service, _ := setupAuthService(t, sender)

	_, err := service.Register(context.Background(), &RegisterRequest{
		Username:     "alice",
		MobileNumber: "555-1234",
		Password:     "s3cret-pass",
	})
	require.Error(t, err)
	var vErr validation.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "mobile_number", vErr.Field)
	assert.Empty(t, sender.sent)
}

func TestConfirmRegistrationRejectsWrongCode(t *testing.T) {
	sender := &fakeSender{approved: false}
	service, mockDB := setupAuthService(t, sender)

	_, err := service.ConfirmRegistration(context.Background(), &ConfirmRegistrationRequest{
		Username:     "alice",
		MobileNumber: "+15551234567",
		Password:     "s3cret-pass",
		Code:         "000000",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired verification code")
	mockDB.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
}

func TestConfirmRegistrationCreatesAccount(t *testing.T) {
	sender := &fakeSender{approved: true}
	service, mockDB := setupAuthService(t, sender)

	mockDB.On("GetAccountByLogin", mock.Anything, "alice").Return(nil, apperrors.NotFound("account not found"))
	mockDB.On("GetAccountByMobile", mock.Anything, "+15551234567").Return(nil, apperrors.NotFound("account not found"))
	mockDB.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a *ydb.Account) bool {
		if a.Kind != string(identity.KindRegularUser) || a.Elevated || !a.IsActive {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("s3cret-pass")) == nil
	})).Return(nil)

	resp, err := service.ConfirmRegistration(context.Background(), &ConfirmRegistrationRequest{
		Username:     "alice",
		MobileNumber: "+15551234567",
		Password:     "s3cret-pass",
		Code:         "123456",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice", resp.Account.Username)
}

func TestLoginUnknownIdentifier(t *testing.T) {
	service, mockDB := setupAuthService(t, &fakeSender{})

	mockDB.On("GetAccountByLogin", mock.Anything, "ghost").Return(nil, apperrors.NotFound("account not found"))

	_, err := service.Login(context.Background(), &LoginRequest{Identifier: "ghost", Password: "whatever-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	service, mockDB := setupAuthService(t, &fakeSender{})

	mockDB.On("GetAccountByLogin", mock.Anything, "alice").Return(&ydb.Account{
		AccountID:    "acct-1",
		Username:     "alice",
		PasswordHash: hashPassword(t, "right-pass"),
		Kind:         string(identity.KindRegularUser),
		IsActive:     true,
	}, nil)

	_, err := service.Login(context.Background(), &LoginRequest{Identifier: "alice", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginBlockedAccount(t *testing.T) {
	service, mockDB := setupAuthService(t, &fakeSender{})

	mockDB.On("GetAccountByLogin", mock.Anything, "alice").Return(&ydb.Account{
		AccountID:    "acct-1",
		Username:     "alice",
		PasswordHash: hashPassword(t, "right-pass"),
		Kind:         string(identity.KindRegularUser),
		IsActive:     false,
	}, nil)

	_, err := service.Login(context.Background(), &LoginRequest{Identifier: "alice", Password: "right-pass"})
	assert.ErrorIs(t, err, apperrors.ErrAccountBlocked)
}

func TestLoginReturnsTokenPair(t *testing.T) {
	service, mockDB := setupAuthService(t, &fakeSender{})

	mobile := "+15551234567"
	mockDB.On("GetAccountByLogin", mock.Anything, mobile).Return(&ydb.Account{
		AccountID:    "acct-1",
		Username:     "alice",
		MobileNumber: &mobile,
		PasswordHash: hashPassword(t, "right-pass"),
		Kind:         string(identity.KindRegularUser),
		IsActive:     true,
		CreatedAt:    time.Now(),
	}, nil)

	resp, err := service.Login(context.Background(), &LoginRequest{Identifier: mobile, Password: "right-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "acct-1", resp.Account.AccountID)
	assert.Equal(t, string(identity.KindRegularUser), resp.Account.Kind)
}

func TestLoginWithAccessCodePromotesToClient(t *testing.T) {
	service, mockDB := setupAuthService(t, &fakeSender{})

	account := &ydb.Account{
		AccountID:    "acct-1",
		Username:     "living-room-tv",
		PasswordHash: hashPassword(t, "right-pass"),
		Kind:         string(identity.KindRegularUser),
		IsActive:     true,
	}
	mockDB.On("GetAccountByLogin", mock.Anything, "living-room-tv").Return(account, nil)
	mockDB.On("GetAccessCodeByCode", mock.Anything, "ABCD1234").Return(&ydb.AccessCode{
		CodeID:   "code-1",
		Code:     "ABCD1234",
		StaffID:  "staff-1",
		IsActive: true,
	}, nil)
	mockDB.On("GetClientAccountByAccount", mock.Anything, "acct-1").Return(nil, apperrors.NotFound("client not found"))
	mockDB.On("RedeemAccessCodeTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockDB.On("GetAccountByID", mock.Anything, "acct-1").Return(&ydb.Account{
		AccountID: "acct-1",
		Username:  "living-room-tv",
		Kind:      string(identity.KindClientDevice),
		IsActive:  true,
	}, nil)

	resp, err := service.Login(context.Background(), &LoginRequest{
		Identifier: "living-room-tv",
		Password:   "right-pass",
		AccessCode: "ABCD1234",
		DeviceName: "Living Room TV",
	})
	require.NoError(t, err)
	assert.Equal(t, string(identity.KindClientDevice), resp.Account.Kind)

	tokens := jwt.NewJWTManager(&config.Config{JWTSecretKey: "test-secret"})
	claims, err := tokens.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(identity.KindClientDevice), claims.Kind)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	service, _ := setupAuthService(t, &fakeSender{})

	_, err := service.Refresh(context.Background(), &RefreshRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
