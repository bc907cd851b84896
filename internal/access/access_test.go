package access

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/identity"
	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/auralink/auralink-backend/internal/ydb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, *mocks.Database) {
	mockDB := mocks.NewDatabase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(mockDB, logger), mockDB
}

func strPtr(s string) *string { return &s }

func TestBecomeStaffPromotesRegularAccount(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	account := &ydb.Account{AccountID: "acct-1", Kind: string(identity.KindRegularUser)}

	mockDB.On("UpdateAccount", ctx, mock.MatchedBy(func(a *ydb.Account) bool {
		return a.AccountID == "acct-1" && a.Kind == string(identity.KindStaffTenant)
	})).Return(nil)
	mockDB.On("CreateStaffProfile", ctx, mock.MatchedBy(func(p *ydb.StaffProfile) bool {
		return p.AccountID == "acct-1" && p.MaxClients == 2 &&
			p.MaxStorageGB == 5 && !p.CanUseCloud
	})).Return(nil)

	profile, err := service.BecomeStaff(ctx, account)

	require.NoError(t, err)
	assert.Equal(t, int32(2), profile.MaxClients)
	assert.Equal(t, string(identity.KindStaffTenant), account.Kind)
}

func TestBecomeStaffIsIdempotentForExistingStaff(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	account := &ydb.Account{AccountID: "acct-1", Kind: string(identity.KindStaffTenant)}
	existing := &ydb.StaffProfile{AccountID: "acct-1", MaxClients: 10, MaxStorageGB: 50, CanUseCloud: true}

	mockDB.On("GetStaffProfile", ctx, "acct-1").Return(existing, nil)

	profile, err := service.BecomeStaff(ctx, account)

	require.NoError(t, err)
	assert.Same(t, existing, profile)
	mockDB.AssertNotCalled(t, "UpdateAccount", mock.Anything, mock.Anything)
	mockDB.AssertNotCalled(t, "CreateStaffProfile", mock.Anything, mock.Anything)
}

func TestBecomeStaffRejectsClientDevice(t *testing.T) {
	service, _ := setupService(t)

	account := &ydb.Account{AccountID: "acct-1", Kind: string(identity.KindClientDevice)}
	profile, err := service.BecomeStaff(context.Background(), account)

	require.Error(t, err)
	assert.Nil(t, profile)
	assert.True(t, apperrors.Is(err, apperrors.KindOwnershipViolation))
}

func TestGenerateCodeSucceedsUnderClientLimit(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("GetStaffProfile", ctx, "staff-1").
		Return(&ydb.StaffProfile{AccountID: "staff-1", MaxClients: 2, MaxStorageGB: 5}, nil)
	mockDB.On("CountActiveCodesForStaff", ctx, "staff-1").Return(int64(1), nil)
	mockDB.On("GetAccessCodeByCode", ctx, mock.AnythingOfType("string")).
		Return(nil, apperrors.NotFound("access code not found"))
	mockDB.On("CreateAccessCode", ctx, mock.MatchedBy(func(c *ydb.AccessCode) bool {
		return c.StaffID == "staff-1" && c.IsActive && !c.IsUsed && len(c.Code) == 8
	})).Return(nil)

	code, err := service.GenerateCode(ctx, "staff-1")

	require.NoError(t, err)
	assert.Len(t, code.Code, 8)
	for _, r := range code.Code {
		assert.Contains(t, codeAlphabet, string(r))
	}
}

// Third code at max_clients=2 fails closed with no row created.
func TestGenerateCodeFailsClosedAtClientLimit(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("GetStaffProfile", ctx, "staff-1").
		Return(&ydb.StaffProfile{AccountID: "staff-1", MaxClients: 2, MaxStorageGB: 5}, nil)
	mockDB.On("CountActiveCodesForStaff", ctx, "staff-1").Return(int64(2), nil)

	code, err := service.GenerateCode(ctx, "staff-1")

	require.Error(t, err)
	assert.Nil(t, code)
	assert.True(t, apperrors.Is(err, apperrors.KindPlanLimitExceeded))
	mockDB.AssertNotCalled(t, "CreateAccessCode", mock.Anything, mock.Anything)
}

func TestRedeemRejectsStaffAccount(t *testing.T) {
	service, _ := setupService(t)

	account := &ydb.Account{AccountID: "acct-1", Kind: string(identity.KindStaffTenant)}
	client, err := service.Redeem(context.Background(), account, "ABCD1234", "tv", "dev-1")

	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, apperrors.Is(err, apperrors.KindOwnershipViolation))
}

func TestRedeemRejectsUnknownCode(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("GetAccessCodeByCode", ctx, "NOPE0000").
		Return(nil, apperrors.NotFound("access code not found"))

	account := &ydb.Account{AccountID: "acct-1", Kind: string(identity.KindRegularUser)}
	_, err := service.Redeem(ctx, account, "NOPE0000", "tv", "dev-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid access code")
}

func TestRedeemRejectsInactiveCode(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("GetAccessCodeByCode", ctx, "DEAD0000").Return(&ydb.AccessCode{
		CodeID: "code-1", Code: "DEAD0000", StaffID: "staff-1", IsActive: false,
	}, nil)

	account := &ydb.Account{AccountID: "acct-1", Kind: string(identity.KindRegularUser)}
	_, err := service.Redeem(ctx, account, "DEAD0000", "tv", "dev-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deactivated")
}

// A used code never binds a second device, whatever account submits it.
func TestRedeemRejectsUsedCodeFromAnotherDevice(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("GetAccessCodeByCode", ctx, "USED0001").Return(&ydb.AccessCode{
		CodeID: "code-1", Code: "USED0001", StaffID: "staff-1",
		IsActive: true, IsUsed: true, ClientID: strPtr("client-other"),
	}, nil)
	mockDB.On("GetClientAccountByAccount", ctx, "acct-2").
		Return(nil, apperrors.NotFound("client account not found"))

	account := &ydb.Account{AccountID: "acct-2", Kind: string(identity.KindRegularUser)}
	_, err := service.Redeem(ctx, account, "USED0001", "tv", "dev-2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been used")
}

// Same code + same device is idempotent: the existing client account is
// reactivated instead of duplicated.
func TestRedeemSameCodeReactivatesExistingClient(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	code := &ydb.AccessCode{
		CodeID: "code-1", Code: "PAIR0001", StaffID: "staff-1",
		IsActive: true, IsUsed: true, ClientID: strPtr("client-1"),
	}
	existing := &ydb.ClientAccount{
		ClientID: "client-1", AccountID: "acct-1", StaffID: "staff-1",
		AccessCodeID: strPtr("code-1"), IsActive: false,
	}

	mockDB.On("GetAccessCodeByCode", ctx, "PAIR0001").Return(code, nil)
	mockDB.On("GetClientAccountByAccount", ctx, "acct-1").Return(existing, nil)
	mockDB.On("RedeemAccessCodeTx", ctx,
		mock.MatchedBy(func(a *ydb.Account) bool { return a.Kind == string(identity.KindClientDevice) }),
		mock.MatchedBy(func(c *ydb.ClientAccount) bool {
			return c.ClientID == "client-1" && c.IsActive
		}),
		code,
	).Return(nil)

	account := &ydb.Account{AccountID: "acct-1", Kind: string(identity.KindClientDevice)}
	client, err := service.Redeem(ctx, account, "PAIR0001", "tv", "dev-1")

	require.NoError(t, err)
	assert.Equal(t, "client-1", client.ClientID)
	mockDB.AssertExpectations(t)
}

// A device bound to another code is hard-locked until staff unlinks it.
func TestRedeemRejectsDeviceBoundToDifferentCode(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("GetAccessCodeByCode", ctx, "PAIR0002").Return(&ydb.AccessCode{
		CodeID: "code-2", Code: "PAIR0002", StaffID: "staff-2", IsActive: true,
	}, nil)
	mockDB.On("GetClientAccountByAccount", ctx, "acct-1").Return(&ydb.ClientAccount{
		ClientID: "client-1", AccountID: "acct-1", StaffID: "staff-1",
		AccessCodeID: strPtr("code-1"), IsActive: true,
	}, nil)
	mockDB.On("GetAccountByID", ctx, "staff-1").Return(&ydb.Account{
		AccountID: "staff-1", Username: "alpha-staff",
	}, nil)

	account := &ydb.Account{AccountID: "acct-1", Kind: string(identity.KindClientDevice)}
	_, err := service.Redeem(ctx, account, "PAIR0002", "tv", "dev-1")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindOwnershipViolation))
	assert.Contains(t, err.Error(), "already registered to staff alpha-staff")
}

func TestRedeemPromotesRegularAccountToClient(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	code := &ydb.AccessCode{
		CodeID: "code-3", Code: "PAIR0003", StaffID: "staff-1", IsActive: true,
	}
	mockDB.On("GetAccessCodeByCode", ctx, "PAIR0003").Return(code, nil)
	mockDB.On("GetClientAccountByAccount", ctx, "acct-9").
		Return(nil, apperrors.NotFound("client account not found"))
	mockDB.On("RedeemAccessCodeTx", ctx,
		mock.MatchedBy(func(a *ydb.Account) bool { return a.Kind == string(identity.KindClientDevice) }),
		mock.MatchedBy(func(c *ydb.ClientAccount) bool {
			return c.StaffID == "staff-1" && c.DeviceName == "lobby-tv" && c.IsActive
		}),
		mock.MatchedBy(func(c *ydb.AccessCode) bool {
			return c.IsUsed && c.ActivatedAt != nil && c.ClientID != nil
		}),
	).Return(nil)

	account := &ydb.Account{AccountID: "acct-9", Kind: string(identity.KindRegularUser)}
	client, err := service.Redeem(ctx, account, "PAIR0003", "lobby-tv", "dev-9")

	require.NoError(t, err)
	assert.Equal(t, "staff-1", client.StaffID)
	mockDB.AssertExpectations(t)
}

func TestDeactivateRejectsForeignCode(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("ListAccessCodesByStaff", ctx, "staff-1").Return([]*ydb.AccessCode{
		{CodeID: "code-1", StaffID: "staff-1"},
	}, nil)

	err := service.Deactivate(ctx, "staff-1", "code-unowned")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindOwnershipViolation))
	mockDB.AssertNotCalled(t, "DeactivateAccessCodeTx", mock.Anything, mock.Anything)
}

func TestDeactivateCascades(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("ListAccessCodesByStaff", ctx, "staff-1").Return([]*ydb.AccessCode{
		{CodeID: "code-1", StaffID: "staff-1"},
	}, nil)
	mockDB.On("DeactivateAccessCodeTx", ctx, "code-1").Return(nil)

	require.NoError(t, service.Deactivate(ctx, "staff-1", "code-1"))
	mockDB.AssertExpectations(t)
}
