// Package otp verifies mobile numbers through Twilio Verify. Verification
// is the sole gate before account creation; an unreachable provider fails
// the signup outright.
package otp

import (
	"context"
	"log/slog"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/config"
	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

// Sender sends and checks one-time codes.
type Sender interface {
	Send(ctx context.Context, phone string) error
	Check(ctx context.Context, phone, code string) (bool, error)
}

// TwilioSender backs Sender with the Twilio Verify service.
type TwilioSender struct {
	client     *twilio.RestClient
	serviceSID string
	logger     *slog.Logger
}

func NewTwilioSender(cfg *config.Config, logger *slog.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &TwilioSender{
		client:     client,
		serviceSID: cfg.TwilioVerifyServiceSID,
		logger:     logger,
	}
}

func (s *TwilioSender) Send(ctx context.Context, phone string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel("sms")

	_, err := s.client.VerifyV2.CreateVerification(s.serviceSID, params)
	if err != nil {
		s.logger.Error("failed to send verification code", "error", err)
		return apperrors.ExternalService("failed to send verification code", err)
	}
	return nil
}

func (s *TwilioSender) Check(ctx context.Context, phone, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	resp, err := s.client.VerifyV2.CreateVerificationCheck(s.serviceSID, params)
	if err != nil {
		s.logger.Error("failed to check verification code", "error", err)
		return false, apperrors.ExternalService("failed to check verification code", err)
	}
	return resp.Status != nil && *resp.Status == "approved", nil
}
