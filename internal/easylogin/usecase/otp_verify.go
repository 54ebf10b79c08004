package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
)

type OtpVerifyInput struct {
	Name       string `validate:"required,min=2"`
	PhoneLast4 string `validate:"required,phone_last4"`
	Code       string `validate:"required,otp_code"`
	OriginIP   string
}

type OtpVerifyOutput struct {
	Success bool
	Message string
	Grant   *entity.SessionGrant
}

func failure(msg string) *OtpVerifyOutput {
	return &OtpVerifyOutput{Success: false, Message: msg}
}

// OtpVerify re-resolves the claimed identity, checks the submitted code
// against the newest challenge and mints a session grant on a match. Only
// malformed input surfaces as an error; every other outcome is a response.
func (s *Usecase) OtpVerify(ctx context.Context, in OtpVerifyInput) (*OtpVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpVerify")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	member, ok := s.resolve(ctx, in.Name, in.PhoneLast4)
	if !ok {
		return failure(msgVerifyFail), nil
	}

	ch, err := s.repoDB.GetNewestChallenge(ctx, member.ID, entity.ChallengePurposeEasyLoginOTP)
	if err != nil {
		if !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo get newest challenge", "member_id", member.ID, "error", err)
		}
		return failure(msgVerifyFail), nil
	}

	if ch.Consumed {
		return failure(msgCodeUsed), nil
	}

	if s.clock.Now().After(ch.ExpiresAt) {
		return failure(msgCodeExpired), nil
	}

	if ch.Attempts >= maxAttempts {
		return failure(msgExhausted), nil
	}

	if !s.hmac.Verify(ch.Token, in.Code) {
		// The increment must land even though the check failed, so the cap
		// stays effective across retries.
		if err := s.repoDB.IncrementChallengeAttempts(ctx, ch.ID); err != nil {
			slog.ErrorContext(ctx, "failed to repo increment challenge attempts", "challenge_id", ch.ID, "error", err)
		}
		return failure(msgWrongCode), nil
	}

	if err := s.repoDB.ConsumeChallenge(ctx, ch.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo consume challenge", "challenge_id", ch.ID, "error", err)
		return failure(msgVerifyFail), nil
	}

	grant, err := s.issueSessionGrant(ctx, member)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue session grant", "member_id", member.ID, "error", err)
		return failure(msgVerifyFail), nil
	}

	return &OtpVerifyOutput{Success: true, Message: msgVerified, Grant: grant}, nil
}
