package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/sethvargo/go-retry"
)

type OtpStartInput struct {
	Name       string `validate:"required,min=2"`
	PhoneLast4 string `validate:"required,phone_last4"`
	// OriginIP buckets the rate limiter, resolved by the router middleware.
	OriginIP string
}

// OtpStart resolves the claimed identity, issues a one-time code and hands it
// to the delivery gateway. Every processed outcome is reported identically to
// the caller; only malformed input and rate limiting surface as errors.
func (s *Usecase) OtpStart(ctx context.Context, in OtpStartInput) error {
	ctx, span := s.startSpan(ctx, "OtpStart")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if !s.limiter.Allow(ctx, in.OriginIP) {
		slog.WarnContext(ctx, "easy login rate limit exceeded", "origin", in.OriginIP)
		return ErrRateLimited
	}

	member, ok := s.resolve(ctx, in.Name, in.PhoneLast4)
	if !ok {
		// Indistinguishable from the issued path on the wire.
		return nil
	}

	code, err := s.codes.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return nil
	}

	ttl := s.cfg.GetMinute("modules.easylogin.otp_ttl_minutes")
	if err := s.repoDB.CreateChallenge(ctx, entity.Challenge{
		ID:          s.uid.Generate(),
		MemberID:    member.ID,
		Token:       string(codeHash),
		Purpose:     entity.ChallengePurposeEasyLoginOTP,
		ExpiresAt:   s.clock.Now().Add(ttl),
		RequesterIP: in.OriginIP,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create otp challenge", "member_id", member.ID, "error", err)
		return nil
	}

	s.deliverCode(ctx, member.ID, member.Phone, code, ttl)

	return nil
}

// deliverCode sends the plaintext code out-of-band, fire-and-forget. Delivery
// failures are retried briefly, then logged and swallowed; they must never
// alter the HTTP response.
func (s *Usecase) deliverCode(ctx context.Context, memberID int64, phone, code string, ttl time.Duration) {
	body := fmt.Sprintf("Your one-time login code is %s. It expires in %d minutes.", code, int(ttl.Minutes()))

	s.goroutine.Go(context.WithoutCancel(ctx), func(gCtx context.Context) error {
		backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
		err := retry.Do(gCtx, backoff, func(rCtx context.Context) error {
			if err := s.sms.Send(rCtx, phone, body); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			slog.ErrorContext(gCtx, "failed to deliver otp code", "member_id", memberID, "error", err)
		}

		return nil
	})
}
