package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) error {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	member, err := s.repoDB.GetMemberByEmail(ctx, in.Email, false)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset requested for unavailable member", "email", in.Email)
		return nil
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to repo get member by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.ensureMemberStatusAllowed(ctx, member.ID, member.Status); err != nil {
		slog.WarnContext(ctx, "password reset requested for ineligible member", "member_id", member.ID, "status", member.Status.String(), "error", err)
		return nil
	}

	cToken := s.oid.Generate()
	cTokenHash, err := s.hmac.Hash(cToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash token", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.CreateChallenge(ctx, entity.Challenge{
		ID:        s.uid.Generate(),
		MemberID:  member.ID,
		Token:     string(cTokenHash),
		Purpose:   entity.ChallengePurposePasswordReset,
		ExpiresAt: s.clock.Now().Add(s.cfg.GetHour("modules.membership.password_reset_ttl_hours")),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create password reset challenge", "member_id", member.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishMemberForgotPassword(ctx, MemberForgotPasswordEvent{
		MemberID:       member.ID,
		Email:          member.Email,
		ChallengeToken: cToken,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish member forgot password", "member_id", member.ID, "error", err)
	}

	return nil
}
