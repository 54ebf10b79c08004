package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
)

type PasswordResetInput struct {
	ChallengeToken string `validate:"required"`
	NewPassword    string `validate:"required,password"`
}

func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	cTokenHash, err := s.hmac.Hash(in.ChallengeToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash token", "error", err)
		return goerror.NewServer(err)
	}

	cm, err := s.repoDB.GetChallengeMemberByTokenPurpose(ctx, string(cTokenHash), entity.ChallengePurposePasswordReset)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("invalid or expired reset token", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get challenge member by token purpose", "error", err)
		return goerror.NewServer(err)
	}

	if cm.Consumed || s.clock.Now().After(cm.ExpiresAt) {
		return goerror.NewBusiness("invalid or expired reset token", goerror.CodeUnauthorized)
	}

	if err := s.ensureMemberStatusAllowed(ctx, cm.MemberID, cm.MemberStatus); err != nil {
		return err
	}

	newHash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "member_id", cm.MemberID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.ResetMemberPassword(ctx, cm.MemberID, cm.ChallengeID, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to update member password", "member_id", cm.MemberID, "challenge_id", cm.ChallengeID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
