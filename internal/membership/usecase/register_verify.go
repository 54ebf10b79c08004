package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
)

type RegisterVerifyInput struct {
	ChallengeToken string `validate:"required"`
}

func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) error {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	cTokenHash, err := s.hmac.Hash(in.ChallengeToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash token challenge", "error", err)
		return goerror.NewServer(err)
	}

	cm, err := s.repoDB.GetChallengeMemberByTokenPurpose(ctx, string(cTokenHash), entity.ChallengePurposeRegisterVerify)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "challenge member not found")
		return goerror.NewBusiness("invalid verification token", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get challenge member by token purpose", "error", err)
		return goerror.NewServer(err)
	}

	if cm.Consumed || s.clock.Now().After(cm.ExpiresAt) {
		return goerror.NewBusiness("invalid verification token", goerror.CodeUnauthorized)
	}

	switch cm.MemberStatus.Ensure() {
	case entity.MemberStatusActive:
		// Already verified; burn the token so it cannot be replayed.
		if err := s.repoDB.ConsumeChallenge(ctx, cm.ChallengeID); err != nil {
			slog.ErrorContext(ctx, "failed to repo consume challenge", "challenge_id", cm.ChallengeID, "error", err)
			return goerror.NewServer(err)
		}

		return nil

	case entity.MemberStatusBanned:
		return goerror.NewBusiness("member account is banned", goerror.CodeForbidden)

	case entity.MemberStatusUnverified:
		if err := s.repoDB.VerifyMemberRegistration(ctx, entity.VerifyMemberRegistration{
			ChallengeID: cm.ChallengeID,
			MemberID:    cm.MemberID,
			OldStatus:   entity.MemberStatusUnverified,
			NewStatus:   entity.MemberStatusActive,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to repo verify member registration", "member_id", cm.MemberID, "challenge_id", cm.ChallengeID, "error", err)
			return goerror.NewServer(err)
		}

		return nil

	default:
		slog.WarnContext(ctx, "unknown member status", "member_id", cm.MemberID, "status", cm.MemberStatus.String())
		return goerror.NewBusiness("account status is unrecognized", goerror.CodeForbidden)
	}
}
