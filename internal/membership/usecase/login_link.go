package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
)

type LoginLinkInput struct {
	Token string `validate:"required"`
}

type LoginLinkOutput struct {
	AccessToken string
}

// LoginLink exchanges a single-use sign-in token, minted by the easy-login
// flow, for an access token. The token is consumed on first use.
func (s *Usecase) LoginLink(ctx context.Context, in LoginLinkInput) (*LoginLinkOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginLink")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	tokenHash, err := s.hmac.Hash(in.Token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash login link token", "error", err)
		return nil, goerror.NewServer(err)
	}

	chm, err := s.repoDB.GetChallengeMemberByTokenPurpose(ctx, string(tokenHash), entity.ChallengePurposeLoginLink)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("sign-in link is invalid or expired", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get challenge by token", "error", err)
		return nil, goerror.NewServer(err)
	}

	if chm.Consumed || s.clock.Now().After(chm.ExpiresAt) {
		return nil, goerror.NewBusiness("sign-in link is invalid or expired", goerror.CodeUnauthorized)
	}

	if err := s.ensureMemberStatusAllowed(ctx, chm.MemberID, chm.MemberStatus); err != nil {
		return nil, err
	}

	if err := s.repoDB.ConsumeChallenge(ctx, chm.ChallengeID); err != nil {
		// A concurrent consume of the same link must not yield two sessions.
		slog.WarnContext(ctx, "failed to consume login link challenge", "challenge_id", chm.ChallengeID, "error", err)
		return nil, goerror.NewBusiness("sign-in link is invalid or expired", goerror.CodeUnauthorized)
	}

	acToken, err := s.jwt.Generate(chm.MemberID, chm.MemberEmail)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "member_id", chm.MemberID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginLinkOutput{AccessToken: acToken}, nil
}
