package usecase

import (
	"context"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/entity"
)

// issueSessionGrant produces the authenticated entry point for a verified
// member. The preferred strategy is a single-use sign-in link; when the link
// cannot be minted (no email on file, or the challenge store refuses the
// write) it falls back to setting a fresh one-time password on the account.
// Exactly one strategy is used per successful verification.
func (s *Usecase) issueSessionGrant(ctx context.Context, m *entity.Member) (*entity.SessionGrant, error) {
	if m.Email != "" {
		grant, err := s.issueLoginLink(ctx, m)
		if err == nil {
			return grant, nil
		}
		slog.WarnContext(ctx, "login link unavailable, falling back to one-time password", "member_id", m.ID, "error", err)
	}

	return s.issueTempPassword(ctx, m)
}

func (s *Usecase) issueLoginLink(ctx context.Context, m *entity.Member) (*entity.SessionGrant, error) {
	token := s.oid.Generate()

	tokenHash, err := s.hmac.Hash(token)
	if err != nil {
		return nil, err
	}

	if err := s.repoDB.CreateChallenge(ctx, entity.Challenge{
		ID:        s.uid.Generate(),
		MemberID:  m.ID,
		Token:     string(tokenHash),
		Purpose:   entity.ChallengePurposeLoginLink,
		ExpiresAt: s.clock.Now().Add(s.cfg.GetMinute("modules.easylogin.login_link_ttl_minutes")),
	}); err != nil {
		return nil, err
	}

	return &entity.SessionGrant{
		Method:    entity.GrantMethodMagicLink,
		Email:     m.Email,
		MagicLink: s.cfg.GetString("modules.easylogin.login_link_base_url") + "?token=" + token,
	}, nil
}

func (s *Usecase) issueTempPassword(ctx context.Context, m *entity.Member) (*entity.SessionGrant, error) {
	password := s.oid.Generate()

	passwordHash, err := s.bcrypt.Hash(password)
	if err != nil {
		return nil, err
	}

	if err := s.repoDB.SetMemberPassword(ctx, m.ID, string(passwordHash)); err != nil {
		return nil, err
	}

	return &entity.SessionGrant{
		Method:       entity.GrantMethodPassword,
		Email:        m.Email,
		TempPassword: password,
	}, nil
}
