package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
)

type RegisterInput struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,password"`
	FullName  string `validate:"required,min=2,max=100"`
	Phone     string `validate:"omitempty,e164"`
	BirthDate *time.Time
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	member, err := s.repoDB.GetMemberByEmail(ctx, in.Email, true)
	if err == nil {
		switch member.Status {
		case entity.MemberStatusActive:
			return goerror.NewBusiness("Email already registered", goerror.CodeConflict)
		case entity.MemberStatusUnverified:
			return goerror.NewBusiness("Account not verified", goerror.CodeConflict)
		case entity.MemberStatusInactive:
			return goerror.NewBusiness("Account deactivated", goerror.CodeConflict)
		default:
			return goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
		}
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get member by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	newMember := entity.NewMember{
		ID:           s.uid.Generate(),
		Email:        in.Email,
		FullName:     in.FullName,
		Phone:        in.Phone,
		BirthDate:    in.BirthDate,
		Status:       entity.MemberStatusUnverified,
		EnrollMethod: entity.EnrollMethodSelf,
	}

	cToken := s.oid.Generate()
	cTokenHash, err := s.hmac.Hash(cToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash token challenge", "error", err)
		return goerror.NewServer(err)
	}

	challenge := entity.Challenge{
		ID:        s.uid.Generate(),
		MemberID:  newMember.ID,
		Token:     string(cTokenHash),
		Purpose:   entity.ChallengePurposeRegisterVerify,
		ExpiresAt: s.clock.Now().Add(s.cfg.GetHour("modules.membership.registration_ttl_hours")),
	}

	if err := s.repoDB.NewRegistration(ctx, newMember, challenge, string(hashedPassword)); err != nil {
		slog.ErrorContext(ctx, "failed to repo member registration", "email", newMember.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishMemberRegistered(ctx, MemberRegisteredEvent{
		MemberID:       newMember.ID,
		Email:          newMember.Email,
		FullName:       newMember.FullName,
		ChallengeToken: cToken,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish member registered", "member_id", newMember.ID, "error", err)
	}

	return nil
}
