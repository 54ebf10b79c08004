package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	AccessToken string
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.TrimSpace(in.Email)
	member, err := s.repoDB.GetMemberLoginInfo(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "member account not found", "email", email)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get member by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureMemberStatusAllowed(ctx, member.ID, member.Status); err != nil {
		return nil, err
	}

	if !s.bcrypt.Verify(member.Password, in.Password) {
		slog.WarnContext(ctx, "password member account not match", "member_id", member.ID)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}

	acToken, err := s.jwt.Generate(member.ID, member.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "member_id", member.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{AccessToken: acToken}, nil
}
