package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/jwt"
)

type PasswordChangeInput struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,password"`
}

func (s *Usecase) PasswordChange(ctx context.Context, in PasswordChangeInput) error {
	ctx, span := s.startSpan(ctx, "PasswordChange")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	member, err := s.repoDB.GetMemberCredentialInfo(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "member account not found", "member_id", clm.UserID)
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get member credential info", "member_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.ensureMemberStatusAllowed(ctx, member.ID, member.Status); err != nil {
		return err
	}

	if !s.bcrypt.Verify(member.Password, in.CurrentPassword) {
		slog.WarnContext(ctx, "current password mismatch", "member_id", member.ID)
		return goerror.NewBusiness("invalid password", goerror.CodeUnauthorized)
	}

	newHash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "member_id", member.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateMemberCredential(ctx, member.ID, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to update member password", "member_id", member.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
