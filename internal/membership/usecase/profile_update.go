package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/jwt"
)

type ProfileUpdateInput struct {
	FullName  string `validate:"required,min=2,max=100"`
	Phone     string `validate:"omitempty,e164"`
	BirthDate *time.Time
}

func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) error {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	member, err := s.repoDB.GetMemberByID(ctx, clm.UserID, false)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "member account not found", "member_id", clm.UserID)
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get member by id", "member_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.ensureMemberStatusAllowed(ctx, member.ID, member.Status); err != nil {
		return err
	}

	if err := s.repoDB.UpdateMemberProfile(ctx, member.ID, in.FullName, in.Phone, in.BirthDate); err != nil {
		slog.ErrorContext(ctx, "failed to update member profile", "member_id", member.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
