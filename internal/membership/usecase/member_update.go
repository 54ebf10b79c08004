package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/shared/constant"
)

type MemberUpdateInput struct {
	ID               int64               `validate:"required,gt=0"`
	Email            string              `validate:"omitempty,email"`
	FullName         string              `validate:"omitempty,min=2,max=100"`
	Phone            string              `validate:"omitempty,e164"`
	BirthDate        *time.Time          `validate:"omitempty"`
	Status           entity.MemberStatus `validate:"omitempty,gt=0"`
	EasyLoginEnabled *bool
}

func (s *Usecase) MemberUpdate(ctx context.Context, in MemberUpdateInput) error {
	ctx, span := s.startSpan(ctx, "MemberUpdate")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermMembershipMgmtMembers, constant.PermActUpdate); err != nil {
		return err
	}

	member, err := s.repoDB.GetMemberByID(ctx, in.ID, false)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "member not found", "member_id", in.ID)
		return goerror.NewBusiness("member not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get member by id", "member_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	if in.Email != "" && in.Email != member.Email {
		checkEmail, err := s.repoDB.GetMemberByEmail(ctx, in.Email, true)
		if err == nil && checkEmail != nil {
			slog.WarnContext(ctx, "member account is already exists", "email", in.Email)
			return goerror.NewBusiness("member with that email already exists", goerror.CodeConflict)
		}
		if !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo get member by email", "email", in.Email, "error", err)
			return goerror.NewServer(err)
		}
	}

	patchMember := entity.PatchMember{
		ID:               member.ID,
		Email:            in.Email,
		FullName:         in.FullName,
		Phone:            in.Phone,
		BirthDate:        in.BirthDate,
		Status:           in.Status.Ensure(),
		EasyLoginEnabled: in.EasyLoginEnabled,
	}
	if err := s.repoDB.PatchMember(ctx, patchMember); err != nil {
		slog.ErrorContext(ctx, "failed to repo patch member", "member_id", member.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
