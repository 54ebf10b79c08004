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

type (
	MemberCreateInput struct {
		FullName         string     `validate:"required,min=2,max=100"`
		Email            string     `validate:"omitempty,email"`
		Phone            string     `validate:"required,e164"`
		BirthDate        *time.Time `validate:"omitempty"`
		EasyLoginEnabled bool
	}
)

// MemberCreate enrolls a member on their behalf. Operator enrollment skips
// email verification, so the account is active immediately and eligible for
// the easy-login flow regardless of the easy_login_enabled flag.
func (s *Usecase) MemberCreate(ctx context.Context, in MemberCreateInput) error {
	ctx, span := s.startSpan(ctx, "MemberCreate")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermMembershipMgmtMembers, constant.PermActCreate); err != nil {
		return err
	}

	if in.Email != "" {
		member, err := s.repoDB.GetMemberByEmail(ctx, in.Email, true)
		if err == nil && member != nil {
			slog.WarnContext(ctx, "member account is already exists", "email", in.Email)
			return goerror.NewBusiness("member with that email already exists", goerror.CodeConflict)
		}
		if !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo get member by email", "email", in.Email, "error", err)
			return goerror.NewServer(err)
		}
	}

	newMember := entity.NewMember{
		ID:               s.uid.Generate(),
		FullName:         in.FullName,
		Email:            in.Email,
		Phone:            in.Phone,
		BirthDate:        in.BirthDate,
		Status:           entity.MemberStatusActive,
		EnrollMethod:     entity.EnrollMethodOperator,
		EasyLoginEnabled: in.EasyLoginEnabled,
	}

	if err := s.repoDB.NewMember(ctx, newMember); err != nil {
		slog.ErrorContext(ctx, "failed to repo create new member", "new_member", newMember, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
