package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/shared/constant"
)

type (
	MemberDeleteInput struct {
		ID int64 `validate:"required,gt=0"`
	}
)

func (s *Usecase) MemberDelete(ctx context.Context, in MemberDeleteInput) error {
	ctx, span := s.startSpan(ctx, "MemberDelete")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermMembershipMgmtMembers, constant.PermActDelete); err != nil {
		return err
	}

	member, err := s.repoDB.GetMemberByID(ctx, in.ID, true)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "member not found", "member_id", in.ID)
		return goerror.NewBusiness("member not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get member by id", "member_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	if member.DeletedAt != nil {
		return nil
	}

	if err := s.repoDB.MarkMemberDeleted(ctx, member.ID); err != nil {
		slog.ErrorContext(ctx, "failed to mark member deleted", "member_id", member.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
