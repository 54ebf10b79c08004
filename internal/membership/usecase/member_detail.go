package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/shared/constant"
)

type (
	MemberDetailInput struct {
		ID int64 `validate:"required,gt=0"`
	}

	MemberDetailOutput struct {
		Member entity.Member
	}
)

func (s *Usecase) MemberDetail(ctx context.Context, in MemberDetailInput) (*MemberDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "MemberDetail")
	defer span.End()

	_, err := s.authenticatedAndAuthorized(ctx, constant.PermMembershipMgmtMembers, constant.PermActRead)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	member, err := s.repoDB.GetMemberByID(ctx, in.ID, false)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "member not found", "member_id", in.ID)
		return nil, goerror.NewBusiness("member not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get member by id", "member_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MemberDetailOutput{Member: *member}, nil
}
