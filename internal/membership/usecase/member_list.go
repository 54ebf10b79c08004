package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/shared/constant"
)

type MemberListInput struct {
	Search    string // value already trimmed
	Statuses  []string
	DateFrom  time.Time
	DateTo    time.Time
	Size      int32
	Page      int32
	SortBy    string // value already trimmed
	SortOrder string // value is: `asc` or `desc`; already trimmed and lowered
}

type MemberListOutput struct {
	Page    int32
	Size    int32
	Total   int64
	Members []entity.Member
}

func (s *Usecase) MemberList(ctx context.Context, in MemberListInput) (*MemberListOutput, error) {
	ctx, span := s.startSpan(ctx, "ListMembers")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermMembershipMgmtMembers, constant.PermActRead); err != nil {
		return nil, err
	}

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}
	filterData := entity.MemberListFilterData{
		OrderBy:        in.SortBy,
		OrderDirection: in.SortOrder,
		Search:         in.Search,
		Statuses:       entity.ToInt16Slice(entity.ParseSafeMemberStatuses(in.Statuses)),
		DateFrom:       in.DateFrom,
		DateTo:         in.DateTo,
		Size:           in.Size,
		Page:           (max(in.Page, 1) - 1) * in.Size,
	}
	if in.Search != "" {
		filterData.IsFilterBySearch = true
	}
	if len(filterData.Statuses) > 0 {
		filterData.IsFilterByStatus = true
	}

	members, count, err := s.repoDB.GetMemberList(ctx, filterData)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list members", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MemberListOutput{
		Page:    max(in.Page, 1),
		Size:    in.Size,
		Total:   count,
		Members: members,
	}, nil
}
