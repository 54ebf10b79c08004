package usecase

import (
	"context"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
)

type ListInboxInput struct {
	Status string `validate:"omitempty,oneof=all unread read"`
	Limit  int32  `validate:"omitempty,gte=1,lte=100"`
	Offset int32  `validate:"omitempty,gte=0"`
}

// ListInboxOutput carries one inbox page together with the total unread
// count, which backs the badge in the member app.
type ListInboxOutput struct {
	Items       []entity.NotificationItem
	UnreadCount int64
}

func (s *Usecase) ListInbox(ctx context.Context, in ListInboxInput) (_ *ListInboxOutput, err error) {
	ctx, span := s.startSpan(ctx, "ListInbox")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if in.Status == "" {
		in.Status = string(entity.NotificationStatusAll)
	}
	if in.Limit == 0 {
		in.Limit = 20
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	items, err := s.repoDB.ListNotifications(ctx, clm.UserID, entity.NotificationStatus(in.Status), in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list notifications", "member_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	unread, err := s.repoDB.CountUnreadNotifications(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count unread notifications", "member_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListInboxOutput{Items: items, UnreadCount: unread}, nil
}
