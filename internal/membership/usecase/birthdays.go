package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/shared/constant"
)

type (
	BirthdaysInput struct {
		Month time.Month `validate:"omitempty,min=1,max=12"`
	}

	BirthdaysOutput struct {
		Month   time.Month
		Members []entity.BirthdayMember
	}
)

func (s *Usecase) Birthdays(ctx context.Context, in BirthdaysInput) (*BirthdaysOutput, error) {
	ctx, span := s.startSpan(ctx, "Birthdays")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermMembershipMgmtMembers, constant.PermActRead); err != nil {
		return nil, err
	}

	month := in.Month
	if month == 0 {
		month = s.clock.Now().Month()
	}

	members, err := s.repoDB.GetBirthdayMembers(ctx, month)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get birthday members", "month", month, "error", err)
		return nil, goerror.NewServer(err)
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].BirthDate.Day() < members[j].BirthDate.Day()
	})

	return &BirthdaysOutput{Month: month, Members: members}, nil
}
