package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/jwt"
)

type ProfileInput struct{}

type ProfileOutput struct {
	ID               int64
	Email            string
	FullName         string
	Phone            string
	BirthDate        *time.Time
	PhotoURL         string
	Status           string
	EnrollMethod     string
	EasyLoginEnabled bool
}

func (s *Usecase) Profile(ctx context.Context, in ProfileInput) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	member, err := s.repoDB.GetMemberByID(ctx, clm.UserID, false)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "member account not found", "member_id", clm.UserID)
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get member by id", "member_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureMemberStatusAllowed(ctx, member.ID, member.Status); err != nil {
		return nil, err
	}

	return &ProfileOutput{
		ID:               member.ID,
		Email:            member.Email,
		FullName:         member.FullName,
		Phone:            member.Phone,
		BirthDate:        member.BirthDate,
		PhotoURL:         member.PhotoURL,
		Status:           member.Status.String(),
		EnrollMethod:     member.EnrollMethod.String(),
		EasyLoginEnabled: member.EasyLoginEnabled,
	}, nil
}
