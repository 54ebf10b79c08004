package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/idempotency"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/shared/constant"
)

type (
	MemberImportMemberInput struct {
		FullName         string              `validate:"required,min=2,max=100"`
		Email            string              `validate:"omitempty,email"`
		Phone            string              `validate:"required,e164"`
		BirthDate        *time.Time          `validate:"omitempty"`
		Status           entity.MemberStatus `validate:"omitempty,gt=0"`
		EasyLoginEnabled bool
	}

	MemberImportInput struct {
		IdempotencyKey string                    `validate:"required,min=8,max=128"`
		Members        []MemberImportMemberInput `validate:"required,min=1,max=10000,unique=Phone,dive"`
	}

	MemberImportOutput struct {
		Created int
		Updated int
	}
)

func (s *Usecase) MemberImport(ctx context.Context, in MemberImportInput) (*MemberImportOutput, error) {
	ctx, span := s.startSpan(ctx, "MemberImport")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermMembershipMgmtMembers, constant.PermActCreate); err != nil {
		return nil, err
	}

	members := make([]entity.UpsertMember, 0, len(in.Members))
	for _, item := range in.Members {
		members = append(members, entity.UpsertMember{
			ID:               s.uid.Generate(),
			FullName:         strings.TrimSpace(item.FullName),
			Email:            strings.TrimSpace(strings.ToLower(item.Email)),
			Phone:            strings.TrimSpace(item.Phone),
			BirthDate:        item.BirthDate,
			Status:           item.Status.Ensure(),
			EnrollMethod:     entity.EnrollMethodOperator,
			EasyLoginEnabled: item.EasyLoginEnabled,
		})
	}

	var out MemberImportOutput
	err := s.idemp.Exec(ctx, "membership:import:"+in.IdempotencyKey, func(ctx context.Context) error {
		created, updated, err := s.repoDB.UpsertMembers(ctx, members)
		if err != nil {
			return err
		}
		out.Created = created
		out.Updated = updated
		return nil
	}, idempotency.WithStateTTL(24*time.Hour))
	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		slog.WarnContext(ctx, "member import replayed", "key", in.IdempotencyKey)
		return nil, goerror.NewBusiness("import with that key was already submitted", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert members", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MemberImportOutput{Created: out.Created, Updated: out.Updated}, nil
}
