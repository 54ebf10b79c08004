package usecase

import (
	"context"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/shared/constant"
)

type StatsOutput struct {
	Stats entity.Stats
}

func (s *Usecase) Stats(ctx context.Context) (*StatsOutput, error) {
	ctx, span := s.startSpan(ctx, "Stats")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermMembershipMgmtStats, constant.PermActRead); err != nil {
		return nil, err
	}

	stats, err := s.repoDB.GetStats(ctx, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get membership stats", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &StatsOutput{Stats: *stats}, nil
}
