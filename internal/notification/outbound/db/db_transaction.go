package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/jackc/pgx/v5"
)

func (s *DB) UpsertMemberSettings(ctx context.Context, memberID int64, settings []entity.MemberSetting) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertMemberSettings")
	defer func() { s.endSpan(span, err) }()

	if len(settings) == 0 {
		return nil
	}

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return s.mapError(err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	const query = `
		INSERT INTO notification_member_settings (member_id, category_id, channel, is_enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (member_id, category_id, channel) DO UPDATE SET is_enabled = EXCLUDED.is_enabled`

	for _, setting := range settings {
		if _, err = tx.Exec(ctx, query, memberID, setting.CategoryID, setting.Channel, setting.IsEnabled); err != nil {
			return s.mapError(err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
