package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/jackc/pgx/v5"
)

const insertNotificationQuery = `
	INSERT INTO notifications (id, member_id, category_id, trigger_key, data, metadata)
	VALUES ($1, $2, $3, $4, $5, $6)`

func (s *DB) RegisterMemberDevice(ctx context.Context, memberID int64, deviceToken, platform string) (err error) {
	ctx, span := s.startSpan(ctx, "RegisterMemberDevice")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO notification_member_devices (member_id, device_token, platform)
		VALUES ($1, $2, $3)
		ON CONFLICT (device_token) DO UPDATE SET member_id = EXCLUDED.member_id, platform = EXCLUDED.platform`

	_, err = s.conn.Exec(ctx, query, memberID, deviceToken, platform)
	return s.mapError(err)
}

func (s *DB) CreateNotification(ctx context.Context, data entity.CreateNotification) (err error) {
	ctx, span := s.startSpan(ctx, "CreateNotification")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, insertNotificationQuery,
		data.ID, data.MemberID, data.CategoryID, data.TriggerKey.String(), data.Data, data.Metadata,
	)
	return s.mapError(err)
}

func (s *DB) CreateNotificationWithDeliveryLog(ctx context.Context, n entity.CreateNotification, dl entity.CreateDeliveryLog) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CreateNotificationWithDeliveryLog")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	_, err = tx.Exec(ctx, insertNotificationQuery,
		n.ID, n.MemberID, n.CategoryID, n.TriggerKey.String(), n.Data, n.Metadata,
	)
	if err != nil {
		return 0, s.mapError(err)
	}

	var logID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO notification_delivery_logs (notification_id, channel, status)
		VALUES ($1, $2, $3)
		RETURNING id`,
		dl.NotificationID, dl.Channel, dl.Status,
	).Scan(&logID)
	if err != nil {
		return 0, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	return logID, nil
}
