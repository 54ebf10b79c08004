package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/jackc/pgx/v5"
)

func (s *DB) begin(ctx context.Context) (pgx.Tx, func(), error) {
	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}

	rollback := func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}
	return tx, rollback, nil
}

const insertMemberQuery = `
	INSERT INTO members (id, full_name, email, phone, birth_date, status, enroll_method, easy_login_enabled, photo_url)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, NULLIF($9, ''))`

func (s *DB) NewRegistration(ctx context.Context, member entity.NewMember, chal entity.Challenge, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "NewRegistration")
	defer func() { s.endSpan(span, err) }()

	tx, rollback, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer rollback()

	_, err = tx.Exec(ctx, insertMemberQuery,
		member.ID, member.FullName, member.Email, member.Phone, member.BirthDate,
		member.Status, member.EnrollMethod, member.EasyLoginEnabled, member.PhotoURL,
	)
	if err != nil {
		return s.mapError(err)
	}

	_, err = tx.Exec(ctx, `INSERT INTO member_credentials (member_id, password) VALUES ($1, $2)`, member.ID, hash)
	if err != nil {
		return s.mapError(err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO challenges (id, member_id, token, purpose, expires_at, attempts, consumed, metadata)
		VALUES ($1, $2, $3, $4, $5, 0, FALSE, $6)`,
		chal.ID, chal.MemberID, chal.Token, chal.Purpose, chal.ExpiresAt, chal.Metadata,
	)
	if err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) NewMember(ctx context.Context, member entity.NewMember) (err error) {
	ctx, span := s.startSpan(ctx, "NewMember")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, insertMemberQuery,
		member.ID, member.FullName, member.Email, member.Phone, member.BirthDate,
		member.Status, member.EnrollMethod, member.EasyLoginEnabled, member.PhotoURL,
	)
	if err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) PatchMember(ctx context.Context, member entity.PatchMember) (err error) {
	ctx, span := s.startSpan(ctx, "PatchMember")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE members
		SET full_name = COALESCE(NULLIF($2, ''), full_name),
			email = COALESCE(NULLIF($3, ''), email),
			phone = COALESCE(NULLIF($4, ''), phone),
			birth_date = COALESCE($5, birth_date),
			status = CASE WHEN $6::smallint > 0 THEN $6::smallint ELSE status END,
			easy_login_enabled = COALESCE($7, easy_login_enabled),
			photo_url = COALESCE(NULLIF($8, ''), photo_url),
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query,
		member.ID, member.FullName, member.Email, member.Phone, member.BirthDate,
		member.Status, member.EasyLoginEnabled, member.PhotoURL,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) UpsertMembers(ctx context.Context, members []entity.UpsertMember) (created, updated int, err error) {
	ctx, span := s.startSpan(ctx, "UpsertMembers")
	defer func() { s.endSpan(span, err) }()

	if len(members) == 0 {
		return 0, 0, nil
	}

	tx, rollback, err := s.begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer rollback()

	const query = `
		INSERT INTO members (id, full_name, email, phone, birth_date, status, enroll_method, easy_login_enabled)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
		ON CONFLICT (phone) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = COALESCE(EXCLUDED.email, members.email),
			birth_date = COALESCE(EXCLUDED.birth_date, members.birth_date),
			status = CASE WHEN EXCLUDED.status > 0 THEN EXCLUDED.status ELSE members.status END,
			easy_login_enabled = EXCLUDED.easy_login_enabled,
			updated_at = NOW()
		RETURNING (xmax = 0)`

	for _, m := range members {
		status := m.Status
		if status.IsUnknown() {
			status = entity.MemberStatusActive
		}

		var inserted bool
		err = tx.QueryRow(ctx, query,
			m.ID, m.FullName, m.Email, m.Phone, m.BirthDate, status, m.EnrollMethod, m.EasyLoginEnabled,
		).Scan(&inserted)
		if err != nil {
			return 0, 0, s.mapError(err)
		}

		if inserted {
			created++
		} else {
			updated++
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, 0, s.mapError(err)
	}

	return created, updated, nil
}

func (s *DB) VerifyMemberRegistration(ctx context.Context, data entity.VerifyMemberRegistration) (err error) {
	ctx, span := s.startSpan(ctx, "VerifyMemberRegistration")
	defer func() { s.endSpan(span, err) }()

	tx, rollback, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer rollback()

	tag, err := tx.Exec(ctx, `UPDATE challenges SET consumed = TRUE WHERE id = $1 AND consumed = FALSE`, data.ChallengeID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	tag, err = tx.Exec(ctx,
		`UPDATE members SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2 AND deleted_at IS NULL`,
		data.MemberID, data.OldStatus, data.NewStatus,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) ResetMemberPassword(ctx context.Context, memberID, challengeID int64, newHash string) (err error) {
	ctx, span := s.startSpan(ctx, "ResetMemberPassword")
	defer func() { s.endSpan(span, err) }()

	tx, rollback, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer rollback()

	tag, err := tx.Exec(ctx, `UPDATE challenges SET consumed = TRUE WHERE id = $1 AND consumed = FALSE`, challengeID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO member_credentials (member_id, password, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (member_id) DO UPDATE SET password = EXCLUDED.password, updated_at = NOW()`,
		memberID, newHash,
	)
	if err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
