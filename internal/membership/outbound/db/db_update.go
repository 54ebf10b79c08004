package db

import (
	"context"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
)

func (s *DB) ConsumeChallenge(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "ConsumeChallenge")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE challenges
		SET consumed = TRUE
		WHERE id = $1 AND consumed = FALSE`

	tag, err := s.conn.Exec(ctx, query, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) UpdateMemberCredential(ctx context.Context, memberID int64, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateMemberCredential")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO member_credentials (member_id, password, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (member_id) DO UPDATE SET password = EXCLUDED.password, updated_at = NOW()`

	_, err = s.conn.Exec(ctx, query, memberID, hash)
	if err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) UpdateMemberProfile(ctx context.Context, id int64, fullName, phone string, birthDate *time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateMemberProfile")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE members
		SET full_name = $2,
			phone = NULLIF($3, ''),
			birth_date = COALESCE($4, birth_date),
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, fullName, phone, birthDate)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) UpdateMemberPhoto(ctx context.Context, id int64, photoURL string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateMemberPhoto")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE members
		SET photo_url = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, photoURL)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) MarkMemberDeleted(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkMemberDeleted")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE members
		SET status = $2, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, entity.MemberStatusInactive)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
