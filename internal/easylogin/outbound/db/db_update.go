package db

import (
	"context"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
)

func (s *DB) IncrementChallengeAttempts(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "IncrementChallengeAttempts")
	defer func() { s.endSpan(span, err) }()

	// Atomic on the row so two concurrent wrong guesses cannot lose an
	// increment and defeat the attempt cap.
	tag, err := s.conn.Exec(ctx, `UPDATE challenges SET attempts = attempts + 1 WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) ConsumeChallenge(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "ConsumeChallenge")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE challenges
		SET consumed = TRUE, attempts = attempts + 1
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

func (s *DB) SetMemberPassword(ctx context.Context, memberID int64, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "SetMemberPassword")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO member_credentials (member_id, password, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (member_id) DO UPDATE SET password = EXCLUDED.password, updated_at = NOW()`

	_, err = s.conn.Exec(ctx, query, memberID, hash)
	return s.mapError(err)
}
