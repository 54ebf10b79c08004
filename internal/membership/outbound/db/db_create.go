package db

import (
	"context"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
)

func (s *DB) CreateChallenge(ctx context.Context, in entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "CreateChallenge")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO challenges (id, member_id, token, purpose, expires_at, attempts, consumed, metadata)
		VALUES ($1, $2, $3, $4, $5, 0, FALSE, $6)`

	_, err = s.conn.Exec(ctx, query, in.ID, in.MemberID, in.Token, in.Purpose, in.ExpiresAt, in.Metadata)
	if err != nil {
		return s.mapError(err)
	}

	return nil
}
