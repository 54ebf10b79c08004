package db

import (
	"context"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/entity"
)

func (s *DB) CreateChallenge(ctx context.Context, in entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "CreateChallenge")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO challenges (id, member_id, token, purpose, expires_at, attempts, consumed, requester_ip, metadata)
		VALUES ($1, $2, $3, $4, $5, 0, FALSE, NULLIF($6, ''), $7)`

	_, err = s.conn.Exec(ctx, query, in.ID, in.MemberID, in.Token, in.Purpose, in.ExpiresAt, in.RequesterIP, in.Metadata)
	return s.mapError(err)
}
