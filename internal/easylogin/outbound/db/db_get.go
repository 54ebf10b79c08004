package db

import (
	"context"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/entity"
)

func (s *DB) GetMembersByName(ctx context.Context, name string, limit int32) (_ []entity.Member, err error) {
	ctx, span := s.startSpan(ctx, "GetMembersByName")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, full_name, COALESCE(email, ''), COALESCE(phone, ''), status, enroll_method, easy_login_enabled
		FROM members
		WHERE LOWER(full_name) = LOWER($1) AND deleted_at IS NULL
		ORDER BY created_at
		LIMIT $2`

	rows, err := s.conn.Query(ctx, query, name, limit)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var members []entity.Member
	for rows.Next() {
		var m entity.Member
		if err = rows.Scan(&m.ID, &m.FullName, &m.Email, &m.Phone, &m.Status, &m.EnrollMethod, &m.EasyLoginEnabled); err != nil {
			return nil, s.mapError(err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return members, nil
}

func (s *DB) GetNewestChallenge(ctx context.Context, memberID int64, purpose entity.ChallengePurpose) (_ *entity.Challenge, err error) {
	ctx, span := s.startSpan(ctx, "GetNewestChallenge")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, member_id, token, purpose, expires_at, attempts, consumed, COALESCE(requester_ip, ''), metadata, created_at
		FROM challenges
		WHERE member_id = $1 AND purpose = $2
		ORDER BY created_at DESC
		LIMIT 1`

	var ch entity.Challenge
	err = s.conn.QueryRow(ctx, query, memberID, purpose).Scan(
		&ch.ID,
		&ch.MemberID,
		&ch.Token,
		&ch.Purpose,
		&ch.ExpiresAt,
		&ch.Attempts,
		&ch.Consumed,
		&ch.RequesterIP,
		&ch.Metadata,
		&ch.CreatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &ch, nil
}
