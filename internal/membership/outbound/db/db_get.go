package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
)

const memberColumns = `
	id, full_name, COALESCE(email, ''), COALESCE(phone, ''), birth_date,
	status, enroll_method, easy_login_enabled, COALESCE(photo_url, ''), updated_at, deleted_at`

func scanMember(row interface{ Scan(dest ...any) error }) (*entity.Member, error) {
	var m entity.Member
	err := row.Scan(
		&m.ID,
		&m.FullName,
		&m.Email,
		&m.Phone,
		&m.BirthDate,
		&m.Status,
		&m.EnrollMethod,
		&m.EasyLoginEnabled,
		&m.PhotoURL,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *DB) GetMemberLoginInfo(ctx context.Context, email string) (_ *entity.MemberLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetMemberLoginInfo")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT m.id, m.email, m.status, c.password
		FROM members m
		JOIN member_credentials c ON c.member_id = m.id
		WHERE LOWER(m.email) = LOWER($1) AND m.deleted_at IS NULL`

	var info entity.MemberLoginInfo
	err = s.conn.QueryRow(ctx, query, email).Scan(&info.ID, &info.Email, &info.Status, &info.Password)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &info, nil
}

func (s *DB) GetMemberCredentialInfo(ctx context.Context, id int64) (_ *entity.MemberCredentialInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetMemberCredentialInfo")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT m.id, COALESCE(m.email, ''), m.status, c.password
		FROM members m
		JOIN member_credentials c ON c.member_id = m.id
		WHERE m.id = $1 AND m.deleted_at IS NULL`

	var info entity.MemberCredentialInfo
	err = s.conn.QueryRow(ctx, query, id).Scan(&info.ID, &info.Email, &info.Status, &info.Password)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &info, nil
}

func (s *DB) GetChallengeMemberByTokenPurpose(ctx context.Context, token string, p entity.ChallengePurpose) (_ *entity.ChallengeMember, err error) {
	ctx, span := s.startSpan(ctx, "GetChallengeMemberByTokenPurpose")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT ch.id, ch.purpose, ch.token, ch.consumed, ch.expires_at, m.id, COALESCE(m.email, ''), m.status
		FROM challenges ch
		JOIN members m ON m.id = ch.member_id
		WHERE ch.token = $1 AND ch.purpose = $2 AND m.deleted_at IS NULL`

	var cm entity.ChallengeMember
	err = s.conn.QueryRow(ctx, query, token, p).Scan(
		&cm.ChallengeID,
		&cm.ChallengePurpose,
		&cm.ChallengeToken,
		&cm.Consumed,
		&cm.ExpiresAt,
		&cm.MemberID,
		&cm.MemberEmail,
		&cm.MemberStatus,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &cm, nil
}

func (s *DB) GetMemberByEmail(ctx context.Context, email string, includeDeleted bool) (_ *entity.Member, err error) {
	ctx, span := s.startSpan(ctx, "GetMemberByEmail")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + memberColumns + ` FROM members WHERE LOWER(email) = LOWER($1)`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	member, err := scanMember(s.conn.QueryRow(ctx, query, email))
	if err != nil {
		return nil, s.mapError(err)
	}

	return member, nil
}

func (s *DB) GetMemberByID(ctx context.Context, id int64, includeDeleted bool) (_ *entity.Member, err error) {
	ctx, span := s.startSpan(ctx, "GetMemberByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	member, err := scanMember(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return member, nil
}

//nolint:gochecknoglobals // allowlist for ORDER BY interpolation
var memberSortColumns = map[string]string{
	"full_name":  "full_name",
	"email":      "email",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"status":     "status",
}

func (s *DB) GetMemberList(ctx context.Context, filter entity.MemberListFilterData) (_ []entity.Member, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetMemberList")
	defer func() { s.endSpan(span, err) }()

	where := []string{"deleted_at IS NULL"}
	args := []any{}

	if filter.IsFilterBySearch {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n))
	}
	if filter.IsFilterByStatus {
		args = append(args, filter.Statuses)
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if !filter.DateFrom.IsZero() {
		args = append(args, filter.DateFrom)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filter.DateTo.IsZero() {
		args = append(args, filter.DateTo)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	if err = s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM members WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	orderBy, ok := memberSortColumns[filter.OrderBy]
	if !ok {
		orderBy = "created_at"
	}
	direction := "ASC"
	if filter.OrderDirection == "desc" {
		direction = "DESC"
	}

	args = append(args, filter.Size, filter.Page)
	query := fmt.Sprintf(
		`SELECT %s FROM members WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		memberColumns, whereClause, orderBy, direction, len(args)-1, len(args),
	)

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	var members []entity.Member
	for rows.Next() {
		m, sErr := scanMember(rows)
		if sErr != nil {
			err = sErr
			return nil, 0, s.mapError(err)
		}
		members = append(members, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return members, total, nil
}

func (s *DB) GetBirthdayMembers(ctx context.Context, month time.Month) (_ []entity.BirthdayMember, err error) {
	ctx, span := s.startSpan(ctx, "GetBirthdayMembers")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, full_name, COALESCE(phone, ''), COALESCE(photo_url, ''), birth_date
		FROM members
		WHERE birth_date IS NOT NULL
			AND EXTRACT(MONTH FROM birth_date) = $1
			AND status = $2
			AND deleted_at IS NULL
		ORDER BY EXTRACT(DAY FROM birth_date), full_name`

	rows, err := s.conn.Query(ctx, query, int(month), entity.MemberStatusActive)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var members []entity.BirthdayMember
	for rows.Next() {
		var m entity.BirthdayMember
		if err = rows.Scan(&m.ID, &m.FullName, &m.Phone, &m.PhotoURL, &m.BirthDate); err != nil {
			return nil, s.mapError(err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return members, nil
}

func (s *DB) GetStats(ctx context.Context, now time.Time) (_ *entity.Stats, err error) {
	ctx, span := s.startSpan(ctx, "GetStats")
	defer func() { s.endSpan(span, err) }()

	stats := entity.Stats{
		ByStatus:       map[string]int64{},
		ByEnrollMethod: map[string]int64{},
	}

	const totalsQuery = `
		SELECT status, enroll_method, COUNT(*)
		FROM members
		WHERE deleted_at IS NULL
		GROUP BY status, enroll_method`

	rows, err := s.conn.Query(ctx, totalsQuery)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status entity.MemberStatus
			method entity.EnrollMethod
			count  int64
		)
		if err = rows.Scan(&status, &method, &count); err != nil {
			return nil, s.mapError(err)
		}
		stats.TotalMembers += count
		stats.ByStatus[status.String()] += count
		stats.ByEnrollMethod[method.String()] += count
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	const scalarsQuery = `
		SELECT
			(SELECT COUNT(*) FROM members
				WHERE deleted_at IS NULL AND status = $1
				AND (easy_login_enabled OR enroll_method = $2)),
			(SELECT COUNT(*) FROM members
				WHERE deleted_at IS NULL AND birth_date IS NOT NULL
				AND EXTRACT(MONTH FROM birth_date) = $3),
			(SELECT COUNT(*) FROM challenges WHERE created_at >= $4),
			(SELECT COUNT(*) FROM challenges WHERE consumed AND created_at >= $4)`

	err = s.conn.QueryRow(ctx, scalarsQuery,
		entity.MemberStatusActive,
		entity.EnrollMethodOperator,
		int(now.Month()),
		now.AddDate(0, 0, -30),
	).Scan(
		&stats.EasyLoginEligible,
		&stats.BirthdaysThisMonth,
		&stats.ChallengesIssued,
		&stats.ChallengesConsumed,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &stats, nil
}
