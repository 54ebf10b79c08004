package db

import (
	"context"
	"fmt"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
)

func (s *DB) GetTemplateByTriggerChannel(ctx context.Context, tk entity.TriggerKey, ch entity.Channel) (_ *entity.Template, err error) {
	ctx, span := s.startSpan(ctx, "GetTemplateByTriggerChannel")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, trigger_key, category_id, channel, subject, body
		FROM notification_templates
		WHERE trigger_key = $1 AND channel = $2 AND is_active`

	var tpl entity.Template
	err = s.conn.QueryRow(ctx, query, tk.String(), ch).Scan(
		&tpl.ID, &tpl.TriggerKey, &tpl.CategoryID, &tpl.Channel, &tpl.Subject, &tpl.Body,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &tpl, nil
}

func (s *DB) ListMembersWithBirthday(ctx context.Context, month, day int) (_ []entity.BirthdayMember, err error) {
	ctx, span := s.startSpan(ctx, "ListMembersWithBirthday")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, full_name, COALESCE(email, '')
		FROM members
		WHERE EXTRACT(MONTH FROM birth_date) = $1
		  AND EXTRACT(DAY FROM birth_date) = $2
		  AND status = 2
		  AND deleted_at IS NULL
		ORDER BY full_name`

	rows, err := s.conn.Query(ctx, query, month, day)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var items []entity.BirthdayMember
	for rows.Next() {
		var m entity.BirthdayMember
		if err = rows.Scan(&m.MemberID, &m.FullName, &m.Email); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, m)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) ListCategories(ctx context.Context) (_ []entity.Category, err error) {
	ctx, span := s.startSpan(ctx, "ListCategories")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, name, COALESCE(description, ''), is_mandatory
		FROM notification_categories
		ORDER BY name`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var items []entity.Category
	for rows.Next() {
		var c entity.Category
		if err = rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsMandatory); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, c)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) ListMemberSettings(ctx context.Context, memberID int64) (_ []entity.MemberSetting, err error) {
	ctx, span := s.startSpan(ctx, "ListMemberSettings")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT category_id, channel, is_enabled
		FROM notification_member_settings
		WHERE member_id = $1`

	rows, err := s.conn.Query(ctx, query, memberID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var items []entity.MemberSetting
	for rows.Next() {
		var ms entity.MemberSetting
		if err = rows.Scan(&ms.CategoryID, &ms.Channel, &ms.IsEnabled); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, ms)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) ListNotifications(ctx context.Context, memberID int64, status entity.NotificationStatus, limit, offset int32) (_ []entity.NotificationItem, err error) {
	ctx, span := s.startSpan(ctx, "ListNotifications")
	defer func() { s.endSpan(span, err) }()

	filter := ""
	switch status {
	case entity.NotificationStatusUnread:
		filter = " AND read_at IS NULL"
	case entity.NotificationStatusRead:
		filter = " AND read_at IS NOT NULL"
	}

	query := fmt.Sprintf(`
		SELECT id, category_id, trigger_key, data, metadata, read_at, created_at
		FROM notifications
		WHERE member_id = $1 AND deleted_at IS NULL%s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, filter)

	rows, err := s.conn.Query(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var items []entity.NotificationItem
	for rows.Next() {
		var n entity.NotificationItem
		if err = rows.Scan(&n.ID, &n.CategoryID, &n.TriggerKey, &n.Data, &n.Metadata, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, n)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) CountUnreadNotifications(ctx context.Context, memberID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountUnreadNotifications")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT COUNT(*)
		FROM notifications
		WHERE member_id = $1 AND read_at IS NULL AND deleted_at IS NULL`

	var count int64
	err = s.conn.QueryRow(ctx, query, memberID).Scan(&count)
	return count, s.mapError(err)
}
