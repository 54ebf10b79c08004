package usecase

import (
	"context"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/valueobject"
)

// ProduceBirthdayGreetings creates an in-app greeting, a stream event and a
// congratulation email for every active member whose birthday falls on the
// current day. It runs at most once per calendar day per instance; extra
// invocations within the same day are no-ops.
func (s *Usecase) ProduceBirthdayGreetings(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "ProduceBirthdayGreetings")
	defer span.End()

	now := s.clock.Now()
	day := now.Format("2006-01-02")

	s.birthdayMu.Lock()
	if s.greetedDay == day {
		s.birthdayMu.Unlock()
		return nil
	}
	s.birthdayMu.Unlock()

	members, err := s.repoDB.ListMembersWithBirthday(ctx, int(now.Month()), now.Day())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list members with birthday", "error", err)
		return goerror.NewServer(err)
	}

	for i := range members {
		s.greetBirthdayMember(ctx, members[i])
	}

	s.birthdayMu.Lock()
	s.greetedDay = day
	s.birthdayMu.Unlock()

	slog.InfoContext(ctx, "birthday greetings produced", "day", day, "members", len(members))

	return nil
}

func (s *Usecase) greetBirthdayMember(ctx context.Context, m entity.BirthdayMember) {
	tpl := s.getTemplate(ctx, entity.TriggerKeyMemberBirthday, entity.ChannelInApp)
	if tpl != nil {
		n := entity.CreateNotification{
			ID:         s.uid.Generate(),
			MemberID:   m.MemberID,
			CategoryID: tpl.CategoryID,
			TriggerKey: tpl.TriggerKey,
			Data:       valueobject.JSONMap{"full_name": m.FullName},
			Metadata:   valueobject.JSONMap{},
		}
		if err := s.repoDB.CreateNotification(ctx, n); err != nil {
			slog.ErrorContext(ctx, "failed to repo create birthday notification", "member_id", m.MemberID, "error", err)
		} else {
			s.publishNotification(s.buildStreamEvent(n))
		}
	}

	if m.Email == "" {
		return
	}

	data := s.baseEmailTemplateData()
	data["full_name"] = m.FullName

	s.sendEmailNotification(ctx, emailNotificationInput{
		MemberID:     m.MemberID,
		Email:        m.Email,
		TriggerKey:   entity.TriggerKeyMemberBirthday,
		TemplateData: data,
		NotificationData: valueobject.JSONMap{
			"member_id": m.MemberID,
			"full_name": m.FullName,
		},
	})
}
