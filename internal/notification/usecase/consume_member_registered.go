package usecase

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/valueobject"
)

type (
	ConsumeMemberRegisteredInput struct {
		MemberID int64  `validate:"required,gt=0"`
		Email    string `validate:"required,email"`
		FullName string `validate:"required,min=2,max=100"`
		Token    string `validate:"required"`
	}
)

func (s *Usecase) ConsumeMemberRegistered(ctx context.Context, in ConsumeMemberRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeMemberRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["verify_url"] = s.cfg.GetString("app.web") + "/verify-email?token=" + url.QueryEscape(in.Token)

	s.sendEmailNotification(ctx, emailNotificationInput{
		MemberID:     in.MemberID,
		Email:        in.Email,
		TriggerKey:   entity.TriggerKeyEmailVerify,
		TemplateData: data,
		NotificationData: valueobject.JSONMap{
			"member_id": in.MemberID,
			"email":     in.Email,
			"full_name": in.FullName,
		},
	})
	s.createWelcomeNotification(ctx, in)

	return nil
}

func (s *Usecase) createWelcomeNotification(ctx context.Context, in ConsumeMemberRegisteredInput) {
	tpl := s.getTemplate(ctx, entity.TriggerKeyMemberWelcome, entity.ChannelInApp)
	if tpl == nil {
		return
	}

	n := entity.CreateNotification{
		ID:         s.uid.Generate(),
		MemberID:   in.MemberID,
		CategoryID: tpl.CategoryID,
		TriggerKey: tpl.TriggerKey,
		Data:       valueobject.JSONMap{"full_name": in.FullName},
		Metadata:   valueobject.JSONMap{},
	}
	if err := s.repoDB.CreateNotification(ctx, n); err != nil {
		slog.ErrorContext(ctx, "failed to repo create notification", "member_id", in.MemberID, "error", err)
		return
	}

	s.publishNotification(s.buildStreamEvent(n))
}
