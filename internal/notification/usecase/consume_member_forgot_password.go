package usecase

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/valueobject"
)

type (
	ConsumeMemberForgotPasswordInput struct {
		MemberID int64  `validate:"required,gt=0"`
		Email    string `validate:"required,email"`
		Token    string `validate:"required"`
	}
)

func (s *Usecase) ConsumeMemberForgotPassword(ctx context.Context, in ConsumeMemberForgotPasswordInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeMemberForgotPassword")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["reset_url"] = s.cfg.GetString("app.web") + "/reset-password?token=" + url.QueryEscape(in.Token)

	s.sendEmailNotification(ctx, emailNotificationInput{
		MemberID:     in.MemberID,
		Email:        in.Email,
		TriggerKey:   entity.TriggerKeyPasswordReset,
		TemplateData: data,
		NotificationData: valueobject.JSONMap{
			"member_id": in.MemberID,
			"email":     in.Email,
		},
	})

	return nil
}
