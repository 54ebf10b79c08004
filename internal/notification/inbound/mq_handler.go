package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/usecase"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/instrument"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/messaging"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/uid"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) MemberRegisteredNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "MemberRegisteredNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: member registration notification", "msg_body", string(body))

	var payload event.MemberRegisteredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of member registration notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeMemberRegistered(ctx, usecase.ConsumeMemberRegisteredInput{
		MemberID: payload.MemberID,
		Email:    payload.Email,
		FullName: payload.FullName,
		Token:    payload.ChallengeToken,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume member registration", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) MemberForgotPasswordNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "MemberForgotPasswordNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: member forgot password notification", "msg_body", string(body))

	var payload event.MemberForgotPasswordMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of member forgot password notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeMemberForgotPassword(ctx, usecase.ConsumeMemberForgotPasswordInput{
		MemberID: payload.MemberID,
		Email:    payload.Email,
		Token:    payload.ChallengeToken,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume member forgot password", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
