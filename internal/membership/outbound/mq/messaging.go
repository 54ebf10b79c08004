package mq

import (
	"context"
	"encoding/json"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/usecase"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/instrument"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/messaging"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishMemberRegistered(ctx context.Context, msg usecase.MemberRegisteredEvent) error {
	ctx, span := m.ins.Tracer("membership.outbound.mq").Start(ctx, "PublishMemberRegistered")
	defer span.End()

	body, err := json.Marshal(event.MemberRegisteredMessage{
		MemberID:       msg.MemberID,
		Email:          msg.Email,
		FullName:       msg.FullName,
		ChallengeToken: msg.ChallengeToken,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.MemberRegisteredDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishMemberForgotPassword(ctx context.Context, msg usecase.MemberForgotPasswordEvent) error {
	ctx, span := m.ins.Tracer("membership.outbound.mq").Start(ctx, "PublishMemberForgotPassword")
	defer span.End()

	body, err := json.Marshal(event.MemberForgotPasswordMessage{
		MemberID:       msg.MemberID,
		Email:          msg.Email,
		ChallengeToken: msg.ChallengeToken,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.MemberForgotPasswordDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
