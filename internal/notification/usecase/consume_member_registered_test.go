package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registeredInput() ConsumeMemberRegisteredInput {
	return ConsumeMemberRegisteredInput{
		MemberID: 101,
		Email:    "minji@example.com",
		FullName: "Kim Minji",
		Token:    "verify-token-1",
	}
}

func TestConsumeMemberRegistered(t *testing.T) {
	ctx := context.Background()

	t.Run("SendsVerificationEmailAndCreatesWelcomeInboxItem", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetTemplateByTriggerChannel", mock.Anything, entity.TriggerKeyEmailVerify, entity.ChannelEmail).
			Return(emailTemplate(entity.TriggerKeyEmailVerify), nil)
		f.repo.On("GetTemplateByTriggerChannel", mock.Anything, entity.TriggerKeyMemberWelcome, entity.ChannelInApp).
			Return(inAppTemplate(entity.TriggerKeyMemberWelcome), nil)
		f.repo.On("CreateNotificationWithDeliveryLog", mock.Anything, mock.Anything, mock.Anything).Return(int64(5001), nil)
		f.repo.On("UpdateDeliveryLogStatus", mock.Anything, mock.MatchedBy(func(u entity.UpdateDeliveryLog) bool {
			return u.ID == 5001 && u.Status == entity.DeliveryStatusSent
		})).Return(nil)

		var welcome entity.CreateNotification
		f.repo.On("CreateNotification", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			welcome = args.Get(1).(entity.CreateNotification)
		}).Return(nil)

		err := f.uc.ConsumeMemberRegistered(ctx, registeredInput())

		require.NoError(t, err)

		sent := f.mail.all()
		require.Len(t, sent, 1)
		assert.Equal(t, []string{"minji@example.com"}, sent[0].To)
		assert.Contains(t, sent[0].HTMLBody, testWebBaseURL+"/verify-email?token=verify-token-1")
		assert.Contains(t, sent[0].HTMLBody, "AllLove Church")

		assert.Equal(t, int64(101), welcome.MemberID)
		assert.Equal(t, entity.TriggerKeyMemberWelcome, welcome.TriggerKey)
		assert.Equal(t, "Kim Minji", welcome.Data["full_name"])
	})

	t.Run("WelcomeEventReachesAStreamSubscriber", func(t *testing.T) {
		f := newFixture(t)
		notFoundTemplate(f.repo, entity.TriggerKeyEmailVerify, entity.ChannelEmail)
		f.repo.On("GetTemplateByTriggerChannel", mock.Anything, entity.TriggerKeyMemberWelcome, entity.ChannelInApp).
			Return(inAppTemplate(entity.TriggerKeyMemberWelcome), nil)
		f.repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)

		streamCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		events := f.uc.StreamNotifications(streamCtx, 101)

		require.NoError(t, f.uc.ConsumeMemberRegistered(ctx, registeredInput()))

		select {
		case evt := <-events:
			assert.Equal(t, int64(101), evt.MemberID)
			assert.Equal(t, entity.TriggerKeyMemberWelcome, evt.TriggerKey)
			assert.Equal(t, f.clock.now, evt.CreatedAt)
		default:
			t.Fatal("expected a stream event for the welcome notification")
		}
	})

	t.Run("MailFailureMarksTheDeliveryFailedWithRetry", func(t *testing.T) {
		f := newFixture(t)
		f.mail.err = errors.New("smtp down")
		f.repo.On("GetTemplateByTriggerChannel", mock.Anything, entity.TriggerKeyEmailVerify, entity.ChannelEmail).
			Return(emailTemplate(entity.TriggerKeyEmailVerify), nil)
		notFoundTemplate(f.repo, entity.TriggerKeyMemberWelcome, entity.ChannelInApp)
		f.repo.On("CreateNotificationWithDeliveryLog", mock.Anything, mock.Anything, mock.Anything).Return(int64(5002), nil)

		var update entity.UpdateDeliveryLog
		f.repo.On("UpdateDeliveryLogStatus", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			update = args.Get(1).(entity.UpdateDeliveryLog)
		}).Return(nil)

		err := f.uc.ConsumeMemberRegistered(ctx, registeredInput())

		require.NoError(t, err)
		assert.Equal(t, int64(5002), update.ID)
		assert.Equal(t, entity.DeliveryStatusFailed, update.Status)
		require.NotNil(t, update.NextRetryAt)
		assert.True(t, update.NextRetryAt.After(f.clock.now))
	})

	t.Run("InvalidPayloadIsDroppedWithoutWrites", func(t *testing.T) {
		f := newFixture(t)

		in := registeredInput()
		in.Email = "not-an-email"
		err := f.uc.ConsumeMemberRegistered(ctx, in)

		require.NoError(t, err)
		f.repo.AssertNotCalled(t, "GetTemplateByTriggerChannel", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingTemplatesSkipEveryChannel", func(t *testing.T) {
		f := newFixture(t)
		notFoundTemplate(f.repo, entity.TriggerKeyEmailVerify, entity.ChannelEmail)
		notFoundTemplate(f.repo, entity.TriggerKeyMemberWelcome, entity.ChannelInApp)

		err := f.uc.ConsumeMemberRegistered(ctx, registeredInput())

		require.NoError(t, err)
		assert.Empty(t, f.mail.all())
		f.repo.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "CreateNotificationWithDeliveryLog", mock.Anything, mock.Anything, mock.Anything)
	})
}
