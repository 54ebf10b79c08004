package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProduceBirthdayGreetings(t *testing.T) {
	ctx := context.Background()

	t.Run("GreetsEveryBirthdayMemberAndEmailsThoseWithAnAddress", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("ListMembersWithBirthday", mock.Anything, 3, 14).Return([]entity.BirthdayMember{
			{MemberID: 101, FullName: "Kim Minji", Email: "minji@example.com"},
			{MemberID: 102, FullName: "Lee Junho", Email: ""},
		}, nil)
		f.repo.On("GetTemplateByTriggerChannel", mock.Anything, entity.TriggerKeyMemberBirthday, entity.ChannelInApp).
			Return(inAppTemplate(entity.TriggerKeyMemberBirthday), nil)
		f.repo.On("GetTemplateByTriggerChannel", mock.Anything, entity.TriggerKeyMemberBirthday, entity.ChannelEmail).
			Return(emailTemplate(entity.TriggerKeyMemberBirthday), nil)
		f.repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("CreateNotificationWithDeliveryLog", mock.Anything, mock.Anything, mock.Anything).Return(int64(6001), nil)
		f.repo.On("UpdateDeliveryLogStatus", mock.Anything, mock.Anything).Return(nil)

		err := f.uc.ProduceBirthdayGreetings(ctx)

		require.NoError(t, err)
		f.repo.AssertNumberOfCalls(t, "CreateNotification", 2)
		f.repo.AssertNumberOfCalls(t, "CreateNotificationWithDeliveryLog", 1)

		sent := f.mail.all()
		require.Len(t, sent, 1)
		assert.Equal(t, []string{"minji@example.com"}, sent[0].To)
		assert.Contains(t, sent[0].HTMLBody, "Kim Minji")
	})

	t.Run("GreetingReachesAStreamSubscriber", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("ListMembersWithBirthday", mock.Anything, 3, 14).Return([]entity.BirthdayMember{
			{MemberID: 102, FullName: "Lee Junho", Email: ""},
		}, nil)
		f.repo.On("GetTemplateByTriggerChannel", mock.Anything, entity.TriggerKeyMemberBirthday, entity.ChannelInApp).
			Return(inAppTemplate(entity.TriggerKeyMemberBirthday), nil)
		f.repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)

		streamCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		events := f.uc.StreamNotifications(streamCtx, 102)

		require.NoError(t, f.uc.ProduceBirthdayGreetings(ctx))

		select {
		case evt := <-events:
			assert.Equal(t, int64(102), evt.MemberID)
			assert.Equal(t, entity.TriggerKeyMemberBirthday, evt.TriggerKey)
		default:
			t.Fatal("expected a stream event for the birthday greeting")
		}
	})

	t.Run("RunsAtMostOncePerDay", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("ListMembersWithBirthday", mock.Anything, 3, 14).Return([]entity.BirthdayMember{}, nil)

		require.NoError(t, f.uc.ProduceBirthdayGreetings(ctx))
		require.NoError(t, f.uc.ProduceBirthdayGreetings(ctx))

		f.repo.AssertNumberOfCalls(t, "ListMembersWithBirthday", 1)
	})

	t.Run("SweepsAgainOnTheNextDay", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("ListMembersWithBirthday", mock.Anything, 3, 14).Return([]entity.BirthdayMember{}, nil)
		f.repo.On("ListMembersWithBirthday", mock.Anything, 3, 15).Return([]entity.BirthdayMember{}, nil)

		require.NoError(t, f.uc.ProduceBirthdayGreetings(ctx))
		f.clock.now = f.clock.now.Add(24 * time.Hour)
		require.NoError(t, f.uc.ProduceBirthdayGreetings(ctx))

		f.repo.AssertNumberOfCalls(t, "ListMembersWithBirthday", 2)
	})

	t.Run("RepoFailureSurfacesAndLeavesTheDayUnmarked", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("ListMembersWithBirthday", mock.Anything, 3, 14).Return(nil, errors.New("db down")).Once()
		f.repo.On("ListMembersWithBirthday", mock.Anything, 3, 14).Return([]entity.BirthdayMember{}, nil)

		require.Error(t, f.uc.ProduceBirthdayGreetings(ctx))
		require.NoError(t, f.uc.ProduceBirthdayGreetings(ctx))

		f.repo.AssertNumberOfCalls(t, "ListMembersWithBirthday", 2)
	})
}
