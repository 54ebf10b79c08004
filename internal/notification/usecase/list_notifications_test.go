package usecase

import (
	"errors"
	"testing"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListInbox(t *testing.T) {
	t.Run("RequiresAuthentication", func(t *testing.T) {
		f := newFixture(t)

		out, err := f.uc.ListInbox(t.Context(), ListInboxInput{})

		require.Error(t, err)
		assert.Nil(t, out)

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
	})

	t.Run("DefaultsToAllUnreadFirstPageWithBadgeCount", func(t *testing.T) {
		f := newFixture(t)
		items := []entity.NotificationItem{{ID: 9001, TriggerKey: entity.TriggerKeyMemberBirthday}}
		f.repo.On("ListNotifications", mock.Anything, int64(42), entity.NotificationStatusAll, int32(20), int32(0)).Return(items, nil)
		f.repo.On("CountUnreadNotifications", mock.Anything, int64(42)).Return(int64(3), nil)

		out, err := f.uc.ListInbox(memberCtx(t, 42), ListInboxInput{})

		require.NoError(t, err)
		assert.Equal(t, items, out.Items)
		assert.Equal(t, int64(3), out.UnreadCount)
	})

	t.Run("RejectsUnknownStatusFilter", func(t *testing.T) {
		f := newFixture(t)

		out, err := f.uc.ListInbox(memberCtx(t, 42), ListInboxInput{Status: "archived"})

		require.Error(t, err)
		assert.Nil(t, out)
		f.repo.AssertNotCalled(t, "ListNotifications", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CountFailureIsAServerError", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("ListNotifications", mock.Anything, int64(42), entity.NotificationStatusAll, int32(20), int32(0)).Return([]entity.NotificationItem{}, nil)
		f.repo.On("CountUnreadNotifications", mock.Anything, int64(42)).Return(int64(0), errors.New("db down"))

		out, err := f.uc.ListInbox(memberCtx(t, 42), ListInboxInput{})

		require.Error(t, err)
		assert.Nil(t, out)
	})
}

func TestMarkInboxRead(t *testing.T) {
	t.Run("UnknownNotificationIsNotFound", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("MarkNotificationRead", mock.Anything, int64(42), int64(9001)).Return(false, nil)

		err := f.uc.MarkInboxRead(memberCtx(t, 42), MarkInboxReadInput{ID: 9001})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeNotFound, gerr.Code())
	})

	t.Run("MarksTheNotificationRead", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("MarkNotificationRead", mock.Anything, int64(42), int64(9001)).Return(true, nil)

		err := f.uc.MarkInboxRead(memberCtx(t, 42), MarkInboxReadInput{ID: 9001})

		require.NoError(t, err)
	})
}
