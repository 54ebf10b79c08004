package usecase

import (
	"testing"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBirthdays(t *testing.T) {
	t.Run("DefaultsToTheCurrentMonth", func(t *testing.T) {
		f := newFixture(t) // fixture clock is pinned to March
		f.repo.On("GetBirthdayMembers", mock.Anything, time.March).Return([]entity.BirthdayMember{}, nil)

		out, err := f.uc.Birthdays(operatorCtx(), BirthdaysInput{})

		require.NoError(t, err)
		assert.Equal(t, time.March, out.Month)
	})

	t.Run("UsesTheRequestedMonth", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetBirthdayMembers", mock.Anything, time.December).Return([]entity.BirthdayMember{}, nil)

		out, err := f.uc.Birthdays(operatorCtx(), BirthdaysInput{Month: time.December})

		require.NoError(t, err)
		assert.Equal(t, time.December, out.Month)
	})

	t.Run("SortsByDayOfMonth", func(t *testing.T) {
		f := newFixture(t)
		members := []entity.BirthdayMember{
			{ID: 1, FullName: "Late", BirthDate: time.Date(1990, time.March, 27, 0, 0, 0, 0, time.UTC)},
			{ID: 2, FullName: "Early", BirthDate: time.Date(1985, time.March, 3, 0, 0, 0, 0, time.UTC)},
			{ID: 3, FullName: "Mid", BirthDate: time.Date(2001, time.March, 15, 0, 0, 0, 0, time.UTC)},
		}
		f.repo.On("GetBirthdayMembers", mock.Anything, time.March).Return(members, nil)

		out, err := f.uc.Birthdays(operatorCtx(), BirthdaysInput{Month: time.March})

		require.NoError(t, err)
		require.Len(t, out.Members, 3)
		assert.Equal(t, []int64{2, 3, 1}, []int64{out.Members[0].ID, out.Members[1].ID, out.Members[2].ID})
	})

	t.Run("RequiresReadGrant", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Birthdays(memberCtx(), BirthdaysInput{})

		require.Error(t, err)
		f.repo.AssertNotCalled(t, "GetBirthdayMembers", mock.Anything, mock.Anything)
	})
}
