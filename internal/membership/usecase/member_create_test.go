package usecase

import (
	"errors"
	"testing"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createInput() MemberCreateInput {
	return MemberCreateInput{
		FullName: "Park Jisoo",
		Email:    "jisoo@example.com",
		Phone:    "+821055559876",
	}
}

func assertBusinessCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, code, gerr.Code())
}

func TestMemberCreate(t *testing.T) {
	t.Run("RequiresAuthentication", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.MemberCreate(t.Context(), createInput())

		assertBusinessCode(t, err, goerror.CodeUnauthorized)
		f.repo.AssertNotCalled(t, "NewMember", mock.Anything, mock.Anything)
	})

	t.Run("RequiresMembersCreateGrant", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.MemberCreate(memberCtx(), createInput())

		assertBusinessCode(t, err, goerror.CodeForbidden)
		f.repo.AssertNotCalled(t, "NewMember", mock.Anything, mock.Anything)
	})

	t.Run("RejectsDuplicateEmail", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetMemberByEmail", mock.Anything, "jisoo@example.com", true).Return(&entity.Member{ID: 1}, nil)

		err := f.uc.MemberCreate(operatorCtx(), createInput())

		assertBusinessCode(t, err, goerror.CodeConflict)
		f.repo.AssertNotCalled(t, "NewMember", mock.Anything, mock.Anything)
	})

	t.Run("CreatesActiveOperatorEnrolledMember", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetMemberByEmail", mock.Anything, "jisoo@example.com", true).Return(nil, goerror.ErrNotFound)

		var created entity.NewMember
		f.repo.On("NewMember", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(entity.NewMember)
		}).Return(nil)

		err := f.uc.MemberCreate(operatorCtx(), createInput())

		require.NoError(t, err)
		assert.Equal(t, "Park Jisoo", created.FullName)
		assert.Equal(t, entity.MemberStatusActive, created.Status, "operator enrollment skips verification")
		assert.Equal(t, entity.EnrollMethodOperator, created.EnrollMethod)
		assert.NotZero(t, created.ID)
	})

	t.Run("PhoneOnlyMemberSkipsEmailLookup", func(t *testing.T) {
		f := newFixture(t)
		in := createInput()
		in.Email = ""
		f.repo.On("NewMember", mock.Anything, mock.Anything).Return(nil)

		err := f.uc.MemberCreate(operatorCtx(), in)

		require.NoError(t, err)
		f.repo.AssertNotCalled(t, "GetMemberByEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StorageFailureIsAServerError", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetMemberByEmail", mock.Anything, "jisoo@example.com", true).Return(nil, goerror.ErrNotFound)
		f.repo.On("NewMember", mock.Anything, mock.Anything).Return(errors.New("db down"))

		err := f.uc.MemberCreate(operatorCtx(), createInput())

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
	})
}

func TestMemberDelete(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetMemberByID", mock.Anything, int64(55), true).Return(nil, goerror.ErrNotFound)

		err := f.uc.MemberDelete(operatorCtx(), MemberDeleteInput{ID: 55})

		assertBusinessCode(t, err, goerror.CodeNotFound)
	})

	t.Run("AlreadyDeletedIsANoop", func(t *testing.T) {
		f := newFixture(t)
		deletedAt := f.clock.now
		f.repo.On("GetMemberByID", mock.Anything, int64(55), true).Return(&entity.Member{ID: 55, DeletedAt: &deletedAt}, nil)

		err := f.uc.MemberDelete(operatorCtx(), MemberDeleteInput{ID: 55})

		require.NoError(t, err)
		f.repo.AssertNotCalled(t, "MarkMemberDeleted", mock.Anything, mock.Anything)
	})

	t.Run("MarksTheMemberDeleted", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetMemberByID", mock.Anything, int64(55), true).Return(&entity.Member{ID: 55}, nil)
		f.repo.On("MarkMemberDeleted", mock.Anything, int64(55)).Return(nil)

		err := f.uc.MemberDelete(operatorCtx(), MemberDeleteInput{ID: 55})

		require.NoError(t, err)
		f.repo.AssertCalled(t, "MarkMemberDeleted", mock.Anything, int64(55))
	})
}
