package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func verifyInput() OtpVerifyInput {
	return OtpVerifyInput{Name: "Kim Minji", PhoneLast4: "1234", Code: testCode, OriginIP: "203.0.113.7"}
}

// liveChallenge returns an unconsumed, unexpired challenge holding the keyed
// hash of testCode.
func liveChallenge(t *testing.T, f *fixture) *entity.Challenge {
	t.Helper()

	return &entity.Challenge{
		ID:        7001,
		MemberID:  101,
		Token:     f.hashOf(t, testCode),
		Purpose:   entity.ChallengePurposeEasyLoginOTP,
		ExpiresAt: f.clock.now.Add(3 * time.Minute),
	}
}

func TestOtpVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsMalformedCode", func(t *testing.T) {
		f := newFixture(t)

		in := verifyInput()
		in.Code = "12ab56"
		out, err := f.uc.OtpVerify(ctx, in)

		require.Error(t, err)
		assert.Nil(t, out)
		f.repo.AssertNotCalled(t, "GetMembersByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PaddedShortNameFailsValidation", func(t *testing.T) {
		f := newFixture(t)

		in := verifyInput()
		in.Name = " a "
		out, err := f.uc.OtpVerify(ctx, in)

		require.Error(t, err)
		assert.Nil(t, out)
		f.repo.AssertNotCalled(t, "GetMembersByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownIdentityFails", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{}, nil)

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, msgVerifyFail, out.Message)
		assert.Nil(t, out.Grant)
	})

	t.Run("BannedMemberFailsWithoutCredentialChanges", func(t *testing.T) {
		f := newFixture(t)
		member := eligibleMember()
		member.Status = entity.MemberStatusBanned
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{member}, nil)

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Nil(t, out.Grant)
		f.repo.AssertNotCalled(t, "GetNewestChallenge", mock.Anything, mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "SetMemberPassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NoChallengeFails", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("GetNewestChallenge", mock.Anything, int64(101), entity.ChallengePurposeEasyLoginOTP).Return(nil, goerror.ErrNotFound)

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, msgVerifyFail, out.Message)
	})

	t.Run("ConsumedChallengeIsRejected", func(t *testing.T) {
		f := newFixture(t)
		ch := liveChallenge(t, f)
		ch.Consumed = true
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("GetNewestChallenge", mock.Anything, int64(101), entity.ChallengePurposeEasyLoginOTP).Return(ch, nil)

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		assert.Equal(t, msgCodeUsed, out.Message)
		f.repo.AssertNotCalled(t, "IncrementChallengeAttempts", mock.Anything, mock.Anything)
	})

	t.Run("ConsumedWinsOverExpired", func(t *testing.T) {
		f := newFixture(t)
		ch := liveChallenge(t, f)
		ch.Consumed = true
		ch.ExpiresAt = f.clock.now.Add(-time.Hour)
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("GetNewestChallenge", mock.Anything, int64(101), entity.ChallengePurposeEasyLoginOTP).Return(ch, nil)

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		assert.Equal(t, msgCodeUsed, out.Message)
	})

	t.Run("ExpiredChallengeIsRejected", func(t *testing.T) {
		f := newFixture(t)
		ch := liveChallenge(t, f)
		ch.ExpiresAt = f.clock.now.Add(-time.Second)
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("GetNewestChallenge", mock.Anything, int64(101), entity.ChallengePurposeEasyLoginOTP).Return(ch, nil)

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		assert.Equal(t, msgCodeExpired, out.Message)
	})

	t.Run("ChallengeIsStillValidAtTheExpiryInstant", func(t *testing.T) {
		f := newFixture(t)
		ch := liveChallenge(t, f)
		ch.ExpiresAt = f.clock.now
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("GetNewestChallenge", mock.Anything, int64(101), entity.ChallengePurposeEasyLoginOTP).Return(ch, nil)
		f.repo.On("ConsumeChallenge", mock.Anything, ch.ID).Return(nil)
		f.repo.On("CreateChallenge", mock.Anything, mock.Anything).Return(nil)

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		assert.True(t, out.Success)
	})

	t.Run("AttemptCapHoldsEvenForTheCorrectCode", func(t *testing.T) {
		f := newFixture(t)
		ch := liveChallenge(t, f)
		ch.Attempts = maxAttempts
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("GetNewestChallenge", mock.Anything, int64(101), entity.ChallengePurposeEasyLoginOTP).Return(ch, nil)

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		assert.Equal(t, msgExhausted, out.Message)
		f.repo.AssertNotCalled(t, "ConsumeChallenge", mock.Anything, mock.Anything)
	})

	t.Run("WrongCodeIncrementsAttempts", func(t *testing.T) {
		f := newFixture(t)
		ch := liveChallenge(t, f)
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("GetNewestChallenge", mock.Anything, int64(101), entity.ChallengePurposeEasyLoginOTP).Return(ch, nil)
		f.repo.On("IncrementChallengeAttempts", mock.Anything, ch.ID).Return(nil)

		in := verifyInput()
		in.Code = "111111"
		out, err := f.uc.OtpVerify(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, msgWrongCode, out.Message)
		f.repo.AssertCalled(t, "IncrementChallengeAttempts", mock.Anything, ch.ID)
	})

	t.Run("MatchGrantsLoginLink", func(t *testing.T) {
		f := newFixture(t)
		ch := liveChallenge(t, f)
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("GetNewestChallenge", mock.Anything, int64(101), entity.ChallengePurposeEasyLoginOTP).Return(ch, nil)
		f.repo.On("ConsumeChallenge", mock.Anything, ch.ID).Return(nil)

		var linkChallenge entity.Challenge
		f.repo.On("CreateChallenge", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			linkChallenge = args.Get(1).(entity.Challenge)
		}).Return(nil)

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		require.True(t, out.Success)
		assert.Equal(t, msgVerified, out.Message)
		require.NotNil(t, out.Grant)
		assert.Equal(t, entity.GrantMethodMagicLink, out.Grant.Method)
		assert.Equal(t, "minji@example.com", out.Grant.Email)
		assert.Empty(t, out.Grant.TempPassword)

		require.True(t, strings.HasPrefix(out.Grant.MagicLink, testLinkBaseURL+"?token="))
		token := strings.TrimPrefix(out.Grant.MagicLink, testLinkBaseURL+"?token=")
		assert.Equal(t, entity.ChallengePurposeLoginLink, linkChallenge.Purpose)
		assert.Equal(t, f.hashOf(t, token), linkChallenge.Token, "link challenge must store the token hash")
		assert.Equal(t, f.clock.now.Add(15*time.Minute), linkChallenge.ExpiresAt)

		f.repo.AssertNotCalled(t, "SetMemberPassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NoEmailFallsBackToTempPassword", func(t *testing.T) {
		f := newFixture(t)
		ch := liveChallenge(t, f)
		member := eligibleMember()
		member.Email = ""
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{member}, nil)
		f.repo.On("GetNewestChallenge", mock.Anything, int64(101), entity.ChallengePurposeEasyLoginOTP).Return(ch, nil)
		f.repo.On("ConsumeChallenge", mock.Anything, ch.ID).Return(nil)

		var storedHash string
		f.repo.On("SetMemberPassword", mock.Anything, int64(101), mock.Anything).Run(func(args mock.Arguments) {
			storedHash = args.Get(2).(string)
		}).Return(nil)

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		require.True(t, out.Success)
		require.NotNil(t, out.Grant)
		assert.Equal(t, entity.GrantMethodPassword, out.Grant.Method)
		require.NotEmpty(t, out.Grant.TempPassword)
		assert.True(t, f.bcrypt.Verify(storedHash, out.Grant.TempPassword), "stored hash must match the returned one-time password")
		f.repo.AssertNotCalled(t, "CreateChallenge", mock.Anything, mock.Anything)
	})

	t.Run("LinkStoreFailureFallsBackToTempPassword", func(t *testing.T) {
		f := newFixture(t)
		ch := liveChallenge(t, f)
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("GetNewestChallenge", mock.Anything, int64(101), entity.ChallengePurposeEasyLoginOTP).Return(ch, nil)
		f.repo.On("ConsumeChallenge", mock.Anything, ch.ID).Return(nil)
		f.repo.On("CreateChallenge", mock.Anything, mock.Anything).Return(errors.New("db down"))
		f.repo.On("SetMemberPassword", mock.Anything, int64(101), mock.Anything).Return(nil)

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		require.True(t, out.Success)
		assert.Equal(t, entity.GrantMethodPassword, out.Grant.Method)
	})

	t.Run("ConsumeFailureFails", func(t *testing.T) {
		f := newFixture(t)
		ch := liveChallenge(t, f)
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("GetNewestChallenge", mock.Anything, int64(101), entity.ChallengePurposeEasyLoginOTP).Return(ch, nil)
		f.repo.On("ConsumeChallenge", mock.Anything, ch.ID).Return(errors.New("db down"))

		out, err := f.uc.OtpVerify(ctx, verifyInput())

		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, msgVerifyFail, out.Message)
	})
}
