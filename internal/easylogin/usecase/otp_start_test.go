package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOtpStart(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsMalformedInputBeforeAnyWork", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.OtpStart(ctx, OtpStartInput{Name: "K", PhoneLast4: "12a4", OriginIP: "203.0.113.7"})

		require.Error(t, err)
		assert.Empty(t, f.limiter.keys, "rate limiter must not be touched on bad input")
		f.repo.AssertNotCalled(t, "GetMembersByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RateLimitsPerOrigin", func(t *testing.T) {
		f := newFixture(t)
		f.limiter.allow = false

		err := f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})

		require.ErrorIs(t, err, ErrRateLimited)
		assert.Equal(t, []string{"203.0.113.7"}, f.limiter.keys)
		f.repo.AssertNotCalled(t, "GetMembersByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownIdentityReportsProcessed", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{}, nil)

		err := f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})

		require.NoError(t, err)
		f.repo.AssertNotCalled(t, "CreateChallenge", mock.Anything, mock.Anything)
	})

	t.Run("AmbiguousIdentityReportsProcessed", func(t *testing.T) {
		f := newFixture(t)
		one := eligibleMember()
		two := eligibleMember()
		two.ID = 102
		two.Phone = "+821077771234" // same last 4 digits
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{one, two}, nil)

		err := f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})

		require.NoError(t, err)
		f.repo.AssertNotCalled(t, "CreateChallenge", mock.Anything, mock.Anything)
	})

	t.Run("IneligibleMemberReportsProcessed", func(t *testing.T) {
		f := newFixture(t)
		member := eligibleMember()
		member.EasyLoginEnabled = false
		member.EnrollMethod = entity.EnrollMethodSelf
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{member}, nil)

		err := f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})

		require.NoError(t, err)
		f.repo.AssertNotCalled(t, "CreateChallenge", mock.Anything, mock.Anything)
	})

	t.Run("InactiveMemberReportsProcessedWithoutCode", func(t *testing.T) {
		for _, status := range []entity.MemberStatus{
			entity.MemberStatusUnverified,
			entity.MemberStatusBanned,
			entity.MemberStatusInactive,
		} {
			f := newFixture(t)
			member := eligibleMember()
			member.Status = status
			f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{member}, nil)

			err := f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})

			require.NoError(t, err)
			f.repo.AssertNotCalled(t, "CreateChallenge", mock.Anything, mock.Anything)
			assert.Empty(t, f.sms.all())
		}
	})

	t.Run("OperatorEnrolledMemberIsEligibleWithoutFlag", func(t *testing.T) {
		f := newFixture(t)
		member := eligibleMember()
		member.EasyLoginEnabled = false
		member.EnrollMethod = entity.EnrollMethodOperator
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{member}, nil)
		f.repo.On("CreateChallenge", mock.Anything, mock.Anything).Return(nil)

		err := f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})

		require.NoError(t, err)
		f.repo.AssertCalled(t, "CreateChallenge", mock.Anything, mock.Anything)
	})

	t.Run("IssuesHashedChallengeAndDeliversCode", func(t *testing.T) {
		f := newFixture(t)
		member := eligibleMember()
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{member}, nil)

		var created entity.Challenge
		f.repo.On("CreateChallenge", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(entity.Challenge)
		}).Return(nil)

		err := f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})
		require.NoError(t, err)

		assert.Equal(t, member.ID, created.MemberID)
		assert.Equal(t, entity.ChallengePurposeEasyLoginOTP, created.Purpose)
		assert.Equal(t, f.hashOf(t, testCode), created.Token, "stored token must be the keyed hash, not the code")
		assert.Equal(t, f.clock.now.Add(5*time.Minute), created.ExpiresAt)
		assert.Equal(t, "203.0.113.7", created.RequesterIP)

		require.NoError(t, f.goroutine.Wait())
		sent := f.sms.all()
		require.Len(t, sent, 1)
		assert.Equal(t, member.Phone, sent[0].To)
		assert.Contains(t, sent[0].Body, testCode)
		assert.Contains(t, sent[0].Body, "5 minutes")
	})

	t.Run("TrimsClaimedName", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{}, nil)

		err := f.uc.OtpStart(ctx, OtpStartInput{Name: "  Kim Minji  ", PhoneLast4: "1234", OriginIP: "203.0.113.7"})

		require.NoError(t, err)
		f.repo.AssertCalled(t, "GetMembersByName", mock.Anything, "Kim Minji", candidateLimit)
	})

	t.Run("PaddedShortNameFailsValidation", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.OtpStart(ctx, OtpStartInput{Name: " a ", PhoneLast4: "1234", OriginIP: "203.0.113.7"})

		require.Error(t, err)
		f.repo.AssertNotCalled(t, "GetMembersByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StorageFailureStillReportsProcessed", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("CreateChallenge", mock.Anything, mock.Anything).Return(errors.New("db down"))

		err := f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})

		require.NoError(t, err)
		assert.Empty(t, f.sms.all(), "no code may leave the system when the challenge was not stored")
	})

	t.Run("DeliveryFailureIsSwallowed", func(t *testing.T) {
		f := newFixture(t)
		f.sms.err = errors.New("gateway unavailable")
		f.repo.On("GetMembersByName", mock.Anything, "Kim Minji", candidateLimit).Return([]entity.Member{eligibleMember()}, nil)
		f.repo.On("CreateChallenge", mock.Anything, mock.Anything).Return(nil)

		err := f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})

		require.NoError(t, err, "gateway failures must never surface to the caller")
	})
}

func TestLastFourDigits(t *testing.T) {
	cases := []struct {
		name  string
		phone string
		want  string
	}{
		{name: "E164", phone: "+821055551234", want: "1234"},
		{name: "Formatted", phone: "010-5555-1234", want: "1234"},
		{name: "Spaces", phone: "010 5555 1234", want: "1234"},
		{name: "TooShort", phone: "123", want: ""},
		{name: "Empty", phone: "", want: ""},
		{name: "ExactlyFour", phone: "1234", want: "1234"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, lastFourDigits(tc.phone))
		})
	}
}

func TestOtpStartProcessedOutcomesAreIdentical(t *testing.T) {
	// Whatever happened internally, the caller observes the same nil error.
	ctx := context.Background()

	outcomes := map[string]func(t *testing.T) error{
		"unknown": func(t *testing.T) error {
			f := newFixture(t)
			f.repo.On("GetMembersByName", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Member{}, nil)
			return f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})
		},
		"issued": func(t *testing.T) error {
			f := newFixture(t)
			f.repo.On("GetMembersByName", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Member{eligibleMember()}, nil)
			f.repo.On("CreateChallenge", mock.Anything, mock.Anything).Return(nil)
			return f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})
		},
		"resolver error": func(t *testing.T) error {
			f := newFixture(t)
			f.repo.On("GetMembersByName", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
			return f.uc.OtpStart(ctx, OtpStartInput{Name: "Kim Minji", PhoneLast4: "1234", OriginIP: "203.0.113.7"})
		},
	}

	for name, run := range outcomes {
		t.Run(strings.ReplaceAll(name, " ", "_"), func(t *testing.T) {
			assert.NoError(t, run(t))
		})
	}
}
