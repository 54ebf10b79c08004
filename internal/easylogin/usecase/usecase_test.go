package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/config"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goroutine"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/hash"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/instrument"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/uid"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepoDB struct {
	mock.Mock
}

func (m *mockRepoDB) GetMembersByName(ctx context.Context, name string, limit int32) ([]entity.Member, error) {
	args := m.Called(ctx, name, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Member), args.Error(1)
}

func (m *mockRepoDB) GetNewestChallenge(ctx context.Context, memberID int64, purpose entity.ChallengePurpose) (*entity.Challenge, error) {
	args := m.Called(ctx, memberID, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Challenge), args.Error(1)
}

func (m *mockRepoDB) CreateChallenge(ctx context.Context, in entity.Challenge) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *mockRepoDB) IncrementChallengeAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepoDB) ConsumeChallenge(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepoDB) SetMemberPassword(ctx context.Context, memberID int64, hash string) error {
	args := m.Called(ctx, memberID, hash)
	return args.Error(0)
}

type stubLimiter struct {
	allow bool
	keys  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) bool {
	l.keys = append(l.keys, key)
	return l.allow
}

type stubCodes struct {
	code string
	err  error
}

func (c stubCodes) Generate() (string, error) {
	return c.code, c.err
}

type sentSMS struct {
	To   string
	Body string
}

type recorderSMS struct {
	mu   sync.Mutex
	sent []sentSMS
	err  error
}

func (s *recorderSMS) Send(_ context.Context, to, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentSMS{To: to, Body: body})
	return s.err
}

func (s *recorderSMS) all() []sentSMS {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentSMS{}, s.sent...)
}

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time {
	return c.now
}

type stubConfig struct {
	config.Config
	minutes map[string]time.Duration
	strings map[string]string
}

func (c stubConfig) GetMinute(key string) time.Duration { return c.minutes[key] }
func (c stubConfig) GetString(key string) string        { return c.strings[key] }

const (
	testLinkBaseURL = "https://app.alllove.church/easy-login"
	testCode        = "654321"
)

type fixture struct {
	repo      *mockRepoDB
	limiter   *stubLimiter
	sms       *recorderSMS
	clock     *stubClock
	hmac      hash.Hash
	bcrypt    hash.Hash
	goroutine *goroutine.Manager
	uc        *Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	snow, err := uid.NewSnowflake()
	require.NoError(t, err)

	f := &fixture{
		repo:      &mockRepoDB{},
		limiter:   &stubLimiter{allow: true},
		sms:       &recorderSMS{},
		clock:     &stubClock{now: time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)},
		hmac:      hash.NewHMACSHA256("test-hmac-secret"),
		bcrypt:    hash.NewBcrypt(4, ""),
		goroutine: goroutine.NewManager(4),
	}

	f.uc = New(Dependency{
		RepoDB:    f.repo,
		Validator: v10,
		Config: stubConfig{
			minutes: map[string]time.Duration{
				"modules.easylogin.otp_ttl_minutes":        5 * time.Minute,
				"modules.easylogin.login_link_ttl_minutes": 15 * time.Minute,
			},
			strings: map[string]string{
				"modules.easylogin.login_link_base_url": testLinkBaseURL,
			},
		},
		RateLimiter: f.limiter,
		Codes:       stubCodes{code: testCode},
		SMS:         f.sms,
		HMAC:        f.hmac,
		Bcrypt:      f.bcrypt,
		UID:         snow,
		OID:         uid.NewUUID(),
		Clock:       f.clock,
		Instrument:  instrument.NewNoop(),
		Goroutine:   f.goroutine,
	})

	return f
}

func eligibleMember() entity.Member {
	return entity.Member{
		ID:               101,
		FullName:         "Kim Minji",
		Email:            "minji@example.com",
		Phone:            "+821055551234",
		Status:           entity.MemberStatusActive,
		EnrollMethod:     entity.EnrollMethodSelf,
		EasyLoginEnabled: true,
	}
}

func (f *fixture) hashOf(t *testing.T, plaintext string) string {
	t.Helper()

	h, err := f.hmac.Hash(plaintext)
	require.NoError(t, err)
	return string(h)
}
