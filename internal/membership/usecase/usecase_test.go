package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/config"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goroutine"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/hash"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/instrument"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/jwt"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/uid"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/validator"
	libjwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepoDB struct {
	mock.Mock
}

func (m *mockRepoDB) GetMemberLoginInfo(ctx context.Context, email string) (*entity.MemberLoginInfo, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MemberLoginInfo), args.Error(1)
}

func (m *mockRepoDB) GetMemberCredentialInfo(ctx context.Context, id int64) (*entity.MemberCredentialInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MemberCredentialInfo), args.Error(1)
}

func (m *mockRepoDB) GetChallengeMemberByTokenPurpose(ctx context.Context, token string, p entity.ChallengePurpose) (*entity.ChallengeMember, error) {
	args := m.Called(ctx, token, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChallengeMember), args.Error(1)
}

func (m *mockRepoDB) GetMemberByEmail(ctx context.Context, email string, includeDeleted bool) (*entity.Member, error) {
	args := m.Called(ctx, email, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Member), args.Error(1)
}

func (m *mockRepoDB) GetMemberByID(ctx context.Context, id int64, includeDeleted bool) (*entity.Member, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Member), args.Error(1)
}

func (m *mockRepoDB) GetMemberList(ctx context.Context, filter entity.MemberListFilterData) ([]entity.Member, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Member), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepoDB) GetBirthdayMembers(ctx context.Context, month time.Month) ([]entity.BirthdayMember, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BirthdayMember), args.Error(1)
}

func (m *mockRepoDB) GetStats(ctx context.Context, now time.Time) (*entity.Stats, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Stats), args.Error(1)
}

func (m *mockRepoDB) CreateChallenge(ctx context.Context, in entity.Challenge) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockRepoDB) ConsumeChallenge(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepoDB) NewRegistration(ctx context.Context, member entity.NewMember, chal entity.Challenge, hash string) error {
	return m.Called(ctx, member, chal, hash).Error(0)
}

func (m *mockRepoDB) NewMember(ctx context.Context, member entity.NewMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockRepoDB) PatchMember(ctx context.Context, member entity.PatchMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockRepoDB) UpsertMembers(ctx context.Context, members []entity.UpsertMember) (int, int, error) {
	args := m.Called(ctx, members)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *mockRepoDB) VerifyMemberRegistration(ctx context.Context, data entity.VerifyMemberRegistration) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockRepoDB) ResetMemberPassword(ctx context.Context, memberID, challengeID int64, newHash string) error {
	return m.Called(ctx, memberID, challengeID, newHash).Error(0)
}

func (m *mockRepoDB) UpdateMemberCredential(ctx context.Context, memberID int64, hash string) error {
	return m.Called(ctx, memberID, hash).Error(0)
}

func (m *mockRepoDB) UpdateMemberProfile(ctx context.Context, id int64, fullName, phone string, birthDate *time.Time) error {
	return m.Called(ctx, id, fullName, phone, birthDate).Error(0)
}

func (m *mockRepoDB) UpdateMemberPhoto(ctx context.Context, id int64, photoURL string) error {
	return m.Called(ctx, id, photoURL).Error(0)
}

func (m *mockRepoDB) MarkMemberDeleted(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockRepoMessaging struct {
	mock.Mock
}

func (m *mockRepoMessaging) PublishMemberRegistered(ctx context.Context, msg MemberRegisteredEvent) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockRepoMessaging) PublishMemberForgotPassword(ctx context.Context, msg MemberForgotPasswordEvent) error {
	return m.Called(ctx, msg).Error(0)
}

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time {
	return c.now
}

type stubConfig struct {
	config.Config
	strings map[string]string
}

func (c stubConfig) GetString(key string) string { return c.strings[key] }

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

func newEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(rbacModel)
	require.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	_, err = e.AddPolicy("operator", "*", "*")
	require.NoError(t, err)
	_, err = e.AddGroupingPolicy("9001", "operator")
	require.NoError(t, err)

	return e
}

type fixture struct {
	repo  *mockRepoDB
	msg   *mockRepoMessaging
	clock *stubClock
	uc    *Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	snow, err := uid.NewSnowflake()
	require.NoError(t, err)

	f := &fixture{
		repo:  &mockRepoDB{},
		msg:   &mockRepoMessaging{},
		clock: &stubClock{now: time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)},
	}

	f.uc = New(Dependency{
		RepoDB:        f.repo,
		RepoMessaging: f.msg,
		Validator:     v10,
		Config:        stubConfig{strings: map[string]string{}},
		HMAC:          hash.NewHMACSHA256("test-hmac-secret"),
		Bcrypt:        hash.NewBcrypt(4, ""),
		UID:           snow,
		UUID:          uid.NewUUID(),
		OID:           uid.NewUUID(),
		Clock:         f.clock,
		Instrument:    instrument.NewNoop(),
		Enforcer:      newEnforcer(t),
		Goroutine:     goroutine.NewManager(4),
	})

	return f
}

// operatorCtx carries claims for a subject granted the operator role by
// newEnforcer.
func operatorCtx() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: libjwt.RegisteredClaims{Subject: "9001"},
		UserID:           9001,
		UserEmail:        "staff@alllove.church",
	})
}

// memberCtx carries claims for a subject with no grants.
func memberCtx() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: libjwt.RegisteredClaims{Subject: "42"},
		UserID:           42,
		UserEmail:        "member@example.com",
	})
}
