package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/config"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/instrument"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/jwt"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/mail"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/uid"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepoDB struct {
	mock.Mock
}

func (m *mockRepoDB) RegisterMemberDevice(ctx context.Context, memberID int64, deviceToken, platform string) error {
	args := m.Called(ctx, memberID, deviceToken, platform)
	return args.Error(0)
}

func (m *mockRepoDB) RemoveMemberDevice(ctx context.Context, deviceToken string) error {
	args := m.Called(ctx, deviceToken)
	return args.Error(0)
}

func (m *mockRepoDB) GetTemplateByTriggerChannel(ctx context.Context, tk entity.TriggerKey, ch entity.Channel) (*entity.Template, error) {
	args := m.Called(ctx, tk, ch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Template), args.Error(1)
}

func (m *mockRepoDB) CreateNotification(ctx context.Context, data entity.CreateNotification) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *mockRepoDB) CreateNotificationWithDeliveryLog(ctx context.Context, n entity.CreateNotification, dl entity.CreateDeliveryLog) (int64, error) {
	args := m.Called(ctx, n, dl)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepoDB) UpdateDeliveryLogStatus(ctx context.Context, u entity.UpdateDeliveryLog) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockRepoDB) ListMembersWithBirthday(ctx context.Context, month, day int) ([]entity.BirthdayMember, error) {
	args := m.Called(ctx, month, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BirthdayMember), args.Error(1)
}

func (m *mockRepoDB) ListCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *mockRepoDB) ListMemberSettings(ctx context.Context, memberID int64) ([]entity.MemberSetting, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.MemberSetting), args.Error(1)
}

func (m *mockRepoDB) UpsertMemberSettings(ctx context.Context, memberID int64, settings []entity.MemberSetting) error {
	args := m.Called(ctx, memberID, settings)
	return args.Error(0)
}

func (m *mockRepoDB) ListNotifications(ctx context.Context, memberID int64, status entity.NotificationStatus, limit, offset int32) ([]entity.NotificationItem, error) {
	args := m.Called(ctx, memberID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.NotificationItem), args.Error(1)
}

func (m *mockRepoDB) CountUnreadNotifications(ctx context.Context, memberID int64) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepoDB) MarkNotificationRead(ctx context.Context, memberID, notificationID int64) (bool, error) {
	args := m.Called(ctx, memberID, notificationID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepoDB) MarkNotificationsReadAll(ctx context.Context, memberID int64) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepoDB) SoftDeleteNotification(ctx context.Context, memberID, notificationID int64) (bool, error) {
	args := m.Called(ctx, memberID, notificationID)
	return args.Bool(0), args.Error(1)
}

type recorderMail struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (r *recorderMail) Send(_ context.Context, msg mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func (r *recorderMail) all() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mail.Message{}, r.sent...)
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

const testWebBaseURL = "https://app.alllove.church"

type fixture struct {
	repo  *mockRepoDB
	mail  *recorderMail
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
		mail:  &recorderMail{},
		clock: &stubClock{now: time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)},
	}

	f.uc = NewNotification(Dependency{
		RepoDB:     f.repo,
		Config:     stubConfig{strings: map[string]string{"app.web": testWebBaseURL}},
		UID:        snow,
		Clock:      f.clock,
		Validator:  v10,
		RepoMail:   f.mail,
		Instrument: instrument.NewNoop(),
	})

	return f
}

func memberCtx(t *testing.T, memberID int64) context.Context {
	t.Helper()
	return jwt.SetAuth(t.Context(), jwt.Claims{UserID: memberID})
}

func emailTemplate(tk entity.TriggerKey) *entity.Template {
	return &entity.Template{
		ID:         801,
		TriggerKey: tk,
		CategoryID: 11,
		Channel:    entity.ChannelEmail,
		Subject:    "AllLove Church",
		Body:       "<p>{{.company_name}} {{.verify_url}}{{.reset_url}}{{.full_name}}</p>",
	}
}

func inAppTemplate(tk entity.TriggerKey) *entity.Template {
	return &entity.Template{
		ID:         802,
		TriggerKey: tk,
		CategoryID: 12,
		Channel:    entity.ChannelInApp,
		Subject:    "",
		Body:       "",
	}
}

func notFoundTemplate(m *mockRepoDB, tk entity.TriggerKey, ch entity.Channel) {
	m.On("GetTemplateByTriggerChannel", mock.Anything, tk, ch).Return(nil, goerror.ErrNotFound)
}
