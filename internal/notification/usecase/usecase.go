package usecase

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"sync"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/clock"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/config"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/instrument"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/jwt"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/mail"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/uid"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	RegisterMemberDevice(ctx context.Context, memberID int64, deviceToken, platform string) error
	RemoveMemberDevice(ctx context.Context, deviceToken string) error

	GetTemplateByTriggerChannel(ctx context.Context, tk entity.TriggerKey, ch entity.Channel) (*entity.Template, error)
	CreateNotification(ctx context.Context, data entity.CreateNotification) error
	CreateNotificationWithDeliveryLog(ctx context.Context, n entity.CreateNotification, dl entity.CreateDeliveryLog) (int64, error)
	UpdateDeliveryLogStatus(ctx context.Context, u entity.UpdateDeliveryLog) error

	ListMembersWithBirthday(ctx context.Context, month, day int) ([]entity.BirthdayMember, error)

	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListMemberSettings(ctx context.Context, memberID int64) ([]entity.MemberSetting, error)
	UpsertMemberSettings(ctx context.Context, memberID int64, settings []entity.MemberSetting) error
	ListNotifications(ctx context.Context, memberID int64, status entity.NotificationStatus, limit, offset int32) ([]entity.NotificationItem, error)
	CountUnreadNotifications(ctx context.Context, memberID int64) (int64, error)
	MarkNotificationRead(ctx context.Context, memberID, notificationID int64) (bool, error)
	MarkNotificationsReadAll(ctx context.Context, memberID int64) (int64, error)
	SoftDeleteNotification(ctx context.Context, memberID, notificationID int64) (bool, error)
}

type Usecase struct {
	repoDB    repoDB
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	validator validator.Validator
	jwt       jwt.JWT
	repoMail  repoMail
	ins       instrument.Instrumentation
	streamMu  sync.RWMutex
	streams   map[int64]map[*subscriber]struct{}

	birthdayMu sync.Mutex
	// greetedDay is the last day the birthday sweep produced greetings for,
	// formatted 2006-01-02. Per-instance guard against double greeting when
	// the sweep interval is shorter than a day.
	greetedDay string
}

type Dependency struct {
	RepoDB     repoDB
	Config     config.Config
	UID        uid.NumberID
	Clock      clock.Clocker
	Validator  validator.Validator
	JWT        jwt.JWT
	RepoMail   repoMail
	Instrument instrument.Instrumentation
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		cfg:       dep.Config,
		uid:       dep.UID,
		clock:     dep.Clock,
		validator: dep.Validator,
		jwt:       dep.JWT,
		repoMail:  dep.RepoMail,
		ins:       dep.Instrument,
		streams:   make(map[int64]map[*subscriber]struct{}),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) renderTemplate(name, tpl string, data map[string]any) (string, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(tpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Usecase) baseEmailTemplateData() map[string]any {
	return map[string]any{
		"support_email":   "support@alllove.church",
		"company_name":    "AllLove Church",
		"company_address": "Uichang-gu, Changwon-si, Gyeongsangnam-do",
		"year":            s.clock.Now().Format("2006"),
	}
}

func (s *Usecase) getTemplate(ctx context.Context, tk entity.TriggerKey, ch entity.Channel) *entity.Template {
	tpl, err := s.repoDB.GetTemplateByTriggerChannel(ctx, tk, ch)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "notification template not found", "trigger_key", tk, "channel", ch.String())
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get template by trigger channel", "trigger_key", tk, "channel", ch.String(), "error", err)
		return nil
	}

	return tpl
}
