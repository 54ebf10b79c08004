package inbound

import (
	"context"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/notification/usecase"
)

type ucConsumer interface {
	ConsumeMemberRegistered(ctx context.Context, in usecase.ConsumeMemberRegisteredInput) error
	ConsumeMemberForgotPassword(ctx context.Context, msg usecase.ConsumeMemberForgotPasswordInput) error
}

type ucStream interface {
	StreamNotifications(ctx context.Context, memberID int64) <-chan usecase.StreamEvent
}

type ucBirthday interface {
	ProduceBirthdayGreetings(ctx context.Context) error
}

type uc interface {
	ucConsumer
	ucStream
	ucBirthday

	DeviceRegister(ctx context.Context, in usecase.DeviceRegisterInput) error
	DeviceRemove(ctx context.Context, in usecase.DeviceRemoveInput) error
	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListSettings(ctx context.Context) ([]entity.MemberSetting, error)
	UpdateSettings(ctx context.Context, in usecase.UpdateSettingsInput) error
	ListInbox(ctx context.Context, in usecase.ListInboxInput) (*usecase.ListInboxOutput, error)
	MarkInboxRead(ctx context.Context, in usecase.MarkInboxReadInput) error
	MarkAllInboxRead(ctx context.Context) error
	DeleteInbox(ctx context.Context, in usecase.DeleteInboxInput) error
}
