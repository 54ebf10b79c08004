package inbound

import (
	"context"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/usecase"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	LoginLink(ctx context.Context, in usecase.LoginLinkInput) (*usecase.LoginLinkOutput, error)

	Register(ctx context.Context, in usecase.RegisterInput) error
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) error

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) error
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error
	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error

	Profile(ctx context.Context, in usecase.ProfileInput) (*usecase.ProfileOutput, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) error
	PhotoUpload(ctx context.Context, in usecase.PhotoUploadInput) error

	MemberList(ctx context.Context, in usecase.MemberListInput) (*usecase.MemberListOutput, error)
	MemberDetail(ctx context.Context, in usecase.MemberDetailInput) (*usecase.MemberDetailOutput, error)
	MemberCreate(ctx context.Context, in usecase.MemberCreateInput) error
	MemberUpdate(ctx context.Context, in usecase.MemberUpdateInput) error
	MemberDelete(ctx context.Context, in usecase.MemberDeleteInput) error
	MemberExport(ctx context.Context, in usecase.MemberExportInput) (*usecase.MemberExportOutput, error)
	MemberImport(ctx context.Context, in usecase.MemberImportInput) (*usecase.MemberImportOutput, error)

	Birthdays(ctx context.Context, in usecase.BirthdaysInput) (*usecase.BirthdaysOutput, error)
	Stats(ctx context.Context) (*usecase.StatsOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Authentication
	r.POST("/api/v1/identity/login", end.Login)
	r.POST("/api/v1/identity/login/link", end.LoginLink)
	//
	r.POST("/api/v1/identity/register", end.Register)
	r.POST("/api/v1/identity/register/verify", end.RegisterVerify)

	// Password Management
	r.POST("/api/v1/identity/password/forgot", end.PasswordForgot)
	r.POST("/api/v1/identity/password/reset", end.PasswordReset)
	r.POST("/api/v1/identity/password/change", end.PasswordChange) // need authenticated

	// Member Profile (need authenticated)
	r.GET("/api/v1/identity/profile", end.Profile)
	r.PUT("/api/v1/identity/profile", end.ProfileUpdate)
	r.PUT("/api/v1/identity/profile/photo", end.PhotoUpload)

	// Member Directory (need authenticated & authorization)
	r.GET("/api/v1/membership/members", end.MemberList)
	r.GET("/api/v1/membership/members/:id", end.MemberDetail)
	r.POST("/api/v1/membership/members", end.MemberCreate)
	r.PUT("/api/v1/membership/members/:id", end.MemberUpdate)
	r.DELETE("/api/v1/membership/members/:id", end.MemberDelete)
	r.GET("/api/v1/membership/members-export", end.MemberExport)
	r.POST("/api/v1/membership/members-import", end.MemberImport)

	// Congregation views (need authenticated & authorization)
	r.GET("/api/v1/membership/birthdays", end.Birthdays)
	r.GET("/api/v1/membership/stats", end.Stats)
}
