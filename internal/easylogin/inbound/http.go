package inbound

import (
	"context"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/usecase"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/router"
)

type uc interface {
	OtpStart(ctx context.Context, in usecase.OtpStartInput) error
	OtpVerify(ctx context.Context, in usecase.OtpVerifyInput) (*usecase.OtpVerifyOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Easy Login (passwordless, code by text message)
	r.POST("/otp/start", end.OtpStart)
	r.POST("/otp/verify", end.OtpVerify)
}
