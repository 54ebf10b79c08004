package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/usecase"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUC struct {
	startErr   error
	verifyOut  *usecase.OtpVerifyOutput
	verifyErr  error
	lastStart  usecase.OtpStartInput
	lastVerify usecase.OtpVerifyInput
}

func (s *stubUC) OtpStart(_ context.Context, in usecase.OtpStartInput) error {
	s.lastStart = in
	return s.startErr
}

func (s *stubUC) OtpVerify(_ context.Context, in usecase.OtpVerifyInput) (*usecase.OtpVerifyOutput, error) {
	s.lastVerify = in
	return s.verifyOut, s.verifyErr
}

func newRequest(t *testing.T, body string) *router.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/otp/start", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:51234"
	return &router.Request{Request: req}
}

func TestOtpStartEndpoint(t *testing.T) {
	t.Run("ProcessedIsAlwaysTheSameBody", func(t *testing.T) {
		uc := &stubUC{}
		h := &HTTPEndpoint{uc: uc}

		resp, err := h.OtpStart(newRequest(t, `{"name":"Kim Minji","phoneLast4":"1234"}`))
		require.NoError(t, err)

		out := resp.(OtpResponse)
		assert.False(t, out.Success)
		assert.Equal(t, "processed", out.Message)
		assert.Equal(t, http.StatusOK, out.StatusCode())
		assert.Equal(t, "Kim Minji", uc.lastStart.Name)
		assert.Equal(t, "1234", uc.lastStart.PhoneLast4)
		assert.Equal(t, "203.0.113.7", uc.lastStart.OriginIP)
	})

	t.Run("ProcessedBodiesAreByteIdenticalAcrossOutcomes", func(t *testing.T) {
		h := &HTTPEndpoint{uc: &stubUC{}}

		first, err := h.OtpStart(newRequest(t, `{"name":"Kim Minji","phoneLast4":"1234"}`))
		require.NoError(t, err)
		second, err := h.OtpStart(newRequest(t, `{"name":"No Such Person","phoneLast4":"0000"}`))
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("RateLimitedIs429", func(t *testing.T) {
		h := &HTTPEndpoint{uc: &stubUC{startErr: usecase.ErrRateLimited}}

		resp, err := h.OtpStart(newRequest(t, `{"name":"Kim Minji","phoneLast4":"1234"}`))
		require.NoError(t, err)

		out := resp.(OtpResponse)
		assert.False(t, out.Success)
		assert.Equal(t, "too many requests", out.Message)
		assert.Equal(t, http.StatusTooManyRequests, out.StatusCode())
	})

	t.Run("ValidationErrorIs400", func(t *testing.T) {
		h := &HTTPEndpoint{uc: &stubUC{startErr: goerror.NewInvalidFormat("phoneLast4 must be exactly 4 digits")}}

		resp, err := h.OtpStart(newRequest(t, `{"name":"Kim Minji","phoneLast4":"12"}`))
		require.NoError(t, err)

		out := resp.(OtpResponse)
		assert.False(t, out.Success)
		assert.Equal(t, http.StatusBadRequest, out.StatusCode())
	})

	t.Run("UndecodableBodyIs400", func(t *testing.T) {
		h := &HTTPEndpoint{uc: &stubUC{}}

		resp, err := h.OtpStart(newRequest(t, `{not json`))
		require.NoError(t, err)

		out := resp.(OtpResponse)
		assert.Equal(t, http.StatusBadRequest, out.StatusCode())
	})
}

func TestOtpVerifyEndpoint(t *testing.T) {
	t.Run("SuccessCarriesLoginInfo", func(t *testing.T) {
		uc := &stubUC{verifyOut: &usecase.OtpVerifyOutput{
			Success: true,
			Message: "verified",
			Grant: &entity.SessionGrant{
				Method:    entity.GrantMethodMagicLink,
				Email:     "minji@example.com",
				MagicLink: "https://app.alllove.church/easy-login?token=abc",
			},
		}}
		h := &HTTPEndpoint{uc: uc}

		resp, err := h.OtpVerify(newRequest(t, `{"name":"Kim Minji","phoneLast4":"1234","code":"654321"}`))
		require.NoError(t, err)

		out := resp.(OtpResponse)
		assert.True(t, out.Success)
		assert.Equal(t, http.StatusOK, out.StatusCode())
		require.NotNil(t, out.LoginInfo)
		assert.Equal(t, "magiclink", out.LoginInfo.Method)
		assert.Equal(t, "minji@example.com", out.LoginInfo.Email)
		assert.NotEmpty(t, out.LoginInfo.MagicLink)
		assert.Empty(t, out.LoginInfo.TempPassword)
		assert.Equal(t, "654321", uc.lastVerify.Code)
	})

	t.Run("FailureOmitsLoginInfo", func(t *testing.T) {
		h := &HTTPEndpoint{uc: &stubUC{verifyOut: &usecase.OtpVerifyOutput{Success: false, Message: "incorrect code"}}}

		resp, err := h.OtpVerify(newRequest(t, `{"name":"Kim Minji","phoneLast4":"1234","code":"111111"}`))
		require.NoError(t, err)

		out := resp.(OtpResponse)
		assert.False(t, out.Success)
		assert.Equal(t, "incorrect code", out.Message)
		assert.Equal(t, http.StatusOK, out.StatusCode())
		assert.Nil(t, out.LoginInfo)

		raw, err := json.Marshal(out)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "loginInfo")
	})

	t.Run("TempPasswordGrant", func(t *testing.T) {
		h := &HTTPEndpoint{uc: &stubUC{verifyOut: &usecase.OtpVerifyOutput{
			Success: true,
			Message: "verified",
			Grant: &entity.SessionGrant{
				Method:       entity.GrantMethodPassword,
				Email:        "minji@example.com",
				TempPassword: "p-9f2c",
			},
		}}}

		resp, err := h.OtpVerify(newRequest(t, `{"name":"Kim Minji","phoneLast4":"1234","code":"654321"}`))
		require.NoError(t, err)

		out := resp.(OtpResponse)
		require.NotNil(t, out.LoginInfo)
		assert.Equal(t, "password", out.LoginInfo.Method)
		assert.Equal(t, "p-9f2c", out.LoginInfo.TempPassword)
		assert.Empty(t, out.LoginInfo.MagicLink)
	})

	t.Run("ValidationErrorIs400", func(t *testing.T) {
		h := &HTTPEndpoint{uc: &stubUC{verifyErr: goerror.NewInvalidFormat("code must be exactly 6 digits")}}

		resp, err := h.OtpVerify(newRequest(t, `{"name":"Kim Minji","phoneLast4":"1234","code":"12"}`))
		require.NoError(t, err)

		out := resp.(OtpResponse)
		assert.False(t, out.Success)
		assert.Equal(t, http.StatusBadRequest, out.StatusCode())
	})
}
