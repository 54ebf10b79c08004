package inbound

import (
	"errors"
	"net"
	"net/http"
	"sort"
	"strings"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/easylogin/usecase"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/router"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/validator"
)

// HTTPEndpoint exposes the two OTP endpoints. Their wire contract is fixed:
// every body is {success, message, loginInfo?}, and nothing beyond the two
// response shapes ever reaches the caller.
type HTTPEndpoint struct {
	uc uc
}

// OtpStart requests a one-time login code.
// @Summary Start easy login
// @Description Resolves the claimed identity and, when it matches exactly one eligible member, sends a one-time code by text message. The response never confirms whether a code was sent.
// @Tags EasyLogin
// @Accept json
// @Produce json
// @Param request body OtpStartRequest true "Identity claim"
// @Success 200 {object} OtpResponse "Processed (success is always false here)"
// @Failure 400 {object} OtpResponse "Malformed input"
// @Failure 429 {object} OtpResponse "Rate limited"
// @Router /otp/start [post]
func (h *HTTPEndpoint) OtpStart(r *router.Request) (any, error) {
	var req OtpStartRequest
	if err := r.DecodeBody(&req); err != nil {
		return badRequest(err), nil
	}

	err := h.uc.OtpStart(r.Context(), usecase.OtpStartInput{
		Name:       req.Name,
		PhoneLast4: req.PhoneLast4,
		OriginIP:   originIP(r),
	})
	switch {
	case err == nil:
		return OtpResponse{Success: false, Message: "processed"}, nil
	case errors.Is(err, usecase.ErrRateLimited):
		return OtpResponse{Success: false, Message: "too many requests", status: http.StatusTooManyRequests}, nil
	default:
		return badRequest(err), nil
	}
}

// OtpVerify checks a submitted code and returns a session grant on a match.
// @Summary Verify easy login code
// @Description Verifies the one-time code against the newest challenge for the resolved member and returns sign-in instructions on success.
// @Tags EasyLogin
// @Accept json
// @Produce json
// @Param request body OtpVerifyRequest true "Identity claim with code"
// @Success 200 {object} OtpResponse "Verification result"
// @Failure 400 {object} OtpResponse "Malformed input"
// @Router /otp/verify [post]
func (h *HTTPEndpoint) OtpVerify(r *router.Request) (any, error) {
	var req OtpVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return badRequest(err), nil
	}

	resp, err := h.uc.OtpVerify(r.Context(), usecase.OtpVerifyInput{
		Name:       req.Name,
		PhoneLast4: req.PhoneLast4,
		Code:       req.Code,
		OriginIP:   originIP(r),
	})
	if err != nil {
		return badRequest(err), nil
	}

	out := OtpResponse{Success: resp.Success, Message: resp.Message}
	if resp.Grant != nil {
		out.LoginInfo = &LoginInfoResponse{
			Method:       resp.Grant.Method.String(),
			Email:        resp.Grant.Email,
			MagicLink:    resp.Grant.MagicLink,
			TempPassword: resp.Grant.TempPassword,
		}
	}

	return out, nil
}

// badRequest folds any decode or validation error into the contract's 400
// body, keeping the field messages when the validator produced them.
func badRequest(err error) OtpResponse {
	msg := "invalid request data"

	var errValidate validator.V10ValidationError
	if errors.As(err, &errValidate) {
		values := errValidate.Values()
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, values[k])
		}
		if len(parts) > 0 {
			msg = strings.Join(parts, "; ")
		}
	} else {
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			msg = gerr.Msg()
		}
	}

	return OtpResponse{Success: false, Message: msg, status: http.StatusBadRequest}
}

func originIP(r *router.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
