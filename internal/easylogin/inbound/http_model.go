package inbound

import "net/http"

type OtpStartRequest struct {
	Name       string `json:"name"`
	PhoneLast4 string `json:"phoneLast4"`
}

type OtpVerifyRequest struct {
	Name       string `json:"name"`
	PhoneLast4 string `json:"phoneLast4"`
	Code       string `json:"code"`
}

// LoginInfoResponse tells the caller which follow-up action to take:
// redirect by link, or sign in with the one-time credential.
type LoginInfoResponse struct {
	Method       string `json:"method"`
	Email        string `json:"email"`
	MagicLink    string `json:"magicLink,omitempty"`
	TempPassword string `json:"tempPassword,omitempty"`
}

// OtpResponse is the fixed wire shape of both OTP endpoints. Failure bodies
// are structurally identical across causes; only the message text differs.
type OtpResponse struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message"`
	LoginInfo *LoginInfoResponse `json:"loginInfo,omitempty"`

	status int
}

// PlainBody opts this response out of the standard JSON envelope.
func (OtpResponse) PlainBody() {}

func (r OtpResponse) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
