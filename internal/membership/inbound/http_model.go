package inbound

import (
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type LoginLinkRequest struct {
	Token string `json:"token"`
}

type LoginLinkResponse struct {
	AccessToken string `json:"access_token"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

type RegisterResponse struct{}

func (RegisterResponse) Message() string {
	return "Registration successful. Please check your email to verify your account."
}

type RegisterVerifyRequest struct {
	ChallengeToken string `json:"challenge_token"`
}

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct{}

func (PasswordForgotResponse) Message() string {
	return "If an account with that email exists, we have sent a password reset link."
}

type PasswordResetRequest struct {
	ChallengeToken string `json:"challenge_token"`
	NewPassword    string `json:"new_password"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UpdateProfileRequest struct {
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

type ProfileResponse struct {
	ID               int64  `json:"id,string"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	Phone            string `json:"phone"`
	BirthDate        string `json:"birth_date,omitempty"`
	PhotoURL         string `json:"photo_url"`
	Status           string `json:"status"`
	EnrollMethod     string `json:"enroll_method"`
	EasyLoginEnabled bool   `json:"easy_login_enabled"`
}

type MemberResponse struct {
	ID               int64               `json:"id,string"`
	FullName         string              `json:"full_name"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone"`
	BirthDate        string              `json:"birth_date,omitempty"`
	Status           entity.MemberStatus `json:"status"`
	EnrollMethod     entity.EnrollMethod `json:"enroll_method"`
	EasyLoginEnabled bool                `json:"easy_login_enabled"`
	PhotoURL         string              `json:"photo_url"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

type MemberCreateRequest struct {
	FullName         string `json:"full_name"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone"`
	BirthDate        string `json:"birth_date,omitempty"`
	EasyLoginEnabled bool   `json:"easy_login_enabled"`
}

type MemberUpdateRequest struct {
	FullName         string              `json:"full_name,omitempty"`
	Email            string              `json:"email,omitempty"`
	Phone            string              `json:"phone,omitempty"`
	BirthDate        string              `json:"birth_date,omitempty"`
	Status           entity.MemberStatus `json:"status,omitempty"`
	EasyLoginEnabled *bool               `json:"easy_login_enabled,omitempty"`
}

type MembersResponse struct {
	Members []MemberResponse `json:"members"`
	// meta
	total int64
	size  int32
	page  int32
}

func (r MembersResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"size":  r.size,
		"page":  r.page,
	}
}

type MemberDetailResponse struct {
	Member MemberResponse `json:"member"`
}

type MemberExportResponse struct {
	FileURL string `json:"file_url"`
	Total   int64  `json:"total"`
}

type MemberImportRequest struct {
	IdempotencyKey string                      `json:"idempotency_key"`
	Members        []MemberImportMemberRequest `json:"members"`
}

type MemberImportMemberRequest struct {
	FullName         string              `json:"full_name"`
	Email            string              `json:"email,omitempty"`
	Phone            string              `json:"phone"`
	BirthDate        string              `json:"birth_date,omitempty"`
	Status           entity.MemberStatus `json:"status,omitempty"`
	EasyLoginEnabled bool                `json:"easy_login_enabled"`
}

type MemberImportResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

type BirthdayMemberResponse struct {
	ID        int64  `json:"id,string"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	PhotoURL  string `json:"photo_url"`
	BirthDate string `json:"birth_date"`
}

type BirthdaysResponse struct {
	Month   int                      `json:"month"`
	Members []BirthdayMemberResponse `json:"members"`
}

type StatsResponse struct {
	TotalMembers       int64            `json:"total_members"`
	ByStatus           map[string]int64 `json:"by_status"`
	ByEnrollMethod     map[string]int64 `json:"by_enroll_method"`
	EasyLoginEligible  int64            `json:"easy_login_eligible"`
	BirthdaysThisMonth int64            `json:"birthdays_this_month"`
	ChallengesIssued   int64            `json:"challenges_issued"`
	ChallengesConsumed int64            `json:"challenges_consumed"`
}
