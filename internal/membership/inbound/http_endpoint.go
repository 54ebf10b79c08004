package inbound

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/entity"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/membership/usecase"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for member authentication, profile,
// and directory management workflows.
type HTTPEndpoint struct {
	uc uc
}

func parseBirthDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, goerror.NewInvalidFormat("birth_date must be YYYY-MM-DD")
	}
	return &t, nil
}

func formatBirthDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func toMemberResponse(m entity.Member) MemberResponse {
	return MemberResponse{
		ID:               m.ID,
		FullName:         m.FullName,
		Email:            m.Email,
		Phone:            m.Phone,
		BirthDate:        formatBirthDate(m.BirthDate),
		Status:           m.Status,
		EnrollMethod:     m.EnrollMethod,
		EasyLoginEnabled: m.EasyLoginEnabled,
		PhotoURL:         m.PhotoURL,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toMemberResponses(members []entity.Member) []MemberResponse {
	return lo.Map(members, func(m entity.Member, _ int) MemberResponse {
		return toMemberResponse(m)
	})
}

// Login authenticates a member and returns an access token.
// @Summary Authenticate member
// @Description Validates credentials and returns an access token.
// @Tags Membership, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{AccessToken: resp.AccessToken}, nil
}

// LoginLink exchanges a single-use sign-in link token for an access token.
// @Summary Sign in with link
// @Description Consumes a single-use sign-in token and returns an access token.
// @Tags Membership, Authentication
// @Accept json
// @Produce json
// @Param request body LoginLinkRequest true "Sign-in link payload"
// @Success 200 {object} router.successResponse{data=LoginLinkResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired link"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/login/link [post]
func (h *HTTPEndpoint) LoginLink(r *router.Request) (any, error) {
	var req LoginLinkRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.LoginLink(r.Context(), usecase.LoginLinkInput{Token: req.Token})
	if err != nil {
		return nil, err
	}

	return LoginLinkResponse{AccessToken: resp.AccessToken}, nil
}

// Register creates a new member account.
// @Summary Register member
// @Description Creates a new account and sends a verification email.
// @Tags Membership, Authentication
// @Accept json
// @Param request body RegisterRequest true "Registration payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	if err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		Phone:     req.Phone,
		BirthDate: birthDate,
	}); err != nil {
		return nil, err
	}

	return &RegisterResponse{}, nil
}

// RegisterVerify verifies a member's email using a verification token.
// @Summary Verify email
// @Description Confirms the member's email address using the provided verification token.
// @Tags Membership, Authentication
// @Accept json
// @Param request body RegisterVerifyRequest true "Email verification payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Verification token not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/register/verify [post]
func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req RegisterVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{ChallengeToken: req.ChallengeToken})
}

// PasswordForgot initiates a password reset flow.
// @Summary Request password reset
// @Description Sends password reset instructions to the provided email address.
// @Tags Membership, Authentication
// @Accept json
// @Param request body PasswordForgotRequest true "Forgot password payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/forgot [post]
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return &PasswordForgotResponse{}, nil
}

// PasswordReset completes a password reset using a reset token.
// @Summary Reset password
// @Description Sets a new password using the provided reset token.
// @Tags Membership, Authentication
// @Accept json
// @Param request body PasswordResetRequest true "Reset password payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Reset token not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/reset [post]
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		ChallengeToken: req.ChallengeToken,
		NewPassword:    req.NewPassword,
	})
}

// PasswordChange updates the current member's password.
// @Summary Change password
// @Description Updates the member's password after validating the current password.
// @Tags Membership, Profile
// @Security BearerAuth
// @Accept json
// @Param request body PasswordChangeRequest true "Change password payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/change [post]
func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	var req PasswordChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
}

// Profile retrieves the current member's profile details.
// @Summary Get profile
// @Description Returns profile information for the authenticated member.
// @Tags Membership, Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile result"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context(), usecase.ProfileInput{})
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:               resp.ID,
		Email:            resp.Email,
		FullName:         resp.FullName,
		Phone:            resp.Phone,
		BirthDate:        formatBirthDate(resp.BirthDate),
		PhotoURL:         resp.PhotoURL,
		Status:           resp.Status,
		EnrollMethod:     resp.EnrollMethod,
		EasyLoginEnabled: resp.EasyLoginEnabled,
	}, nil
}

// ProfileUpdate updates the current member's profile information.
// @Summary Update profile
// @Description Updates profile details for the authenticated member.
// @Tags Membership, Profile
// @Security BearerAuth
// @Accept json
// @Param request body UpdateProfileRequest true "Profile update payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile [put]
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req UpdateProfileRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	return nil, h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		BirthDate: birthDate,
	})
}

// PhotoUpload updates the current member's photo.
// @Summary Update profile photo
// @Description Uploads a new photo for the authenticated member.
// @Tags Membership, Profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Param photo formData file true "Member photo"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile/photo [put]
func (h *HTTPEndpoint) PhotoUpload(r *router.Request) (any, error) {
	ctx := r.Context()

	file, err := r.StreamSingleFile("photo")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close file", "error", err)
		}
	}()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.PhotoUpload(ctx, usecase.PhotoUploadInput{
		File:        io.MultiReader(bytes.NewReader(head[:n]), file),
		ContentType: http.DetectContentType(head[:n]),
	})
}

// MemberList returns a list of members with optional filters.
// @Summary List members
// @Description Returns a paginated list of members with optional search and status filters.
// @Tags Membership, Directory
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by full name, email, or phone"
// @Param sort_by query string false "Sort by full name, created_at and etc."
// @Param sort_order query string false "Sort order asc or desc"
// @Param status query []int false "Filter by statuses (1=unverified|2=active|3=banned|4=inactive)"
// @Param date_from query string false "Filter by created_at >= date_from (RFC3339)"
// @Param date_to query string false "Filter by created_at <= date_to (RFC3339)"
// @Param size query int false "Pagination size"
// @Param page query int false "Pagination page"
// @Success 200 {object} router.successResponse{data=MembersResponse} "Member list"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/membership/members [get]
func (h *HTTPEndpoint) MemberList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	dateFrom, err := r.GetQueryDate("date_from", time.RFC3339)
	if err != nil {
		return nil, err
	}

	dateTo, err := r.GetQueryDate("date_to", time.RFC3339)
	if err != nil {
		return nil, err
	}

	if !dateFrom.IsZero() && !dateTo.IsZero() && dateFrom.After(dateTo) {
		return nil, goerror.NewInvalidFormat("date_from must be before date_to")
	}

	resp, err := h.uc.MemberList(r.Context(), usecase.MemberListInput{
		Search:    r.GetQuery("search"),
		Statuses:  r.GetQueries("status"),
		SortBy:    r.GetQuery("sort_by"),
		SortOrder: r.GetQuery("sort_order"),
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Size:      size,
		Page:      page,
	})
	if err != nil {
		return nil, err
	}

	return MembersResponse{
		total:   resp.Total,
		size:    resp.Size,
		page:    resp.Page,
		Members: toMemberResponses(resp.Members),
	}, nil
}

// @Summary Get member detail
// @Description Returns member details for a given member ID.
// @Tags Membership, Directory
// @Security BearerAuth
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} router.successResponse{data=MemberDetailResponse} "Member detail"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Member not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/membership/members/{id} [get]
func (h *HTTPEndpoint) MemberDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.MemberDetail(r.Context(), usecase.MemberDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return MemberDetailResponse{Member: toMemberResponse(resp.Member)}, nil
}

// @Summary Create member
// @Description Enrolls a new member on their behalf.
// @Tags Membership, Directory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body MemberCreateRequest true "Member creation payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/membership/members [post]
func (h *HTTPEndpoint) MemberCreate(r *router.Request) (any, error) {
	var req MemberCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	if err := h.uc.MemberCreate(r.Context(), usecase.MemberCreateInput{
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		BirthDate:        birthDate,
		EasyLoginEnabled: req.EasyLoginEnabled,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// @Summary Update member
// @Description Updates a member by ID.
// @Tags Membership, Directory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param request body MemberUpdateRequest true "Member update payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Member not found"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/membership/members/{id} [put]
func (h *HTTPEndpoint) MemberUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req MemberUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	if err := h.uc.MemberUpdate(r.Context(), usecase.MemberUpdateInput{
		ID:               id,
		Email:            req.Email,
		FullName:         req.FullName,
		Phone:            req.Phone,
		BirthDate:        birthDate,
		Status:           req.Status,
		EasyLoginEnabled: req.EasyLoginEnabled,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// @Summary Delete member
// @Description Marks a member as deleted by ID.
// @Tags Membership, Directory
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Member not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/membership/members/{id} [delete]
func (h *HTTPEndpoint) MemberDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.MemberDelete(r.Context(), usecase.MemberDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}

// @Summary Export members
// @Description Renders the filtered member directory as CSV and returns a download link.
// @Tags Membership, Directory
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by full name, email, or phone"
// @Param status query []int false "Filter by member status"
// @Param sort_by query string false "Sort by full name, created_at and etc."
// @Param sort_order query string false "Sort order: asc, desc"
// @Param date_from query string false "Filter by created_at >= date_from (RFC3339)"
// @Param date_to query string false "Filter by created_at <= date_to (RFC3339)"
// @Success 200 {object} router.successResponse{data=MemberExportResponse} "Member export"
// @Failure 400 {object} router.errorResponse "Invalid query parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/membership/members-export [get]
func (h *HTTPEndpoint) MemberExport(r *router.Request) (any, error) {
	dateFrom, err := r.GetQueryDate("date_from", time.RFC3339)
	if err != nil {
		return nil, err
	}

	dateTo, err := r.GetQueryDate("date_to", time.RFC3339)
	if err != nil {
		return nil, err
	}

	if !dateFrom.IsZero() && !dateTo.IsZero() && dateFrom.After(dateTo) {
		return nil, goerror.NewInvalidFormat("date_from must be before date_to")
	}

	resp, err := h.uc.MemberExport(r.Context(), usecase.MemberExportInput{
		Search:    r.GetQuery("search"),
		Statuses:  r.GetQueries("status"),
		SortBy:    r.GetQuery("sort_by"),
		SortOrder: r.GetQuery("sort_order"),
		DateFrom:  dateFrom,
		DateTo:    dateTo,
	})
	if err != nil {
		return nil, err
	}

	return MemberExportResponse{
		FileURL: resp.FileURL,
		Total:   resp.Total,
	}, nil
}

// @Summary Import members
// @Description Imports members in bulk under an idempotency key.
// @Tags Membership, Directory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body MemberImportRequest true "Member import payload"
// @Success 200 {object} router.successResponse{data=MemberImportResponse} "Member import result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 409 {object} router.errorResponse "Import already submitted"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/membership/members-import [post]
func (h *HTTPEndpoint) MemberImport(r *router.Request) (any, error) {
	var req MemberImportRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	members := make([]usecase.MemberImportMemberInput, 0, len(req.Members))
	for _, item := range req.Members {
		birthDate, err := parseBirthDate(item.BirthDate)
		if err != nil {
			return nil, err
		}

		members = append(members, usecase.MemberImportMemberInput{
			FullName:         item.FullName,
			Email:            item.Email,
			Phone:            item.Phone,
			BirthDate:        birthDate,
			Status:           item.Status,
			EasyLoginEnabled: item.EasyLoginEnabled,
		})
	}

	resp, err := h.uc.MemberImport(r.Context(), usecase.MemberImportInput{
		IdempotencyKey: req.IdempotencyKey,
		Members:        members,
	})
	if err != nil {
		return nil, err
	}

	return MemberImportResponse{
		Created: resp.Created,
		Updated: resp.Updated,
	}, nil
}

// @Summary List birthdays
// @Description Returns members whose birthday falls in the given month, sorted by day.
// @Tags Membership, Directory
// @Security BearerAuth
// @Produce json
// @Param month query int false "Month number (1-12), defaults to the current month"
// @Success 200 {object} router.successResponse{data=BirthdaysResponse} "Birthday list"
// @Failure 400 {object} router.errorResponse "Invalid query parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/membership/birthdays [get]
func (h *HTTPEndpoint) Birthdays(r *router.Request) (any, error) {
	month, err := r.GetQueryInt32("month")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Birthdays(r.Context(), usecase.BirthdaysInput{Month: time.Month(month)})
	if err != nil {
		return nil, err
	}

	members := lo.Map(resp.Members, func(m entity.BirthdayMember, _ int) BirthdayMemberResponse {
		return BirthdayMemberResponse{
			ID:        m.ID,
			FullName:  m.FullName,
			Phone:     m.Phone,
			PhotoURL:  m.PhotoURL,
			BirthDate: m.BirthDate.Format(time.DateOnly),
		}
	})

	return BirthdaysResponse{
		Month:   int(resp.Month),
		Members: members,
	}, nil
}

// @Summary Get membership stats
// @Description Returns aggregate statistics for the member directory.
// @Tags Membership, Directory
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=StatsResponse} "Membership stats"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/membership/stats [get]
func (h *HTTPEndpoint) Stats(r *router.Request) (any, error) {
	resp, err := h.uc.Stats(r.Context())
	if err != nil {
		return nil, err
	}

	return StatsResponse{
		TotalMembers:       resp.Stats.TotalMembers,
		ByStatus:           resp.Stats.ByStatus,
		ByEnrollMethod:     resp.Stats.ByEnrollMethod,
		EasyLoginEligible:  resp.Stats.EasyLoginEligible,
		BirthdaysThisMonth: resp.Stats.BirthdaysThisMonth,
		ChallengesIssued:   resp.Stats.ChallengesIssued,
		ChallengesConsumed: resp.Stats.ChallengesConsumed,
	}, nil
}
