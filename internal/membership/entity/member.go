package entity

import (
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/valueobject"
)

type Member struct {
	ID               int64
	FullName         string
	Email            string
	Phone            string
	BirthDate        *time.Time
	Status           MemberStatus
	EnrollMethod     EnrollMethod
	EasyLoginEnabled bool
	PhotoURL         string
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type Challenge struct {
	ID        int64
	MemberID  int64
	Token     string
	Purpose   ChallengePurpose
	ExpiresAt time.Time
	Metadata  valueobject.JSONMap
}

// ---- //

type MemberLoginInfo struct {
	ID       int64
	Email    string
	Status   MemberStatus
	Password string
}

type MemberCredentialInfo struct {
	ID       int64
	Email    string
	Status   MemberStatus
	Password string
}

// ChallengeMember joins a challenge row with its owning member for the
// token-driven flows (login link, register verify, password reset).
type ChallengeMember struct {
	ChallengeID      int64
	ChallengePurpose ChallengePurpose
	ChallengeToken   string
	Consumed         bool
	ExpiresAt        time.Time
	MemberID         int64
	MemberEmail      string
	MemberStatus     MemberStatus
}

type VerifyMemberRegistration struct {
	ChallengeID int64
	MemberID    int64
	OldStatus   MemberStatus
	NewStatus   MemberStatus
}

type MemberListFilterData struct {
	IsFilterBySearch bool
	IsFilterByStatus bool
	Search           string
	Statuses         []int16
	DateFrom         time.Time
	DateTo           time.Time
	Size             int32
	Page             int32
	OrderBy          string
	OrderDirection   string
}

type NewMember struct {
	ID               int64
	FullName         string
	Email            string
	Phone            string
	BirthDate        *time.Time
	Status           MemberStatus
	EnrollMethod     EnrollMethod
	EasyLoginEnabled bool
	PhotoURL         string
}

type PatchMember struct {
	ID               int64
	FullName         string
	Email            string
	Phone            string
	BirthDate        *time.Time
	Status           MemberStatus
	EasyLoginEnabled *bool
	PhotoURL         string
}

type UpsertMember struct {
	ID               int64
	FullName         string
	Email            string
	Phone            string
	BirthDate        *time.Time
	Status           MemberStatus
	EnrollMethod     EnrollMethod
	EasyLoginEnabled bool
}

// BirthdayMember is a directory row for the birthday view.
type BirthdayMember struct {
	ID        int64
	FullName  string
	Phone     string
	PhotoURL  string
	BirthDate time.Time
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalMembers       int64
	ByStatus           map[string]int64
	ByEnrollMethod     map[string]int64
	EasyLoginEligible  int64
	BirthdaysThisMonth int64
	ChallengesIssued   int64 // last 30 days
	ChallengesConsumed int64 // last 30 days
}
