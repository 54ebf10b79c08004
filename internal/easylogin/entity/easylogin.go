package entity

import (
	"time"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/valueobject"
)

// Member is the slice of the member row the easy-login flow needs.
type Member struct {
	ID               int64
	FullName         string
	Email            string
	Phone            string
	Status           MemberStatus
	EnrollMethod     EnrollMethod
	EasyLoginEnabled bool
}

// Eligible reports whether the member may use the passwordless flow.
//
// A member qualifies when the account is active and either the flag is set
// explicitly or the record was provisioned by an operator on the member's
// behalf.
func (m Member) Eligible() bool {
	if m.Status != MemberStatusActive {
		return false
	}

	return m.EasyLoginEnabled || m.EnrollMethod == EnrollMethodOperator
}

type Challenge struct {
	ID          int64
	MemberID    int64
	Token       string // one-way hash, never the plaintext code
	Purpose     ChallengePurpose
	ExpiresAt   time.Time
	Attempts    int16
	Consumed    bool
	RequesterIP string
	Metadata    valueobject.JSONMap
	CreatedAt   time.Time
}

// SessionGrant is the outcome of a successful verification: either a
// single-use sign-in link or a one-time credential pair.
type SessionGrant struct {
	Method       GrantMethod
	Email        string
	MagicLink    string
	TempPassword string
}
