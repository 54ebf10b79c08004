package entity

import "strconv"

type MemberStatus int16

const (
	// MemberStatusUnknown is mean status is not known / not set.
	MemberStatusUnknown MemberStatus = 0

	// MemberStatusUnverified mean member exists but has not completed verification.
	MemberStatusUnverified MemberStatus = 1

	// MemberStatusActive mean member is verified and allowed to use the app.
	MemberStatusActive MemberStatus = 2

	// MemberStatusBanned mean member is blocked from using the app (policy/abuse/etc).
	MemberStatusBanned MemberStatus = 3

	// MemberStatusInactive mean member is not currently active (e.g., deactivated, closed).
	MemberStatusInactive MemberStatus = 4
)

func (ms MemberStatus) String() string {
	switch ms {
	case MemberStatusActive:
		return "Active"
	case MemberStatusBanned:
		return "Banned"
	case MemberStatusInactive:
		return "Inactive"
	case MemberStatusUnverified:
		return "Unverified"
	default:
		return "Unknown"
	}
}

func (ms MemberStatus) IsUnknown() bool {
	switch ms {
	case MemberStatusUnverified, MemberStatusActive, MemberStatusBanned, MemberStatusInactive:
		return false
	default:
		return true
	}
}

func (ms MemberStatus) Ensure() MemberStatus {
	switch ms {
	case MemberStatusActive:
		return MemberStatusActive
	case MemberStatusBanned:
		return MemberStatusBanned
	case MemberStatusInactive:
		return MemberStatusInactive
	case MemberStatusUnverified:
		return MemberStatusUnverified
	default:
		return MemberStatusUnknown
	}
}

func ParseSafeMemberStatuses(raws []string) []MemberStatus {
	out := make([]MemberStatus, 0)
	seen := map[MemberStatus]struct{}{}

	for _, v := range raws {
		n, err := strconv.ParseInt(v, 10, 16)
		if err != nil {
			continue
		}

		s := MemberStatus(n)
		if s.IsUnknown() {
			continue
		}

		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

func ToInt16Slice(sts []MemberStatus) []int16 {
	out := make([]int16, len(sts))
	for i, s := range sts {
		out[i] = int16(s)
	}
	return out
}

type EnrollMethod int16

const (
	EnrollMethodUnknown EnrollMethod = 0

	// EnrollMethodSelf mean the member registered through the public form.
	EnrollMethodSelf EnrollMethod = 1

	// EnrollMethodProvider mean the member was linked from an external identity provider.
	EnrollMethodProvider EnrollMethod = 2

	// EnrollMethodOperator mean a church operator created the record on the member's behalf.
	EnrollMethodOperator EnrollMethod = 3
)

func (em EnrollMethod) String() string {
	switch em {
	case EnrollMethodSelf:
		return "Self"
	case EnrollMethodProvider:
		return "Provider"
	case EnrollMethodOperator:
		return "Operator"
	default:
		return "Unknown"
	}
}

type ChallengePurpose int16

const (
	ChallengePurposeUnknown        ChallengePurpose = 0
	ChallengePurposeEasyLoginOTP   ChallengePurpose = 1
	ChallengePurposeLoginLink      ChallengePurpose = 2
	ChallengePurposeRegisterVerify ChallengePurpose = 3
	ChallengePurposePasswordReset  ChallengePurpose = 4
)
