package entity

type MemberStatus int16

const (
	MemberStatusUnknown MemberStatus = 0

	// MemberStatusUnverified mean member exists but has not completed verification.
	MemberStatusUnverified MemberStatus = 1

	// MemberStatusActive mean member is verified and allowed to use the app.
	MemberStatusActive MemberStatus = 2

	// MemberStatusBanned mean member is blocked from using the app.
	MemberStatusBanned MemberStatus = 3

	// MemberStatusInactive mean member is not currently active (deactivated, closed).
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

type GrantMethod string

const (
	GrantMethodMagicLink GrantMethod = "magiclink"
	GrantMethodPassword  GrantMethod = "password"
)

func (gm GrantMethod) String() string {
	return string(gm)
}
