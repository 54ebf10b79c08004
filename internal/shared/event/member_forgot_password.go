package event

const MemberForgotPasswordDestination string = "member_forgot_password"
const MemberForgotPasswordConsumerNotification string = "member_forgot_password_notification"

type MemberForgotPasswordMessage struct {
	MemberID       int64  `json:"member_id"`
	Email          string `json:"email"`
	ChallengeToken string `json:"challenge_token"`
}
