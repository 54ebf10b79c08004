package event

const MemberRegisteredDestination string = "member_registered"
const MemberRegisteredConsumerNotification string = "member_registered_notification"

type MemberRegisteredMessage struct {
	MemberID       int64  `json:"member_id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	ChallengeToken string `json:"challenge_token"`
}
