package constant

// Casbin objects.
const (
	PermMembershipMgmtMembers = "membership:members"
	PermMembershipMgmtStats   = "membership:stats"
)

// Casbin actions.
const (
	PermActRead   = "read"
	PermActCreate = "create"
	PermActUpdate = "update"
	PermActDelete = "delete"
)
