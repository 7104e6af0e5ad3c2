// Package identity holds the caller identity and role types shared by the
// auth service and the privileged handlers.
package identity

// Role is the coarse authorization label attached to a user record.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// DefaultRole applies to callers with no user record.
const DefaultRole = RoleUser

// Subject identifies a verified caller.
type Subject struct {
	ID string
}

// UserRecord mirrors the users/{id} document in the user store. The gateway
// only acts on Role; Email and Name are carried for audit logging.
type UserRecord struct {
	ID    string
	Role  Role
	Email string
	Name  string
}
