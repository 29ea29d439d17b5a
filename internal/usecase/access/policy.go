package access

import "sync"

// Roles understood by the policy
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// userActions is the fixed capability set of the "user" role.
var userActions = map[string]bool{
	"transfer": true,
	"view":     true,
	"card":     true,
}

// Policy is a static role-to-capability check. Admin authorizes every
// action, user authorizes the fixed set, anything else denies. Deny by
// default. Each Policy owns its role table; instances do not share state.
type Policy struct {
	mu    sync.RWMutex
	roles map[string]string
}

// NewPolicy creates a new access Policy instance
func NewPolicy() *Policy {
	return &Policy{
		roles: make(map[string]string),
	}
}

// AssignRole sets the role for a user, replacing any previous assignment.
func (p *Policy) AssignRole(userID, role string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roles[userID] = role
}

// Check reports whether the user's role authorizes the action.
func (p *Policy) Check(userID, action string) bool {
	p.mu.RLock()
	role := p.roles[userID]
	p.mu.RUnlock()

	switch role {
	case RoleAdmin:
		return true
	case RoleUser:
		return userActions[action]
	default:
		return false
	}
}
