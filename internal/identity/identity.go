package identity

type Role string

const (
	RoleCustomer Role = "customer"
	RoleDoctor   Role = "doctor"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated caller of a single request.
type Identity struct {
	UserID uint
	Role   Role
}

func (i Identity) Is(role Role) bool {
	return i.Role == role
}
