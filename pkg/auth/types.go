package auth

// Role represents the access tier of a principal
type Role string

const (
	// RoleAdmin has unrestricted read access and may request sideloads
	RoleAdmin Role = "admin"
	// RoleNormal has unrestricted read access but no sideloads
	RoleNormal Role = "normal"
	// RoleLimited only sees loci reachable through the region allow-list
	RoleLimited Role = "limited"
)

// Valid reports whether r is one of the three known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleNormal, RoleLimited:
		return true
	}
	return false
}

// User is a statically provisioned principal. The password is opaque and
// compared verbatim; it is never serialized.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// UserStore is an immutable username lookup table. It is constructed
// once at process start and passed into the Service; there is no way to
// add or remove users afterwards.
type UserStore struct {
	byUsername map[string]User
	byID       map[int64]User
}

// NewUserStore builds a store from the given users. Later entries with a
// duplicate username overwrite earlier ones.
func NewUserStore(users []User) *UserStore {
	s := &UserStore{
		byUsername: make(map[string]User, len(users)),
		byID:       make(map[int64]User, len(users)),
	}
	for _, u := range users {
		s.byUsername[u.Username] = u
		s.byID[u.ID] = u
	}
	return s
}

// Lookup returns the user with the given username
func (s *UserStore) Lookup(username string) (User, bool) {
	u, ok := s.byUsername[username]
	return u, ok
}

// LookupID returns the user with the given id
func (s *UserStore) LookupID(id int64) (User, bool) {
	u, ok := s.byID[id]
	return u, ok
}

// Len returns the number of provisioned users
func (s *UserStore) Len() int {
	return len(s.byUsername)
}

// DefaultUsers returns the built-in principal table: one user per role
func DefaultUsers() []User {
	return []User{
		{ID: 1, Username: "admin", Password: "admin123", Role: RoleAdmin},
		{ID: 2, Username: "normal", Password: "normal123", Role: RoleNormal},
		{ID: 3, Username: "limited", Password: "limited123", Role: RoleLimited},
	}
}
