package auth

import "errors"

// ErrInvalidCredentials is returned for any authentication miss,
// including empty usernames or passwords. The message never reveals
// which field was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates principals against the static user table and
// issues session tokens for them
type Service struct {
	users  *UserStore
	signer *Signer
}

// NewService creates an auth service over the given user table and signer
func NewService(users *UserStore, signer *Signer) *Service {
	return &Service{users: users, signer: signer}
}

// LoginResult is the response payload for a successful login
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	User        LoginUser `json:"user"`
}

// LoginUser is the public projection of a principal; it carries no password
type LoginUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Authenticate looks up the exact (username, password) pair. Any miss,
// including absent fields, fails with ErrInvalidCredentials.
func (s *Service) Authenticate(username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, ok := s.users.Lookup(username)
	if !ok || user.Password != password {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// Login authenticates the credentials and issues a session token
func (s *Service) Login(username, password string) (*LoginResult, error) {
	user, err := s.Authenticate(username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.signer.Issue(*user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		User: LoginUser{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

// ResolveToken verifies a session token and returns its claims. It is
// called on every request to the protected surface.
func (s *Service) ResolveToken(token string) (*Claims, error) {
	return s.signer.Verify(token)
}
