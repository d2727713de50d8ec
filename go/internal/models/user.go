package models

// Role is the authorization role carried by a user profile
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserProfile is the snapshot returned by the backend "current user" endpoint.
// It is replaced wholesale on every refetch.
type UserProfile struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Alias         string `json:"alias"`
	Role          Role   `json:"role"`
	AccountStatus string `json:"account_status,omitempty"`
}

// IsAdmin reports whether the profile has the admin role
func (u *UserProfile) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token issued by the backend
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	UserID      int64  `json:"user_id,omitempty"`
}

// RegisterRequest is the body of POST /register/
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Alias    string `json:"alias" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"fantasy_password"`
}

// UpdateProfileRequest is the body of PUT /users/me/. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Alias    *string `json:"alias,omitempty" validate:"omitempty,min=1,max=50"`
	Password *string `json:"password,omitempty" validate:"omitempty,fantasy_password"`
}
