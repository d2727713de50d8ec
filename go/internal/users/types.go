package users

// RegisterForm represents the data needed to create a new account
type RegisterForm struct {
	Name            string
	Email           string
	Alias           string
	Password        string
	ConfirmPassword string
}

// UpdateProfileForm represents the data that can be updated for the current user.
// Empty fields are left unchanged.
type UpdateProfileForm struct {
	Name            string
	Alias           string
	Password        string
	ConfirmPassword string
}
