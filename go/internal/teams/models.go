package teams

// CreateTeamForm is the team creation form. ImagePath, when set, sends the
// team as a multipart upload with the image attached.
type CreateTeamForm struct {
	Name      string
	City      string
	ImageURL  string
	ImagePath string
}

// TeamFilter represents filtering options for team queries
type TeamFilter struct {
	Query      string
	ActiveOnly bool
	// Mine restricts the list to teams created by the current user
	Mine bool
}
