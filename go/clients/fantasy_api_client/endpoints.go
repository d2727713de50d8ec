package fantasy_api_client

const (
	// Base URL
	DefaultBaseURL = "http://localhost:8000"

	// Auth endpoints
	LoginEndpoint    = "/login"
	RegisterEndpoint = "/register/"
	MeEndpoint       = "/users/me/"

	// League endpoints
	LeaguesEndpoint      = "/leagues"
	LeagueSearchEndpoint = "/leagues/search"
	LeagueJoinEndpoint   = "/leagues/%d/join"

	// Season endpoints
	SeasonsEndpoint       = "/seasons/"
	CurrentSeasonEndpoint = "/seasons/current"

	// Team endpoints
	TeamsEndpoint      = "/teams"
	TeamEndpoint       = "/teams/%d"
	TeamUploadEndpoint = "/teams/upload"

	// Player endpoints
	PlayersEndpoint           = "/players"
	PlayerUploadEndpoint      = "/players/upload"
	PlayerBatchUploadEndpoint = "/players/batch-upload"

	// Multipart field names
	ImageField = "image"
	FileField  = "file"
)
