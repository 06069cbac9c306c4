package constant

const (
	DefaultListLimit = 10
	MaxListLimit     = 100

	// LoginRoute is the client-side route the API client navigates to after a
	// 401 response invalidates the session.
	LoginRoute = "/login"

	// AuthorizationHeader and BearerPrefix describe the credential header sent
	// on authenticated requests.
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)
