package httpx

const (
	// sessionCookieName is the cookie the route guard reads on every request.
	sessionCookieName = "session_id"

	// loginPath is where unauthenticated browser navigations are redirected.
	// The originally requested path is never carried along; a fresh login
	// lands on the role's landing path instead.
	loginPath = "/login"
)

// viewPayloadLimit caps how many records a view embeds inline. Larger data
// sets go through the /api/ endpoints with their own paging.
const viewPayloadLimit = 100
