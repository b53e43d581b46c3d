package common

// SessionCookieName is the cookie that carries the signed session token.
// Matches the name the web client expects.
const SessionCookieName = "jwt"

// SessionCookiePath limits the session cookie to the API surface.
const SessionCookiePath = "/api"
