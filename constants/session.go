package constants

// Session cookie names. SessionCookie carries the signed claims for an
// authenticated user; PendingCookie carries the pending-verification user id.
// The two are mutually exclusive: setting one clears the other.
const (
	SessionCookie = "tb_session"
	PendingCookie = "tb_pending"
)

// Session lifetimes
const (
	SessionHours    = 8      // browser-session login
	RememberMeHours = 7 * 24 // "remember me" login
	PendingMinutes  = 30     // window to complete OTP verification
)
