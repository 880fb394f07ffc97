package handlers

const (
	PlayerCookieName   = "player_session"
	BankPasscodeHeader = "X-Bank-Passcode"

	ErrInvalidRequestBody  = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrTooManyRequests     = "Too many requests"
	ErrInternalServerError = "Internal server error"
)
