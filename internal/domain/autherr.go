package domain

// Auth error codes emitted by the auth service. The codes are the machine
// identity of a failure; AuthErrorMessage turns them into the sentence shown
// to the user.
const (
	AuthCodeInvalidEmail      = "auth/invalid-email"
	AuthCodeEmailInUse        = "auth/email-already-exists"
	AuthCodeUserNotFound      = "auth/user-not-found"
	AuthCodeMissingPassword   = "auth/missing-password"
	AuthCodeInvalidPassword   = "auth/invalid-password"
	AuthCodeInvalidCredential = "auth/invalid-credential"
	AuthCodeWeakPassword      = "auth/weak-password"
)

// AuthErrorMessage maps an auth error code to a user-facing sentence.
// Unknown codes get a generic retry message.
func AuthErrorMessage(code string) string {
	switch code {
	case AuthCodeInvalidEmail:
		return "The email address is not valid."
	case AuthCodeEmailInUse:
		return "The provided email is already in use by an existing user."
	case AuthCodeUserNotFound:
		return "There is no user corresponding to the given email."
	case AuthCodeMissingPassword:
		return "The password is required."
	case AuthCodeInvalidPassword, AuthCodeInvalidCredential:
		return "The password is invalid for the given email, or the account does not have a password set."
	case AuthCodeWeakPassword:
		return "The password should be at least 6 characters long."
	default:
		return "An unknown error occurred. Please try again."
	}
}

// AuthError is a typed auth failure carrying its code. Error() returns the
// translated user-facing message, so callers can surface it directly.
type AuthError struct {
	Code string
}

// NewAuthError wraps an auth error code in an AuthError.
func NewAuthError(code string) *AuthError {
	return &AuthError{Code: code}
}

// Error returns the translated message for the error's code.
func (e *AuthError) Error() string {
	return AuthErrorMessage(e.Code)
}
