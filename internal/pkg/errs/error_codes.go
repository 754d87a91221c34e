/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system failures both internally
and in responses sent to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Game Room, Match, and Content Errors
const (
	// ErrRoomCodeExists indicates a room code collision on creation.
	ErrRoomCodeExists = 2101

	// ErrRoomNotFound indicates the requested game room does not exist.
	ErrRoomNotFound = 2102

	// ErrRoomIsFull indicates the game room reached its player capacity.
	ErrRoomIsFull = 2103

	// ErrMatchInvalid indicates a match record that fails validation
	// (identical players, winner not among the players, negative scores).
	ErrMatchInvalid = 2201

	// ErrMessageTooLong indicates a chat message over the maximum length.
	ErrMessageTooLong = 2301

	// ErrFileSizeTooLarge indicates an uploaded file over the size limit.
	ErrFileSizeTooLarge = 2401

	// ErrFileTypeInvalid indicates an uploaded file with a disallowed type.
	ErrFileTypeInvalid = 2402
)

// 3xxx: Credential and Session Errors
const (
	// ErrUnauthorized indicates a missing or malformed bearer credential.
	ErrUnauthorized = 3001

	// ErrInvalidToken indicates a tampered, unsigned, or expired session token.
	ErrInvalidToken = 3002

	// ErrSessionExpired indicates a token that no longer matches the stored
	// session (superseded by a newer sign-in or cleared by logout).
	ErrSessionExpired = 3003

	// ErrIncorrectPassword indicates a failed password re-verification on a
	// sensitive mutation.
	ErrIncorrectPassword = 3004

	// ErrInvalidCredentials indicates a failed sign-in attempt.
	ErrInvalidCredentials = 3005

	// ErrTwoFACodeInvalid indicates a wrong or expired two-factor email code.
	ErrTwoFACodeInvalid = 3006

	// ErrUsernameTaken indicates a username uniqueness conflict.
	ErrUsernameTaken = 3101

	// ErrEmailTaken indicates an email uniqueness conflict.
	ErrEmailTaken = 3102

	// ErrUserNotFound indicates an unknown user id or email.
	ErrUserNotFound = 3103

	// ErrInvalidUsername indicates a username that fails validation.
	ErrInvalidUsername = 3104

	// ErrInvalidPassword indicates a password that fails validation.
	ErrInvalidPassword = 3105

	// ErrInvalidEmail indicates an email address that fails validation.
	ErrInvalidEmail = 3106

	// ErrSamePassword indicates a password change where the new password
	// equals the old one.
	ErrSamePassword = 3107

	// ErrAlreadyLoggedIn indicates a register/login attempt with a valid session.
	ErrAlreadyLoggedIn = 3108
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal server error.
	ErrUnknown = 5000

	// ErrMailDeliveryFailed indicates the mail transport rejected a message.
	ErrMailDeliveryFailed = 5001

	// ErrFileStorageFailed indicates an object storage operation failed.
	ErrFileStorageFailed = 5002
)
