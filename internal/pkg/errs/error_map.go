/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to CustomError values, standardizing the
HTTP status and client message attached to every business error.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// Entries without an explicit Status fall back to HTTP 400.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Game Room, Match, and Content Errors
	ErrRoomCodeExists:   {Code: ErrRoomCodeExists, Message: "Room code already exists.", Status: http.StatusConflict},
	ErrRoomNotFound:     {Code: ErrRoomNotFound, Message: "Game room not found.", Status: http.StatusNotFound},
	ErrRoomIsFull:       {Code: ErrRoomIsFull, Message: "This game room is full.", Status: http.StatusConflict},
	ErrMatchInvalid:     {Code: ErrMatchInvalid, Message: "Invalid match result."},
	ErrMessageTooLong:   {Code: ErrMessageTooLong, Message: "Message is too long."},
	ErrFileSizeTooLarge: {Code: ErrFileSizeTooLarge, Message: "File is too large."},
	ErrFileTypeInvalid:  {Code: ErrFileTypeInvalid, Message: "Unsupported file type."},

	// 3xxx: Credential and Session Errors
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrInvalidToken:       {Code: ErrInvalidToken, Message: "Your session is invalid or has expired.", Status: http.StatusUnauthorized},
	ErrSessionExpired:     {Code: ErrSessionExpired, Message: "Your session has ended. Please sign in again.", Status: http.StatusUnauthorized},
	ErrIncorrectPassword:  {Code: ErrIncorrectPassword, Message: "Password is incorrect.", Status: http.StatusForbidden},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password.", Status: http.StatusUnauthorized},
	ErrTwoFACodeInvalid:   {Code: ErrTwoFACodeInvalid, Message: "Verification code is wrong or has expired.", Status: http.StatusUnauthorized},
	ErrUsernameTaken:      {Code: ErrUsernameTaken, Message: "Username is already taken.", Status: http.StatusConflict},
	ErrEmailTaken:         {Code: ErrEmailTaken, Message: "Email is already in use.", Status: http.StatusConflict},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrInvalidUsername:    {Code: ErrInvalidUsername, Message: "Invalid username."},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Invalid password."},
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Invalid email address."},
	ErrSamePassword:       {Code: ErrSamePassword, Message: "New password must differ from the current one."},
	ErrAlreadyLoggedIn:    {Code: ErrAlreadyLoggedIn, Message: "You are already signed in."},

	// 5xxx: Internal System Errors
	ErrUnknown:            {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrMailDeliveryFailed: {Code: ErrMailDeliveryFailed, Message: "Could not send the email. Please try again later.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed:  {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusInternalServerError},
}
