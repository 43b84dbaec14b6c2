/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to CustomError templates, used to
standardize HTTP responses and outbound error events.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Messaging and Update Feed Errors
	ErrUpdateNotFound:      {Code: ErrUpdateNotFound, Message: "Update not found."},
	ErrReactionTypeInvalid: {Code: ErrReactionTypeInvalid, Message: "Unknown reaction type."},
	ErrMessageTextEmpty:    {Code: ErrMessageTextEmpty, Message: "Message text is required."},
	ErrMessageTextTooLong:  {Code: ErrMessageTextTooLong, Message: "Message is too long."},
	ErrRecipientRequired:   {Code: ErrRecipientRequired, Message: "Message recipient is required."},
	ErrUpdateTitleRequired: {Code: ErrUpdateTitleRequired, Message: "Update title is required."},

	// 3xxx: Identity and Session Errors
	ErrUnauthenticated:  {Code: ErrUnauthenticated, Message: "Please sign in to continue."},
	ErrUnauthorized:     {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrFileSizeTooLarge: {Code: ErrFileSizeTooLarge, Message: "File is too large."},
	ErrFileTypeInvalid:  {Code: ErrFileTypeInvalid, Message: "Unsupported file type."},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrPersistenceFailed: {Code: ErrPersistenceFailed, Message: "Failed to save your data. Please try again."},
	ErrDeliveryFailed:    {Code: ErrDeliveryFailed, Message: "Saved, but delivery failed. Please refresh."},
	ErrStorageFailed:     {Code: ErrStorageFailed, Message: "File upload failed. Please try again."},
}
