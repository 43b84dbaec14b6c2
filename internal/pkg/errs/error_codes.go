/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
and in payloads sent to clients.
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

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Messaging and Update Feed Errors
const (
	// ErrUpdateNotFound indicates that the referenced update post does not exist.
	ErrUpdateNotFound = 2101

	// ErrReactionTypeInvalid indicates that the requested reaction category is not recognized.
	ErrReactionTypeInvalid = 2102

	// ErrMessageTextEmpty indicates that a direct message carried no text.
	ErrMessageTextEmpty = 2201

	// ErrMessageTextTooLong indicates that a direct message exceeded the maximum length.
	ErrMessageTextTooLong = 2202

	// ErrRecipientRequired indicates that a direct message named no recipient.
	ErrRecipientRequired = 2203

	// ErrUpdateTitleRequired indicates that an update post was submitted without a title.
	ErrUpdateTitleRequired = 2301
)

// 3xxx: Identity and Session Errors
const (
	// ErrUnauthenticated indicates that no user identity is associated with the connection.
	ErrUnauthenticated = 3001

	// ErrUnauthorized indicates that the request lacked a valid identity token.
	ErrUnauthorized = 3002

	// ErrFileSizeTooLarge indicates that an avatar upload exceeded the size limit.
	ErrFileSizeTooLarge = 3101

	// ErrFileTypeInvalid indicates that an avatar upload used an unsupported file type.
	ErrFileTypeInvalid = 3102
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown is an unclassified internal server error.
	ErrUnknown = 5000

	// ErrPersistenceFailed indicates that a data store operation failed.
	ErrPersistenceFailed = 5001

	// ErrDeliveryFailed indicates a secondary failure after successful persistence,
	// e.g. a profile lookup needed to enrich an already stored record.
	ErrDeliveryFailed = 5002

	// ErrStorageFailed indicates that the object storage service failed.
	ErrStorageFailed = 5003
)
