package apierror

// Problem type URIs used in the "type" member of RFC 9457 responses.
const (
	TypeValidation      = "urn:energy:error:validation"
	TypeNotFound        = "urn:energy:error:not_found"
	TypeRateLimit       = "urn:energy:error:rate_limit"
	TypeUnauthorized    = "urn:energy:error:unauthorized"
	TypeInternal        = "urn:energy:error:internal"
	TypeInvalidID       = "urn:energy:error:invalid_id"
	TypeFutureTimestamp = "urn:energy:error:future_timestamp"
	TypeBadRequest      = "urn:energy:error:bad_request"
)

// Human-readable titles for each problem type
const (
	TitleValidation      = "Validation Error"
	TitleNotFound        = "Resource Not Found"
	TitleRateLimit       = "Rate Limit Exceeded"
	TitleUnauthorized    = "Authentication Required"
	TitleInternal        = "Internal Server Error"
	TitleInvalidID       = "Invalid Identifier"
	TitleFutureTimestamp = "Future Timestamp Not Allowed"
	TitleBadRequest      = "Bad Request"
)

// Machine-readable codes carried in FieldError.Code
const (
	CodeRequired        = "required"
	CodeTooLong         = "too_long"
	CodeOutOfRange      = "out_of_range"
	CodeFutureTimestamp = "future_timestamp"
	CodeInvalidValue    = "invalid_value"
	CodeInvalidFormat   = "invalid_format"
)
