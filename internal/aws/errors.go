package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// Codes a resource endpoint returns when presented with a session issued at
// an incompatible STS endpoint scope. Re-issuing the session against the
// region's own STS endpoint resolves these.
var endpointMismatchCodes = map[string]struct{}{
	"InvalidClientTokenId":        {},
	"UnrecognizedClientException": {},
	"AuthFailure":                 {},
}

// IsEndpointMismatch reports whether err is a credential-endpoint mismatch,
// the one failure class worth retrying with regionally issued credentials.
// Classification uses the structured API error code, never the error text.
func IsEndpointMismatch(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	_, ok := endpointMismatchCodes[apiErr.ErrorCode()]
	return ok
}

// ErrorCode returns the provider error code carried by err, or an empty
// string if err has no API error in its chain.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return ""
	}
	return apiErr.ErrorCode()
}
