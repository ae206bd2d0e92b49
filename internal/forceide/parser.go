package forceide

import (
	"net/url"
)

const (
	loginURLQueryParameterConstant       = "url"
	sessionIDQueryParameterConstant      = "sessionId"
	missingSessionIDErrorMessageConstant = "forceide URI is missing the sessionId query parameter"
	missingLoginURLErrorMessageConstant  = "forceide URI is missing the url query parameter"
)

// MissingSessionIDError reports a URI without a usable sessionId parameter.
type MissingSessionIDError struct {
	Cause error
}

// Error describes the missing parameter.
func (missingError MissingSessionIDError) Error() string {
	return missingSessionIDErrorMessageConstant
}

// Unwrap exposes the URI parse failure, if any.
func (missingError MissingSessionIDError) Unwrap() error {
	return missingError.Cause
}

// MissingLoginURLError reports a URI without a usable url parameter.
type MissingLoginURLError struct{}

// Error describes the missing parameter.
func (MissingLoginURLError) Error() string {
	return missingLoginURLErrorMessageConstant
}

// Parse extracts credentials from a forceide:// URI.
// sessionId is checked before url, and a URI that cannot be parsed is
// reported as missing its sessionId. Unrelated query pairs that fail to
// decode are ignored.
func Parse(rawURI string) (Credentials, error) {
	parsedURI, parseError := url.Parse(rawURI)
	if parseError != nil {
		return Credentials{}, MissingSessionIDError{Cause: parseError}
	}

	// Query drops malformed pairs and keeps the rest.
	queryValues := parsedURI.Query()
	sessionID := queryValues.Get(sessionIDQueryParameterConstant)
	if len(sessionID) == 0 {
		return Credentials{}, MissingSessionIDError{}
	}

	loginURL := queryValues.Get(loginURLQueryParameterConstant)
	if len(loginURL) == 0 {
		return Credentials{}, MissingLoginURLError{}
	}

	return Credentials{LoginURL: loginURL, SessionID: sessionID}, nil
}
