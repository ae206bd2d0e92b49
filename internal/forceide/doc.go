// Package forceide gathers ISV org credentials from forceide:// URIs.
//
// Gatherer prompts once for a URI, validates that it carries both the url
// and sessionId query parameters, and resolves to either a CancelResponse
// or a ContinueResponse. Incomplete input is reported through an
// ErrorNotifier and never surfaces as an error value.
package forceide
