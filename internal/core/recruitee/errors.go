package recruitee

import "errors"

var (
	// ErrUpstreamUnavailable covers network failures and 5xx responses that
	// survived the retry budget.
	ErrUpstreamUnavailable = errors.New("recruitee api unavailable")

	// ErrUpstreamRejected covers auth, permission and not-found responses.
	// Never retried.
	ErrUpstreamRejected = errors.New("recruitee api rejected request")

	// ErrInvalidCriteria marks malformed search parameters, rejected before
	// any upstream call is made.
	ErrInvalidCriteria = errors.New("invalid search criteria")
)
