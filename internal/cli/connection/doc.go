// Package connection is the REST transport of leasedesk-cli.
//
// HTTPClient attaches the bearer token, a request ID and the User-Agent to
// every call, applies an optional client-side rate limit, and turns each
// answer into a domain.Outcome so callers switch on the result kind rather
// than on status codes.
package connection
