// Package api is the typed client of the rental-contracts backend.
//
// Every call goes through connection.HTTPClient and then through the
// service.Recovery policy, so a 401 anywhere signs the session out and any
// other failure leaves a notification for the user. Form inputs are
// validated locally before the first request is sent.
package api
