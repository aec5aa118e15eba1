// Package domain defines the core domain models for leasedesk.
//
// This package contains the types shared by every layer of the client:
//
//   - session.go: User, Session, Credentials and the authentication State
//   - notification.go: Notification, Severity, DismissReason
//   - outcome.go: the tagged result of a backend call
//   - errors.go: DomainError and the LD-* error codes
//   - validation.go: client-side form validation
//   - rental.go: people, properties, contracts and payments
//   - order.go: purchase-suggestion orders
//
// Domain types carry no I/O; services and transports live elsewhere.
package domain
