// Package main provides the entry point for leasedesk-cli.
//
// leasedesk-cli is the back-office client of the rental-contracts backend:
//
//   - Sign in and out, with the session kept in a local token store
//   - People, properties, contracts and payments
//   - Purchase-suggestion orders
//   - Expiring-contract, property and payment reports
//
// Usage:
//
//	leasedesk-cli login --email ana@example.com
//	leasedesk-cli contract list -o json
//	leasedesk-cli report payments --month 10 --year 2026
//	leasedesk-cli shell
package main
