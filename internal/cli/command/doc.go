// Package command defines the leasedesk-cli command tree.
//
// Every command runs against one Runtime: the session manager, the
// notification slot, the recovery policy and the backend client. Protected
// commands go through the route guard; anonymous use of them is refused
// with a sign-in hint, and the interactive shell replays the refused line
// once login succeeds.
//
// Command groups:
//
//	login, logout, whoami          session
//	people, property, contract     records
//	payment                        contract payments
//	order                          purchase-suggestion orders
//	report                         expiring contracts, properties, payments
//	config, version, shell         local
package command
