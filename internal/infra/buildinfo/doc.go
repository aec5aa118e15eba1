// Package buildinfo exposes the version of leasedesk-cli.
//
// Values are injected at build time:
//
//	go build -ldflags "-X github.com/yndnr/leasedesk-go/internal/infra/buildinfo.Version=v1.0.0 \
//	  -X github.com/yndnr/leasedesk-go/internal/infra/buildinfo.Commit=abc123"
//
// When built without ldflags, the module version and VCS revision recorded
// by the Go toolchain are used instead.
package buildinfo
