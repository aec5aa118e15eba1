// Package config defines the leasedesk-cli configuration, stored by
// default in ~/.leasedesk/cli.yaml.
package config
