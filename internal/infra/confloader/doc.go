// Package confloader layers configuration sources with koanf.
//
// Priority, lowest to highest:
//
//  1. Defaults (a map)
//  2. .env file (godotenv), prefixed keys only
//  3. YAML file
//  4. Environment variables
//  5. Command-line flags (a map)
//
// Environment names are resolved against the keys already loaded, so
// LEASEDESK_STORE_REDIS_URL maps to store.redis_url rather than
// store.redis.url. Watcher reports edits of the config file.
package confloader
