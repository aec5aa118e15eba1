// Package tlsroots builds client TLS configuration: the system certificate
// pool, optionally extended with a private CA from tls.ca_file.
package tlsroots
