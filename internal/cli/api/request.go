package api

import (
	"net/url"

	"github.com/yndnr/leasedesk-go/internal/cli/connection"
)

func requestOf(method, path string, body any) connection.Request {
	return connection.Request{Method: method, Path: path, Body: body}
}

func getOf(path string, query url.Values) connection.Request {
	return connection.Request{Path: path, Query: query}
}

func segment(id string) string {
	return url.PathEscape(id)
}
