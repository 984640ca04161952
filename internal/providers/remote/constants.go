package remote

import "time"

const (
	defaultHTTPTimeout = 30 * time.Second
	maxErrorBody       = 512
	providerName       = "remote"
)
