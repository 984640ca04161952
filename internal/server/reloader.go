package server

import (
	"context"

	"github.com/preston-bernstein/ipl-stats-service/internal/reloader"
)

// Reloader defines the minimal dataset lifecycle behavior needed by the server.
type Reloader interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Reload(ctx context.Context) error
	Status() reloader.Status
}
