package sender

import (
	"context"

	"github.com/hostfacts-labs/hostfacts/pkg/models"
)

// Sender is the interface for delivering a report to an ingest endpoint
type Sender interface {
	// Send delivers one assembled report
	Send(ctx context.Context, report *models.HardwareReport) error

	// Close closes the sender and releases resources
	Close() error
}
