package ports

import (
	"time"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// ConversionMonitor records conversion runs and serves their counters
type ConversionMonitor interface {
	RecordConversion(duration time.Duration, documents int, artifacts []entities.Artifact, err error)
	RecordRequest()
	Snapshot() entities.RuntimeStats
}
