package ports

import (
	"context"

	"github.com/lobalabs/lobabot/pkg/domain"
)

// RecordSink accepts completed-flow records. The conversation state
// commits before Submit is attempted, so a sink failure never rolls a
// flow back; the bridge only logs it.
type RecordSink interface {
	Submit(ctx context.Context, record *domain.Record) error
}
