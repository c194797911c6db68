package feedback

import "context"

// Repo appends feedback records to durable storage.
type Repo interface {
	Append(ctx context.Context, rec Record) error
}
