package submission

import (
	"context"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/payload"
)

// RecordStore is the backing data store the controller dispatches to.
// Implementations report failures through the returned error; a
// *RemoteError carries server supplied messages and field errors.
type RecordStore interface {
	Create(ctx context.Context, p *payload.Payload) (hero.Record, error)
	Update(ctx context.Context, id string, p *payload.Payload) (hero.Record, error)
	Get(ctx context.Context, id string) (hero.Record, error)
}
