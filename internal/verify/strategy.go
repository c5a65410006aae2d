package verify

import (
	"context"

	"github.com/relcheck/relcheck/pkg/trust"
)

// Strategy is one tier of the remote hash resolution chain. Resolve returns
// (nil, nil) when the release offers nothing for this tier to work with and
// (nil, err) when an attempt was made and failed. Both fall through to the
// next tier; only a non-nil record stops the chain.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context) (*trust.HashRecord, error)
}
