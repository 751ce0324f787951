// Package delivery defines the transport-facing contracts of the
// application. Concrete servers live in subpackages.
package delivery

import "context"

// Delivery is a transport server started by the application runner.
// Serve blocks until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
