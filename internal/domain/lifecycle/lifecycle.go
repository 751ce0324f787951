// Package lifecycle holds shared timeouts for component startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds how long a component may take to start or stop
// before its lifecycle hook gives up.
const DefaultTimeout = 10 * time.Second
