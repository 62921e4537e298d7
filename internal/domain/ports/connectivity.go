package ports

import "context"

// ConnectivityChecker tells whether the network is reachable before a fetch is attempted.
type ConnectivityChecker interface {
	Connected(ctx context.Context) bool
}
