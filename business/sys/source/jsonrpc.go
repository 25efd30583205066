package source

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
)

// RPCCall performs a single JSON-RPC 2.0 call against the endpoint and
// decodes the result into result. The Solana and NEAR directories speak
// plain JSON-RPC over HTTP.
func RPCCall(ctx context.Context, endpoint string, result any, method string, args ...any) error {
	client, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", endpoint, err)
	}
	defer client.Close()

	if err := client.CallContext(ctx, result, method, args...); err != nil {
		return fmt.Errorf("calling %s on %s: %w", method, endpoint, err)
	}

	return nil
}
