package types

import (
	"context"
	"net/url"
)

// RpcChannel is the transport the component packages call through.
type RpcChannel interface {
	Get(ctx context.Context, host string, path string, query url.Values, out any) error
	Post(ctx context.Context, host string, path string, params any, out any) error
	Probe(ctx context.Context, host string, path string) bool
}

// RpcPath returns the Gen2 HTTP path of an RPC method, e.g. "/rpc/Switch.Set".
func RpcPath(method string) string {
	return "/rpc/" + method
}
