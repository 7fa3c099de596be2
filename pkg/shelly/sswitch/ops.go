package sswitch

import (
	"context"
	"net/url"
	"strconv"

	"github.com/asnowfix/shelly-deck/pkg/shelly/types"
)

type Verb string

func (v Verb) String() string {
	return string(v)
}

const (
	GetStatus Verb = "Switch.GetStatus"
	Toggle    Verb = "Switch.Toggle"
	Set       Verb = "Switch.Set"
)

func DoGetStatus(ctx context.Context, ch types.RpcChannel, host string, id uint) (*types.Status, error) {
	var out types.Status
	query := url.Values{"id": {strconv.FormatUint(uint64(id), 10)}}
	if err := ch.Get(ctx, host, types.RpcPath(GetStatus.String()), query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func DoSet(ctx context.Context, ch types.RpcChannel, host string, id uint, on bool) (*SetResponse, error) {
	var out SetResponse
	if err := ch.Post(ctx, host, types.RpcPath(Set.String()), &SetRequest{Id: id, On: on}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DoToggle uses the native Switch.Toggle RPC.
func DoToggle(ctx context.Context, ch types.RpcChannel, host string, id uint) (*ToggleResponse, error) {
	var out ToggleResponse
	if err := ch.Post(ctx, host, types.RpcPath(Toggle.String()), &ToggleRequest{Id: id}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
