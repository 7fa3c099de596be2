package light

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
	GetStatus Verb = "Light.GetStatus"
	Set       Verb = "Light.Set"
)

func DoGetStatus(ctx context.Context, ch types.RpcChannel, host string, id uint) (*types.Status, error) {
	var out types.Status
	query := url.Values{"id": {strconv.FormatUint(uint64(id), 10)}}
	if err := ch.Get(ctx, host, types.RpcPath(GetStatus.String()), query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DoSet sends the request as is; the response body is not inspected.
func DoSet(ctx context.Context, ch types.RpcChannel, host string, req *SetRequest) error {
	return ch.Post(ctx, host, types.RpcPath(Set.String()), req, nil)
}
