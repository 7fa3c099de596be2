package shelly

import (
	"context"

	"github.com/asnowfix/shelly-deck/pkg/shelly/gen1"
	"github.com/asnowfix/shelly-deck/pkg/shelly/light"
	"github.com/asnowfix/shelly-deck/pkg/shelly/sswitch"
	"github.com/asnowfix/shelly-deck/pkg/shelly/types"
)

const gen1DeviceInfoPath = gen1.DeviceInfoPath

// protocol is the generation specific wire shape of the switch operations.
type protocol interface {
	status(ctx context.Context, ip string, kind types.ComponentKind, id uint) (*types.Status, error)
	setSwitch(ctx context.Context, ip string, id uint, on bool) (bool, error)
	// atomicToggle is true when toggleSwitch is the default toggle strategy.
	atomicToggle() bool
}

type toggler interface {
	toggleSwitch(ctx context.Context, ip string, id uint) (bool, error)
}

type gen1Protocol struct {
	ch types.RpcChannel
}

// Gen1 only has relays: the component kind is ignored and no light fields
// are reported.
func (p gen1Protocol) status(ctx context.Context, ip string, kind types.ComponentKind, id uint) (*types.Status, error) {
	var rs gen1.RelayStatus
	if err := p.ch.Get(ctx, ip, gen1.RelayPath(id), nil, &rs); err != nil {
		return nil, err
	}
	return &types.Status{
		Id:     int(id),
		Source: rs.Source,
		Output: rs.IsOn,
	}, nil
}

func (p gen1Protocol) turn(ctx context.Context, ip string, id uint, turn gen1.Turn) (bool, error) {
	query, err := gen1.RelayCommand{Turn: turn}.Query()
	if err != nil {
		return false, err
	}
	if err := p.ch.Get(ctx, ip, gen1.RelayPath(id), query, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (p gen1Protocol) setSwitch(ctx context.Context, ip string, id uint, on bool) (bool, error) {
	return p.turn(ctx, ip, id, gen1.TurnFor(on))
}

func (p gen1Protocol) toggleSwitch(ctx context.Context, ip string, id uint) (bool, error) {
	return p.turn(ctx, ip, id, gen1.Toggle)
}

func (p gen1Protocol) atomicToggle() bool {
	return true
}

type gen2Protocol struct {
	ch types.RpcChannel
}

func (p gen2Protocol) status(ctx context.Context, ip string, kind types.ComponentKind, id uint) (*types.Status, error) {
	if kind == types.Light {
		return light.DoGetStatus(ctx, p.ch, ip, id)
	}
	return sswitch.DoGetStatus(ctx, p.ch, ip, id)
}

func (p gen2Protocol) setSwitch(ctx context.Context, ip string, id uint, on bool) (bool, error) {
	res, err := sswitch.DoSet(ctx, p.ch, ip, id, on)
	if err != nil {
		return false, err
	}
	return res.Confirms(on), nil
}

func (p gen2Protocol) toggleSwitch(ctx context.Context, ip string, id uint) (bool, error) {
	if _, err := sswitch.DoToggle(ctx, p.ch, ip, id); err != nil {
		return false, err
	}
	return true, nil
}

func (p gen2Protocol) atomicToggle() bool {
	return false
}
