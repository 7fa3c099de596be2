package gen1

import (
	"encoding/json"
	"testing"
)

func TestRelayCommandQuery(t *testing.T) {
	for _, tc := range []struct {
		cmd  RelayCommand
		want string
	}{
		{RelayCommand{Turn: On}, "turn=on"},
		{RelayCommand{Turn: TurnFor(false)}, "turn=off"},
		{RelayCommand{Turn: Toggle}, "turn=toggle"},
		{RelayCommand{}, ""},
	} {
		q, err := tc.cmd.Query()
		if err != nil {
			t.Fatalf("Query(%+v) failed: %v", tc.cmd, err)
		}
		if got := q.Encode(); got != tc.want {
			t.Errorf("Query(%+v) = %q, want %q", tc.cmd, got, tc.want)
		}
	}
}

func TestRelayStatusDecode(t *testing.T) {
	var rs RelayStatus
	err := json.Unmarshal([]byte(`{"ison":true,"has_timer":false,"timer_started":0,"timer_duration":0,"timer_remaining":0,"source":"http"}`), &rs)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !rs.IsOn || rs.Source != "http" {
		t.Errorf("unexpected relay status %+v", rs)
	}
}

func TestRelayPath(t *testing.T) {
	if p := RelayPath(3); p != "/relay/3" {
		t.Errorf("RelayPath(3) = %q", p)
	}
}
