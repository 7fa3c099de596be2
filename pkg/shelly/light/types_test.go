package light

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intp(i int) *int { return &i }

// TestColorClamped validates that out-of-range channels are clamped before use
func TestColorClamped(t *testing.T) {
	got := Color{Red: 300, Green: -10, Blue: 128, White: 999, Brightness: intp(150)}.Clamped()
	want := Color{Red: 255, Green: 0, Blue: 128, White: 255, Brightness: intp(100)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Clamped() mismatch (-want +got):\n%s", diff)
	}

	got = Color{Red: 1, Green: 2, Blue: 3, White: 4}.Clamped()
	if got.Brightness != nil {
		t.Errorf("absent brightness became %d", *got.Brightness)
	}
}

// TestSetRequestOmitsUnset validates that unset fields are left out of the body
func TestSetRequestOmitsUnset(t *testing.T) {
	buf, err := json.Marshal(&SetRequest{Id: 0, Brightness: intp(40)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(buf) != `{"id":0,"brightness":40}` {
		t.Errorf("unexpected body %s", buf)
	}

	off := false
	buf, err = json.Marshal(&SetRequest{Id: 1, On: &off, Brightness: intp(0)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(buf) != `{"id":1,"on":false,"brightness":0}` {
		t.Errorf("unexpected body %s", buf)
	}
}

func TestClampBrightness(t *testing.T) {
	for in, want := range map[int]int{-5: 0, 0: 0, 55: 55, 100: 100, 101: 100} {
		if got := ClampBrightness(in); got != want {
			t.Errorf("ClampBrightness(%d) = %d, want %d", in, got, want)
		}
	}
}
