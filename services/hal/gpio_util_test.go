package hal

import "testing"

func TestParsePull(t *testing.T) {
	cases := map[string]Pull{
		"up":       PullUp,
		" UP ":     PullUp,
		"pullup":   PullUp,
		"down":     PullDown,
		"pulldown": PullDown,
		"none":     PullNone,
		"":         PullNone,
		"sideways": PullNone,
	}
	for in, want := range cases {
		if got := ParsePull(in); got != want {
			t.Errorf("ParsePull(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPullStringRoundTrip(t *testing.T) {
	for _, p := range []Pull{PullNone, PullUp, PullDown} {
		if got := ParsePull(p.String()); got != p {
			t.Errorf("round trip of %v gave %v", p, got)
		}
	}
}

func TestItoa(t *testing.T) {
	if itoa(0) != "0" || itoa(25) != "25" || itoa(-3) != "-3" {
		t.Fatal("unexpected itoa output")
	}
}
