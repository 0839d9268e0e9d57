package common

import "testing"

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("SKYFLAP_TEST_INT", "42")
	t.Setenv("SKYFLAP_TEST_BAD", "forty")
	t.Setenv("SKYFLAP_TEST_STR", "tuning-dev")

	cases := []struct {
		name string
		got  int64
		want int64
	}{
		{"set", EnvInt64("SKYFLAP_TEST_INT", 7), 42},
		{"unparsable", EnvInt64("SKYFLAP_TEST_BAD", 7), 7},
		{"missing", EnvInt64("SKYFLAP_TEST_MISSING", 7), 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Fatalf("got %d, want %d", c.got, c.want)
			}
		})
	}

	if got := EnvString("SKYFLAP_TEST_STR", "tuning"); got != "tuning-dev" {
		t.Fatalf("string = %q", got)
	}
	if got := EnvString("SKYFLAP_TEST_MISSING", "tuning"); got != "tuning" {
		t.Fatalf("default = %q", got)
	}
}

func TestLerpAndClamp(t *testing.T) {
	if got := Lerp(0, 10, 0.25); got != 2.5 {
		t.Fatalf("lerp = %v", got)
	}
	if Clamp01(-1) != 0 || Clamp01(2) != 1 || Clamp01(0.5) != 0.5 {
		t.Fatalf("clamp out of range")
	}
}
