package rtoptions

import "testing"

func TestIsCIDetectsAnyRecognisedVar(t *testing.T) {
	for _, name := range ciEnvVars {
		t.Setenv(name, "")
	}
	if IsCI() {
		t.Fatalf("expected IsCI false with all vars cleared")
	}
	t.Setenv("GITHUB_ACTIONS", "true")
	if !IsCI() {
		t.Fatalf("expected IsCI true once GITHUB_ACTIONS is set")
	}
}

func TestDefaultFPSCap(t *testing.T) {
	if got := Default().FPSCap; got != 60 {
		t.Fatalf("got %d, want 60", got)
	}
}
