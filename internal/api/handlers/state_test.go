package handlers

import "testing"

func TestStateRoundTrip(t *testing.T) {
	state, err := GenerateState(map[string]string{"flow": "register"})
	if err != nil {
		t.Fatalf("GenerateState failed: %v", err)
	}

	data, err := DecodeState(state)
	if err != nil {
		t.Fatalf("DecodeState failed: %v", err)
	}
	if data["flow"] != "register" {
		t.Fatalf("expected flow=register, got %v", data)
	}
}

func TestDecodeStateRejectsMalformedInput(t *testing.T) {
	for _, state := range []string{"", "noseparator", "a.b.c", "rand.!!!notbase64!!!"} {
		if _, err := DecodeState(state); err == nil {
			t.Errorf("DecodeState(%q) should fail", state)
		}
	}
}
