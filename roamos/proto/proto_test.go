package proto

import "testing"

func TestLogLinePayloadTruncates(t *testing.T) {
	if got := string(LogLinePayload("collision detected", 9)); got != "collision" {
		t.Fatalf("unexpected payload %q", got)
	}
	if got := string(LogLinePayload("ok", 128)); got != "ok" {
		t.Fatalf("unexpected payload %q", got)
	}
}

func TestCuePayloads(t *testing.T) {
	c, ok := DecodeCuePlayPayload(CuePlayPayload(CueTaskDone))
	if !ok || c != CueTaskDone {
		t.Fatalf("unexpected cue %s ok=%v", c, ok)
	}
	if _, ok := DecodeCuePlayPayload(CuePlayPayload(CueNone)); ok {
		t.Fatal("expected CueNone to be rejected")
	}
	if _, ok := DecodeCuePlayPayload(nil); ok {
		t.Fatal("expected empty payload to be rejected")
	}
	v, ok := DecodeCueVolumePayload(CueVolumePayload(200))
	if !ok || v != 200 {
		t.Fatalf("unexpected volume %d ok=%v", v, ok)
	}
}
