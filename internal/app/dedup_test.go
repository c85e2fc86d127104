package app

import "testing"

func TestDeduperSingle(t *testing.T) {
	d := NewDeduper("")
	if d.Mode() != DedupSingle {
		t.Fatalf("mode = %q, want single", d.Mode())
	}
	d.Remember(SlotError, "err")
	if d.ShouldSend(SlotStatus, "err") {
		t.Fatal("single slot: status path should see the error message")
	}
	if !d.ShouldSend(SlotStatus, "ok") {
		t.Fatal("unrelated status message must not be suppressed")
	}
	d.Restore("a", "b")
	if s, f := d.Last(); s != "a" || f != "a" {
		t.Fatalf("Last() = %q, %q", s, f)
	}
}

func TestDeduperSplit(t *testing.T) {
	d := NewDeduper(DedupSplit)
	d.Remember(SlotStatus, "ok")
	d.Remember(SlotError, "err")
	if d.ShouldSend(SlotStatus, "ok") || d.ShouldSend(SlotError, "err") {
		t.Fatal("repeated message must be suppressed in its own slot")
	}
	if !d.ShouldSend(SlotError, "ok") {
		t.Fatal("slots must be independent")
	}
	d.Restore("a", "b")
	if s, f := d.Last(); s != "a" || f != "b" {
		t.Fatalf("Last() = %q, %q", s, f)
	}
}
