package signal

import "testing"

func TestSubscribeEmitsCurrentValue(t *testing.T) {
	t.Parallel()
	s := New(7)
	var got []int
	cancel := s.Subscribe(func(v int) { got = append(got, v) })
	defer cancel()
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("expected initial emission [7], got %v", got)
	}
	s.Set(8)
	if len(got) != 2 || got[1] != 8 {
		t.Fatalf("expected [7 8], got %v", got)
	}
}

func TestUnsubscribeStopsEmissions(t *testing.T) {
	t.Parallel()
	s := New("a")
	count := 0
	cancel := s.Subscribe(func(string) { count++ })
	cancel()
	cancel() // idempotent
	s.Set("b")
	if count != 1 {
		t.Fatalf("expected only the initial emission, got %d", count)
	}
}

func TestDistinctSuppressesEqualValues(t *testing.T) {
	t.Parallel()
	s := NewDistinct(false)
	count := 0
	defer s.Subscribe(func(bool) { count++ })()
	s.Set(false)
	s.Set(false)
	if count != 1 {
		t.Fatalf("equal values must not re-emit, got %d emissions", count)
	}
	s.Set(true)
	s.Set(true)
	if count != 2 || s.Get() != true {
		t.Fatalf("expected one emission for the change, got %d (val=%v)", count, s.Get())
	}
}

func TestUpdateReadsLatestSnapshot(t *testing.T) {
	t.Parallel()
	s := New([]string{"a"})
	s.Update(func(cur []string) []string { return append(cur[:len(cur):len(cur)], "b") })
	got := s.Get()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected value %v", got)
	}
}
