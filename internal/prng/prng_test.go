package prng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 10000; i++ {
		switch i % 4 {
		case 0:
			if got, want := a.NextInt(0, 1000), b.NextInt(0, 1000); got != want {
				t.Fatalf("call %d: NextInt %d vs %d", i, got, want)
			}
		case 1:
			if got, want := a.NextFloat(), b.NextFloat(); got != want {
				t.Fatalf("call %d: NextFloat %v vs %v", i, got, want)
			}
		case 2:
			if got, want := a.Chance(7), b.Chance(7); got != want {
				t.Fatalf("call %d: Chance %v vs %v", i, got, want)
			}
		case 3:
			if got, want := a.NextID(), b.NextID(); got != want {
				t.Fatalf("call %d: NextID %s vs %s", i, got, want)
			}
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.NextInt(0, 1<<30) == b.NextInt(0, 1<<30) {
			same++
		}
	}
	if same > 2 {
		t.Fatalf("seeds 1 and 2 collided %d/100 times", same)
	}
}

func TestNextIntBounds(t *testing.T) {
	r := New(7)
	for i := 0; i < 10000; i++ {
		v := r.NextInt(5, 12)
		if v < 5 || v >= 12 {
			t.Fatalf("NextInt out of range: %d", v)
		}
	}
	if got := r.NextInt(3, 3); got != 3 {
		t.Fatalf("empty range: got %d want 3", got)
	}
}

func TestNextFloatRange(t *testing.T) {
	r := New(99)
	for i := 0; i < 10000; i++ {
		f := r.NextFloat()
		if f < 0 || f >= 1 {
			t.Fatalf("NextFloat out of range: %v", f)
		}
	}
}

func TestChanceOne(t *testing.T) {
	r := New(3)
	for i := 0; i < 100; i++ {
		if !r.Chance(1) {
			t.Fatal("Chance(1) must always be true")
		}
	}
}

func TestRandFromSetIgnoresMapOrder(t *testing.T) {
	set := map[int]struct{}{9: {}, 3: {}, 27: {}, 1: {}}
	var first int
	for i := 0; i < 50; i++ {
		r := New(1234)
		got := RandFromSet(r, set)
		if i == 0 {
			first = got
			continue
		}
		if got != first {
			t.Fatalf("run %d: got %d want %d", i, got, first)
		}
	}
}

func TestSimHashStable(t *testing.T) {
	if SimHash("game-abc") != SimHash("game-abc") {
		t.Fatal("SimHash must be stable")
	}
	if SimHash("game-abc") == SimHash("game-abd") {
		t.Fatal("distinct sessions should hash apart")
	}
}
