package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 20; i++ {
		a := rng1.IntRange(1, 6)
		b := rng2.IntRange(1, 6)
		if a != b {
			t.Fatalf("draw %d: got %d and %d from same seed", i, a, b)
		}
		if rng1.Float64() != rng2.Float64() {
			t.Fatalf("draw %d: floats differ from same seed", i)
		}
	}
}

func TestRNG_IntRange_Bounds(t *testing.T) {
	rng := NewRNG(99)
	seen := map[int]bool{}

	for i := 0; i < 1000; i++ {
		r := rng.IntRange(2, 8)
		if r < 2 || r > 8 {
			t.Fatalf("draw out of range [2,8]: got %d", r)
		}
		seen[r] = true
	}
	if len(seen) != 7 {
		t.Errorf("expected every value in [2,8] to appear, saw %v", seen)
	}
}

func TestRNG_IntRange_Degenerate(t *testing.T) {
	rng := NewRNG(1)

	for i := 0; i < 10; i++ {
		if r := rng.IntRange(3, 3); r != 3 {
			t.Fatalf("single-value range should always be 3, got %d", r)
		}
	}
	if r := rng.IntRange(5, 4); r != 5 {
		t.Errorf("inverted range should return lo, got %d", r)
	}
}

func TestRNG_Float64_Range(t *testing.T) {
	rng := NewRNG(5)
	for i := 0; i < 1000; i++ {
		f := rng.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("float out of [0,1): %v", f)
		}
	}
}

func TestRNG_Sample(t *testing.T) {
	rng := NewRNG(12345)

	for i := 0; i < 200; i++ {
		got := rng.Sample(8, 4)
		if len(got) != 4 {
			t.Fatalf("expected 4 indices, got %d", len(got))
		}
		seen := map[int]bool{}
		for _, idx := range got {
			if idx < 0 || idx >= 8 {
				t.Fatalf("index out of range: %d", idx)
			}
			if seen[idx] {
				t.Fatalf("duplicate index %d in %v", idx, got)
			}
			seen[idx] = true
		}
	}

	if got := rng.Sample(3, 10); len(got) != 3 {
		t.Errorf("k above n should clamp, got %v", got)
	}
	if got := rng.Sample(3, 0); len(got) != 0 {
		t.Errorf("k=0 should be empty, got %v", got)
	}
}

func TestRNG_Shuffle_KeepsElements(t *testing.T) {
	rng := NewRNG(8)
	xs := []int{1, 2, 3, 4, 5}
	rng.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })

	sum := 0
	for _, x := range xs {
		sum += x
	}
	if sum != 15 {
		t.Errorf("shuffle lost elements: %v", xs)
	}
}

func TestRNG_Position_Tracks(t *testing.T) {
	rng := NewRNG(42)

	if rng.Position() != 0 {
		t.Fatalf("expected position 0, got %d", rng.Position())
	}

	rng.IntRange(1, 6)
	if rng.Position() != 1 {
		t.Fatalf("expected position 1, got %d", rng.Position())
	}

	rng.Float64()
	rng.Shuffle(3, func(i, j int) {})
	rng.Sample(8, 2)
	if rng.Position() != 4 {
		t.Fatalf("expected position 4, got %d", rng.Position())
	}
	if rng.Seed() != 42 {
		t.Errorf("Seed() = %d, want 42", rng.Seed())
	}
}

func TestRNG_DifferentSeeds_DifferentResults(t *testing.T) {
	rng1 := NewRNG(1)
	rng2 := NewRNG(2)

	differs := false
	for i := 0; i < 20; i++ {
		if rng1.IntRange(1, 100) != rng2.IntRange(1, 100) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected different seeds to produce different results")
	}
}
