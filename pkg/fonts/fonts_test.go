package fonts

import "testing"

func TestDefault(t *testing.T) {
	m := Default()
	if m.Degenerate() {
		t.Fatalf("Default() is degenerate: %+v", m)
	}
	if m.Family != FontFamily {
		t.Errorf("Family = %q, want %q", m.Family, FontFamily)
	}
	if m.LineHeight < m.CharWidth {
		t.Errorf("LineHeight %d < CharWidth %d", m.LineHeight, m.CharWidth)
	}
}

func TestNewScales(t *testing.T) {
	small, err := New(10)
	if err != nil {
		t.Fatal(err)
	}
	large, err := New(20)
	if err != nil {
		t.Fatal(err)
	}
	if large.CharWidth <= small.CharWidth {
		t.Errorf("CharWidth did not grow: %d -> %d", small.CharWidth, large.CharWidth)
	}
	if large.LineHeight <= small.LineHeight {
		t.Errorf("LineHeight did not grow: %d -> %d", small.LineHeight, large.LineHeight)
	}

	again, err := New(10)
	if err != nil {
		t.Fatal(err)
	}
	if again != small {
		t.Errorf("cached metrics differ: %+v vs %+v", again, small)
	}
}

func TestNewInvalidSize(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("New(0) should fail")
	}
}

func TestFixed(t *testing.T) {
	m := Fixed(7, 14)
	if m.TextWidth(3) != 21 {
		t.Errorf("TextWidth(3) = %d, want 21", m.TextWidth(3))
	}
	if Fixed(0, 14).Degenerate() != true {
		t.Error("zero char width should be degenerate")
	}
}
