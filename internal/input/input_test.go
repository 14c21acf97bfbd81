package input

import "testing"

func TestParseButton(t *testing.T) {
	tests := []struct {
		in      string
		want    Button
		wantErr bool
	}{
		{"left", Left, false},
		{" Right ", Right, false},
		{"w", Up, false},
		{"s", Down, false},
		{"jump", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseButton(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseButton(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseButton(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestState_PressEdge(t *testing.T) {
	s := NewState()
	s.Set(Right, true)
	if !s.Held(Right) || !s.Pressed(Right) {
		t.Error("first frame should be held and pressed")
	}
	s.Latch()
	if !s.Held(Right) || s.Pressed(Right) {
		t.Error("second frame should be held, not pressed")
	}
	s.Release()
	s.Latch()
	if s.Held(Right) {
		t.Error("released button still held")
	}
}

func TestDirection(t *testing.T) {
	s := NewState()
	s.Set(Left, true)
	s.Set(Right, true)
	s.Set(Up, true)
	x, y := Direction(s)
	if x != 0 || y != -1 {
		t.Errorf("Direction = (%v, %v), want (0, -1)", x, y)
	}
	if x, y := Direction(None); x != 0 || y != 0 {
		t.Errorf("Direction(None) = (%v, %v)", x, y)
	}
}
