package logging

import "testing"

func TestToMapEmpty(t *testing.T) {
	if m := toMap(nil); m != nil {
		t.Errorf("toMap(nil) = %v, want nil", m)
	}
}

func TestToMapFields(t *testing.T) {
	m := toMap([]Field{{Key: "a", Value: 1}, {Key: "b", Value: "two"}})
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("toMap = %v", m)
	}
}

func TestNopDiscardsWithoutPanicking(t *testing.T) {
	l := Nop()
	l.Debug("x", Field{Key: "k", Value: "v"})
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	child := l.With(Field{Key: "scope", Value: "test"})
	child.Info("still fine")
}

func TestNewReturnsUsableLogger(t *testing.T) {
	l := New(true)
	l.Debug("debug visible when debug=true")
	l = New(false)
	l.Debug("debug suppressed but must not panic")
	l.Warn("warn always visible")
}
