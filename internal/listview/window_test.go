package listview

import (
	"reflect"
	"testing"
)

func TestPageWindow_CenteredAndClamped(t *testing.T) {
	cases := []struct {
		current, total, max int
		expected            []int
	}{
		{7, 12, 5, []int{5, 6, 7, 8, 9}},
		{1, 12, 5, []int{1, 2, 3, 4, 5}},
		{2, 12, 5, []int{1, 2, 3, 4, 5}},
		{12, 12, 5, []int{8, 9, 10, 11, 12}},
		{11, 12, 5, []int{8, 9, 10, 11, 12}},
		{1, 3, 5, []int{1, 2, 3}},
		{1, 1, 5, []int{1}},
		{4, 7, 1, []int{4}},
	}

	for _, c := range cases {
		got := PageWindow(c.current, c.total, c.max)
		if !reflect.DeepEqual(got, c.expected) {
			t.Errorf("PageWindow(%d,%d,%d) = %v, expected %v",
				c.current, c.total, c.max, got, c.expected)
		}
	}
}

func TestPageWindow_OutOfRangeCurrentIsClamped(t *testing.T) {
	if got := PageWindow(99, 12, 5); !reflect.DeepEqual(got, []int{8, 9, 10, 11, 12}) {
		t.Errorf("Expected clamp to last window, got %v", got)
	}
	if got := PageWindow(-3, 12, 5); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("Expected clamp to first window, got %v", got)
	}
}

func TestPageWindow_Degenerate(t *testing.T) {
	if got := PageWindow(1, 0, 5); got != nil {
		t.Errorf("Expected nil for zero pages, got %v", got)
	}
	if got := PageWindow(1, 5, 0); got != nil {
		t.Errorf("Expected nil for zero maxVisible, got %v", got)
	}
}

func TestPageWindowEllipsis_PinsFirstAndLast(t *testing.T) {
	got := PageWindowEllipsis(7, 12, 5)
	expected := []int{1, Ellipsis, 5, 6, 7, 8, 9, Ellipsis, 12}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("PageWindowEllipsis(7,12,5) = %v, expected %v", got, expected)
	}
}

func TestPageWindowEllipsis_NoGapNoMarker(t *testing.T) {
	// Window already touches both edges: no markers, no duplicates.
	got := PageWindowEllipsis(3, 5, 5)
	expected := []int{1, 2, 3, 4, 5}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("PageWindowEllipsis(3,5,5) = %v, expected %v", got, expected)
	}

	// Gap of exactly one page: the page number itself, not an ellipsis.
	got = PageWindowEllipsis(4, 7, 5)
	expected = []int{1, 2, 3, 4, 5, 6, 7}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("PageWindowEllipsis(4,7,5) = %v, expected %v", got, expected)
	}
}

func TestPageWindowEllipsis_AdjacentEdge(t *testing.T) {
	// Window starts at 2: pin 1 directly with no marker.
	got := PageWindowEllipsis(4, 12, 5)
	expected := []int{1, 2, 3, 4, 5, 6, Ellipsis, 12}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("PageWindowEllipsis(4,12,5) = %v, expected %v", got, expected)
	}
}
