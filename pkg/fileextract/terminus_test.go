package fileextract

import (
	"errors"
	"testing"

	"github.com/paulschiretz/pgl-bincut/pkg/failure"
)

func TestResolveLength(t *testing.T) {
	testCases := []struct {
		name     string
		total    int64
		start    int64
		terminus EndOrLen
		want     int64
		wantErr  failure.Kind
	}{
		{name: "To EOF", total: 10, start: 5, terminus: EndOrLen{}, want: 5},
		{name: "To EOF from zero", total: 10, start: 0, terminus: EndOrLen{}, want: 10},
		{name: "Start at EOF yields nothing", total: 10, start: 10, terminus: EndOrLen{}, want: 0},
		{name: "Length", total: 10, start: 2, terminus: Length(3), want: 3},
		{name: "Length clamped to remaining", total: 10, start: 8, terminus: Length(100), want: 2},
		{name: "Zero length", total: 10, start: 4, terminus: Length(0), want: 0},
		{name: "End offset", total: 10, start: 2, terminus: EndAt(6), want: 4},
		{name: "End equal to start", total: 10, start: 3, terminus: EndAt(3), want: 0},
		{name: "End at total", total: 10, start: 0, terminus: EndAt(10), want: 10},
		{name: "End past EOF", total: 10, start: 2, terminus: EndAt(11), wantErr: failure.RangeError},
		{name: "End before start", total: 10, start: 5, terminus: EndAt(4), wantErr: failure.RangeError},
		{name: "Start past EOF", total: 10, start: 11, terminus: EndOrLen{}, wantErr: failure.RangeError},
		{name: "Start past EOF with length", total: 10, start: 11, terminus: Length(1), wantErr: failure.RangeError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveLength(tc.total, tc.start, tc.terminus)
			if tc.wantErr != 0 {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected length %d, got %d", tc.want, got)
			}
		})
	}
}

func TestEndOrLenString(t *testing.T) {
	if got := Length(3).String(); got != "+3" {
		t.Errorf("expected +3, got %s", got)
	}
	if got := EndAt(7).String(); got != "end 7" {
		t.Errorf("expected 'end 7', got %s", got)
	}
	if got := (EndOrLen{}).String(); got != "eof" {
		t.Errorf("expected eof, got %s", got)
	}
}
