package service

import (
	"testing"
	"time"

	"counsel-api/modules/availability/entity"
)

func mustRange(t *testing.T, start, end string) entity.TimeRange {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		t.Fatalf("parse end: %v", err)
	}
	return entity.TimeRange{Start: s, End: e}
}

func TestOverlapsHalfOpen(t *testing.T) {
	tests := []struct {
		name string
		a, b entity.TimeRange
		want bool
	}{
		{
			name: "identical ranges overlap",
			a:    mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T10:00:00Z"),
			b:    mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T10:00:00Z"),
			want: true,
		},
		{
			name: "touching endpoints do not overlap",
			a:    mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T10:00:00Z"),
			b:    mustRange(t, "2026-08-31T10:00:00Z", "2026-08-31T11:00:00Z"),
			want: false,
		},
		{
			name: "containment overlaps",
			a:    mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T12:00:00Z"),
			b:    mustRange(t, "2026-08-31T10:00:00Z", "2026-08-31T10:30:00Z"),
			want: true,
		},
		{
			name: "partial overlap",
			a:    mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T10:30:00Z"),
			b:    mustRange(t, "2026-08-31T10:00:00Z", "2026-08-31T11:00:00Z"),
			want: true,
		},
		{
			name: "disjoint ranges do not overlap",
			a:    mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T10:00:00Z"),
			b:    mustRange(t, "2026-08-31T11:00:00Z", "2026-08-31T12:00:00Z"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// symmetric
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestMergeIntervals(t *testing.T) {
	in := []entity.TimeRange{
		mustRange(t, "2026-08-31T11:00:00Z", "2026-08-31T12:00:00Z"),
		mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T10:00:00Z"),
		mustRange(t, "2026-08-31T09:30:00Z", "2026-08-31T11:00:00Z"),
	}

	got := MergeIntervals(in)
	if len(got) != 1 {
		t.Fatalf("expected one merged range, got %d: %v", len(got), got)
	}
	want := mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T12:00:00Z")
	if !got[0].Start.Equal(want.Start) || !got[0].End.Equal(want.End) {
		t.Fatalf("merged = %v, want %v", got[0], want)
	}
}

func TestMergeIntervalsKeepsDisjoint(t *testing.T) {
	in := []entity.TimeRange{
		mustRange(t, "2026-08-31T13:00:00Z", "2026-08-31T14:00:00Z"),
		mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T10:00:00Z"),
	}

	got := MergeIntervals(in)
	if len(got) != 2 {
		t.Fatalf("expected two ranges, got %d: %v", len(got), got)
	}
	if !got[0].Start.Before(got[1].Start) {
		t.Fatalf("merged ranges not sorted: %v", got)
	}
}

func TestSubtractSplitsBlock(t *testing.T) {
	block := mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T12:00:00Z")
	busy := []entity.TimeRange{mustRange(t, "2026-08-31T10:00:00Z", "2026-08-31T10:30:00Z")}

	free := Subtract(block, busy)
	if len(free) != 2 {
		t.Fatalf("expected block split in two, got %d: %v", len(free), free)
	}
	if !free[0].End.Equal(busy[0].Start) || !free[1].Start.Equal(busy[0].End) {
		t.Fatalf("free fragments do not border the busy interval: %v", free)
	}
}

func TestSubtractBusyCoveringBlock(t *testing.T) {
	block := mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T10:00:00Z")
	busy := []entity.TimeRange{mustRange(t, "2026-08-31T08:00:00Z", "2026-08-31T11:00:00Z")}

	if free := Subtract(block, busy); len(free) != 0 {
		t.Fatalf("expected no free time, got %v", free)
	}
}

func TestSubtractNoBusy(t *testing.T) {
	block := mustRange(t, "2026-08-31T09:00:00Z", "2026-08-31T10:00:00Z")

	free := Subtract(block, nil)
	if len(free) != 1 || !free[0].Start.Equal(block.Start) || !free[0].End.Equal(block.End) {
		t.Fatalf("expected block unchanged, got %v", free)
	}
}
