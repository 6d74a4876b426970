package blocks_test

import (
	"errors"
	"math"
	"testing"

	"github.com/litebase/blockfs/pkg/blocks"
)

func TestSpans(t *testing.T) {
	testCases := []struct {
		name   string
		offset int64
		length int64
		spans  []blocks.Span
	}{
		{
			name:   "empty",
			offset: 100,
			length: 0,
			spans:  nil,
		},
		{
			name:   "inside one block",
			offset: 100,
			length: 5,
			spans:  []blocks.Span{{Index: 0, Offset: 100, Length: 5}},
		},
		{
			name:   "whole block",
			offset: 4096,
			length: 4096,
			spans:  []blocks.Span{{Index: 1, Offset: 0, Length: 4096}},
		},
		{
			name:   "crosses a boundary",
			offset: 4094,
			length: 4,
			spans: []blocks.Span{
				{Index: 0, Offset: 4094, Length: 2},
				{Index: 1, Offset: 0, Length: 2},
			},
		},
		{
			name:   "head, full and tail",
			offset: 4000,
			length: 4096 + 200,
			spans: []blocks.Span{
				{Index: 0, Offset: 4000, Length: 96},
				{Index: 1, Offset: 0, Length: 4096},
				{Index: 2, Offset: 0, Length: 104},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spans, err := blocks.Spans(tc.offset, tc.length)

			if err != nil {
				t.Fatalf("Spans() returned an error: %v", err)
			}

			if len(spans) != len(tc.spans) {
				t.Fatalf("Spans() returned %d spans, want %d", len(spans), len(tc.spans))
			}

			var total int64

			for i, span := range spans {
				if span != tc.spans[i] {
					t.Errorf("span %d = %+v, want %+v", i, span, tc.spans[i])
				}

				total += span.Length
			}

			if total != tc.length {
				t.Errorf("spans cover %d bytes, want %d", total, tc.length)
			}
		})
	}
}

func TestSpansFull(t *testing.T) {
	spans, _ := blocks.Spans(0, 8192+1)

	if !spans[0].Full() || !spans[1].Full() || spans[2].Full() {
		t.Errorf("Full() = %v %v %v, want true true false", spans[0].Full(), spans[1].Full(), spans[2].Full())
	}
}

func TestSpansInvalid(t *testing.T) {
	for _, args := range [][2]int64{{-1, 10}, {0, -1}, {math.MaxInt64, 2}} {
		if _, err := blocks.Spans(args[0], args[1]); !errors.Is(err, blocks.ErrInvalidArgument) {
			t.Errorf("Spans(%d, %d) returned %v, want ErrInvalidArgument", args[0], args[1], err)
		}
	}
}
