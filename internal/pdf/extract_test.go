package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdocs/internal/pdf/pdftest"
)

func newTestExtractor() *Extractor {
	return NewExtractor(NewStamper(testWatermarkConfig()))
}

func TestPageWindow_Clamp(t *testing.T) {
	tests := []struct {
		name       string
		window     PageWindow
		totalPages int
		wantStart  int
		wantEnd    int
	}{
		{"full fit", PageWindow{StartPage: 0, RequestedCount: 5}, 10, 0, 4},
		{"tail overshoot", PageWindow{StartPage: 8, RequestedCount: 5}, 10, 8, 9},
		{"negative start", PageWindow{StartPage: -3, RequestedCount: 2}, 10, 0, 1},
		{"start past end", PageWindow{StartPage: 99, RequestedCount: 15}, 10, 9, 9},
		{"zero count treated as one", PageWindow{StartPage: 4, RequestedCount: 0}, 10, 4, 4},
		{"single page document", PageWindow{StartPage: 0, RequestedCount: 15}, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.window.Clamp(tt.totalPages)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)

			// Invariants: start in [0,total-1], end in [start,total-1].
			assert.GreaterOrEqual(t, start, 0)
			assert.LessOrEqual(t, start, tt.totalPages-1)
			assert.GreaterOrEqual(t, end, start)
			assert.LessOrEqual(t, end, tt.totalPages-1)
		})
	}
}

func TestExtractor_Extract(t *testing.T) {
	e := newTestExtractor()
	v := newTestValidator()

	t.Run("first chunk of a 20 page document", func(t *testing.T) {
		src := pdftest.MultiPagePDF(20)

		res, err := e.Extract(src, PageWindow{StartPage: 0, RequestedCount: 15}, nil)
		require.NoError(t, err)

		assert.Equal(t, 20, res.TotalPages)
		assert.Equal(t, 0, res.StartPage)
		assert.Equal(t, 14, res.EndPage)
		assert.True(t, res.HasMore)

		out := v.Validate(res.Data)
		assert.True(t, out.IsValid)
		assert.Equal(t, 15, out.PageCount)
	})

	t.Run("final chunk reports no more pages", func(t *testing.T) {
		src := pdftest.MultiPagePDF(20)

		res, err := e.Extract(src, PageWindow{StartPage: 15, RequestedCount: 15}, nil)
		require.NoError(t, err)

		assert.Equal(t, 15, res.StartPage)
		assert.Equal(t, 19, res.EndPage)
		assert.False(t, res.HasMore)

		out := v.Validate(res.Data)
		assert.True(t, out.IsValid)
		assert.Equal(t, 5, out.PageCount)
	})

	t.Run("watermarked chunk leaves source untouched", func(t *testing.T) {
		src := pdftest.MultiPagePDF(4)
		pristine := make([]byte, len(src))
		copy(pristine, src)

		spec := WatermarkSpec{DisplayName: "Jane Doe", ContactIdentifier: "jane@example.edu"}
		res, err := e.Extract(src, PageWindow{StartPage: 1, RequestedCount: 2}, &spec)
		require.NoError(t, err)

		assert.True(t, bytes.Equal(pristine, src))
		assert.Equal(t, 1, res.StartPage)
		assert.Equal(t, 2, res.EndPage)
		assert.True(t, res.HasMore)

		out := v.Validate(res.Data)
		assert.True(t, out.IsValid)
		assert.Equal(t, 2, out.PageCount)
	})

	t.Run("malformed source", func(t *testing.T) {
		_, err := e.Extract([]byte("%PDF-1.4 nope"), PageWindow{StartPage: 0, RequestedCount: 15}, nil)
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})
}
