package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdocs/internal/config"
	"campusdocs/internal/pdf/pdftest"
)

func testWatermarkConfig() config.WatermarkConfig {
	return config.WatermarkConfig{
		FontName:        "Helvetica",
		FontSize:        12,
		Opacity:         0.15,
		Rotation:        -45,
		FillColor:       "#b0b0b0",
		AnchorXFraction: 0.1,
		RefPageWidthPt:  612,
	}
}

func TestStamper_Stamp(t *testing.T) {
	s := NewStamper(testWatermarkConfig())
	spec := WatermarkSpec{
		DisplayName:       "Jane Doe",
		ContactIdentifier: "jane@example.edu",
		ViewerID:          "user-1",
	}

	t.Run("source buffer stays pristine across repeated calls", func(t *testing.T) {
		src := pdftest.MultiPagePDF(2)
		pristine := make([]byte, len(src))
		copy(pristine, src)

		out1, err := s.Stamp(src, spec)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(pristine, src))

		out2, err := s.Stamp(src, spec)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(pristine, src))

		// Serialization metadata may differ between calls, but both outputs
		// must independently validate as PDFs.
		v := newTestValidator()
		for _, out := range [][]byte{out1, out2} {
			res := v.Validate(out)
			assert.True(t, res.IsValid)
			assert.Equal(t, 2, res.PageCount)
		}
	})

	t.Run("output differs from input", func(t *testing.T) {
		src := pdftest.MultiPagePDF(1)
		out, err := s.Stamp(src, spec)
		require.NoError(t, err)
		assert.False(t, bytes.Equal(src, out))
		assert.NotEmpty(t, out)
	})

	t.Run("page count is preserved", func(t *testing.T) {
		src := pdftest.MultiPagePDF(7)
		out, err := s.Stamp(src, spec)
		require.NoError(t, err)

		res := newTestValidator().Validate(out)
		assert.True(t, res.IsValid)
		assert.Equal(t, 7, res.PageCount)
	})

	t.Run("malformed input propagates malformed document error", func(t *testing.T) {
		_, err := s.Stamp([]byte("%PDF-1.4 broken"), spec)
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})
}

func TestWatermarkSpec_Text(t *testing.T) {
	spec := WatermarkSpec{DisplayName: "Jane Doe", ContactIdentifier: "jane@example.edu"}
	assert.Equal(t, "Licensed to: Jane Doe (jane@example.edu)", spec.text())
}
