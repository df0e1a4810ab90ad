package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageWindow describes a requested contiguous page slice. StartPage is
// zero-indexed; the window is clamped against the source document's true page
// count before use.
type PageWindow struct {
	StartPage      int
	RequestedCount int
}

// ExtractResult carries the sliced document plus the page-range metadata the
// caller needs to emit pagination headers.
type ExtractResult struct {
	Data       []byte
	TotalPages int
	StartPage  int
	EndPage    int
	HasMore    bool
}

// Extractor builds a minimal new PDF containing a contiguous page slice of a
// source document, optionally watermarked, for incremental delivery.
type Extractor struct {
	stamper *Stamper
	conf    *pdfmodel.Configuration
}

// NewExtractor builds an Extractor sharing the stamper's watermark policy.
func NewExtractor(stamper *Stamper) *Extractor {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	// Object-stream encoding keeps chunk transfer size down.
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true
	return &Extractor{stamper: stamper, conf: conf}
}

// Clamp normalizes w against totalPages, returning the effective inclusive
// start/end pages. For any totalPages >= 1 the results satisfy
// start in [0,totalPages-1] and end in [start,totalPages-1].
func (w PageWindow) Clamp(totalPages int) (start, end int) {
	start = w.StartPage
	if start < 0 {
		start = 0
	}
	if start > totalPages-1 {
		start = totalPages - 1
	}
	count := w.RequestedCount
	if count < 1 {
		count = 1
	}
	end = start + count - 1
	if end > totalPages-1 {
		end = totalPages - 1
	}
	return start, end
}

// Extract copies the clamped window of pages from src into a new document,
// preserving order and content, and stamps the copy when spec is non-nil.
// src is never mutated. Unparseable input yields ErrMalformedDocument.
func (e *Extractor) Extract(src []byte, window PageWindow, spec *WatermarkSpec) (*ExtractResult, error) {
	total, err := api.PageCount(bytes.NewReader(src), e.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if total < 1 {
		return nil, fmt.Errorf("%w: document has no pages", ErrMalformedDocument)
	}

	start, end := window.Clamp(total)

	// pdfcpu page selections are one-based inclusive.
	sel := []string{fmt.Sprintf("%d-%d", start+1, end+1)}

	var sliced bytes.Buffer
	if err := api.Trim(bytes.NewReader(src), &sliced, sel, e.conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	data := sliced.Bytes()
	if spec != nil {
		// The watermark is applied to the new document, not the source.
		data, err = e.stamper.Stamp(data, *spec)
		if err != nil {
			return nil, err
		}
	}

	return &ExtractResult{
		Data:       data,
		TotalPages: total,
		StartPage:  start,
		EndPage:    end,
		HasMore:    end < total-1,
	}, nil
}
