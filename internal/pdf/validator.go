package pdf

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"campusdocs/internal/i18n"
	"campusdocs/internal/model"
)

// pdfMagic is the 5-byte signature every PDF must begin with.
var pdfMagic = []byte("%PDF-")

// ValidationResult is the outcome of a structural validation pass.
type ValidationResult struct {
	IsValid   bool
	PageCount int
	Kind      ErrorKind
}

// Validator verifies that a byte buffer is a structurally valid, non-empty-page
// PDF before it is trusted by any downstream stage. It is a pure function of
// the buffer and safe for concurrent use.
type Validator struct {
	conf *pdfmodel.Configuration
	loc  *i18n.Localizer
}

// NewValidator builds a Validator. Relaxed validation mode is used so that
// documents real-world tooling produces are not rejected on pedantic grounds.
func NewValidator(loc *i18n.Localizer) *Validator {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	return &Validator{conf: conf, loc: loc}
}

// Validate performs magic-byte sniffing, a structural parse, and a page count
// check, in that order. The buffer is never modified.
func (v *Validator) Validate(buf []byte) ValidationResult {
	if !bytes.HasPrefix(buf, pdfMagic) {
		return ValidationResult{Kind: KindBadSignature}
	}
	if err := api.Validate(bytes.NewReader(buf), v.conf); err != nil {
		return ValidationResult{Kind: KindCorrupted}
	}
	n, err := api.PageCount(bytes.NewReader(buf), v.conf)
	if err != nil {
		return ValidationResult{Kind: KindCorrupted}
	}
	if n == 0 {
		return ValidationResult{Kind: KindNoPages}
	}
	return ValidationResult{IsValid: true, PageCount: n}
}

// AssertValid validates buf when mimeType is PDF and returns its page count.
// Non-PDF mime types are a no-op returning zero. On failure it returns a
// ValidationError carrying the localized message for lang.
func (v *Validator) AssertValid(buf []byte, mimeType, lang string) (int, error) {
	if mimeType != model.MimePDF {
		return 0, nil
	}
	res := v.Validate(buf)
	if !res.IsValid {
		return 0, &ValidationError{
			Kind:    res.Kind,
			Message: v.loc.Translate(res.Kind.messageKey(), lang),
		}
	}
	return res.PageCount, nil
}
