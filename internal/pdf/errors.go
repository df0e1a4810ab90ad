package pdf

import (
	"errors"
	"fmt"

	"campusdocs/internal/i18n"
)

// ErrorKind classifies structural validation failures. Kinds are
// language-independent; only the surfaced message text is localized.
type ErrorKind string

const (
	// KindBadSignature means the buffer does not start with the PDF magic bytes.
	KindBadSignature ErrorKind = "bad_signature"
	// KindCorrupted means the buffer looked like a PDF but failed structural parsing.
	KindCorrupted ErrorKind = "corrupted"
	// KindNoPages means the document parsed but contains zero pages.
	KindNoPages ErrorKind = "no_pages"
)

// messageKey maps a kind to its i18n catalog key.
func (k ErrorKind) messageKey() string {
	switch k {
	case KindBadSignature:
		return i18n.KeyPDFBadSignature
	case KindNoPages:
		return i18n.KeyPDFNoPages
	default:
		return i18n.KeyPDFCorrupted
	}
}

// ValidationError is raised at ingest time when an upload fails structural
// validation. It carries a localized, client-safe message.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pdf validation failed (%s): %s", e.Kind, e.Message)
}

// ErrMalformedDocument signals that the stamper or extractor was handed bytes
// that should already have passed validation. Callers treat it as a contract
// violation and collapse it into their coarse not-found class.
var ErrMalformedDocument = errors.New("malformed pdf document")
