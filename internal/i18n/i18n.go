// Package i18n provides localized, human-readable message text for the
// error kinds surfaced to clients. Error kinds themselves stay
// language-independent; only the message text is localized.
package i18n

// DefaultLang is used when a requested language has no catalog.
const DefaultLang = "en"

// Message keys.
const (
	KeyPDFBadSignature   = "pdf.bad_signature"
	KeyPDFCorrupted      = "pdf.corrupted"
	KeyPDFNoPages        = "pdf.no_pages"
	KeyQuotaDailyLimit   = "quota.daily_limit_reached"
	KeyQuotaContentLimit = "quota.content_limit_reached"
	KeyContentNotFound   = "content.not_found"
	KeyPaginatedOnlyPDF  = "content.paginated_only_pdf"
)

var catalogs = map[string]map[string]string{
	"en": {
		KeyPDFBadSignature:   "the uploaded file is not a PDF document",
		KeyPDFCorrupted:      "the uploaded PDF is damaged and cannot be read",
		KeyPDFNoPages:        "the uploaded PDF contains no pages",
		KeyQuotaDailyLimit:   "daily stream limit reached, try again tomorrow",
		KeyQuotaContentLimit: "you have reached today's view limit for this document",
		KeyContentNotFound:   "content not found or unreadable",
		KeyPaginatedOnlyPDF:  "paginated reading is only available for PDF content",
	},
	"id": {
		KeyPDFBadSignature:   "berkas yang diunggah bukan dokumen PDF",
		KeyPDFCorrupted:      "PDF yang diunggah rusak dan tidak dapat dibaca",
		KeyPDFNoPages:        "PDF yang diunggah tidak memiliki halaman",
		KeyQuotaDailyLimit:   "batas streaming harian tercapai, coba lagi besok",
		KeyQuotaContentLimit: "batas baca harian untuk dokumen ini sudah tercapai",
		KeyContentNotFound:   "konten tidak ditemukan atau tidak dapat dibaca",
		KeyPaginatedOnlyPDF:  "pembacaan per halaman hanya tersedia untuk konten PDF",
	},
}

// Localizer resolves message keys to text for a requested language,
// falling back to English and finally to the key itself.
type Localizer struct{}

// NewLocalizer returns a Localizer over the built-in catalogs.
func NewLocalizer() *Localizer {
	return &Localizer{}
}

// Translate returns the message for key in lang.
func (l *Localizer) Translate(key, lang string) string {
	if c, ok := catalogs[lang]; ok {
		if msg, ok := c[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLang][key]; ok {
		return msg
	}
	return key
}
