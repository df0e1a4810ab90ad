package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	l := NewLocalizer()

	t.Run("known key and lang", func(t *testing.T) {
		assert.Equal(t, "the uploaded PDF contains no pages", l.Translate(KeyPDFNoPages, "en"))
		assert.Equal(t, "PDF yang diunggah tidak memiliki halaman", l.Translate(KeyPDFNoPages, "id"))
	})

	t.Run("unknown lang falls back to english", func(t *testing.T) {
		assert.Equal(t, l.Translate(KeyQuotaDailyLimit, "en"), l.Translate(KeyQuotaDailyLimit, "fr"))
	})

	t.Run("unknown key returns the key", func(t *testing.T) {
		assert.Equal(t, "nope.nothing", l.Translate("nope.nothing", "en"))
	})
}
