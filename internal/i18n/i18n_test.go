// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("en", ""))

	assert.Equal(t, "Email is already taken", T("en", KeyAuthEmailTaken))
	assert.Equal(t, "Sifariş #42", T("az", KeyOrderEmailSubject, 42))
	assert.Equal(t, "Order #7", T("en", KeyOrderEmailSubject, 7))

	// unknown language falls back to the default one
	assert.Equal(t, "Product not found", T("fr", KeyProductNotFound))

	// unknown key is returned verbatim
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))

	assert.True(t, IsSupported("az"))
	assert.False(t, IsSupported("fr"))
	assert.Equal(t, []string{"az", "en"}, GetSupportedLanguages())
}

func TestLocaleFilesHaveSameKeys(t *testing.T) {
	require.NoError(t, Initialize("en", ""))

	en := instance.translations["en"]
	az := instance.translations["az"]
	require.NotEmpty(t, en)

	for key := range en {
		_, ok := az[key]
		assert.True(t, ok, "az locale misses %q", key)
	}
	assert.Len(t, az, len(en))
}
