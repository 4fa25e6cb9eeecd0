package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	b, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "es"}, b.Locales())
	assert.Equal(t, "¡Correcto!", b.T("es", "game.correct"))
	assert.Equal(t, "Correct!", b.T("en", "game.correct"))
}

func TestResolve(t *testing.T) {
	t.Parallel()

	b, err := LoadEmbedded()
	require.NoError(t, err)

	tests := []struct {
		lang string
		want string
	}{
		{lang: "es", want: "es"},
		{lang: "en", want: "en"},
		{lang: "en-GB", want: "en"},
		{lang: "en_US", want: "en"},
		{lang: "es-MX", want: "es"},
		{lang: "fr", want: BaseLocale},
		{lang: "", want: BaseLocale},
		{lang: "not a tag", want: BaseLocale},
	}

	for _, tc := range tests {
		t.Run(tc.lang, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, b.Resolve(tc.lang))
		})
	}
}

func TestTFallsBackToBaseLocale(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/es.json": {Data: []byte(`{"greeting": "hola", "farewell": "adiós"}`)},
		"locales/en.json": {Data: []byte(`{"greeting": "hello"}`)},
	}
	b, err := LoadFromFS(fsys)
	require.NoError(t, err)

	assert.Equal(t, "hello", b.T("en", "greeting"))
	assert.Equal(t, "adiós", b.T("en", "farewell"), "missing key falls back to base locale")
	assert.Equal(t, "nonexistent", b.T("en", "nonexistent"), "unknown key is returned verbatim")
}

func TestTFormatsArguments(t *testing.T) {
	t.Parallel()

	b, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, "What is the capital of France?", b.T("en", "game.prompt_capital", "France"))
	assert.Equal(t, "Score: 3 of 5", b.T("en", "game.score", 3, 5))
}

func TestLoadFromFSRejectsBadCatalogs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "no catalogs",
			fsys: fstest.MapFS{},
		},
		{
			name: "missing base locale",
			fsys: fstest.MapFS{
				"locales/en.json": {Data: []byte(`{"greeting": "hello"}`)},
			},
		},
		{
			name: "invalid json",
			fsys: fstest.MapFS{
				"locales/es.json": {Data: []byte(`not json`)},
			},
		},
		{
			name: "key not in base locale",
			fsys: fstest.MapFS{
				"locales/es.json": {Data: []byte(`{"greeting": "hola"}`)},
				"locales/en.json": {Data: []byte(`{"greeting": "hello", "extra": "x"}`)},
			},
		},
		{
			name: "invalid locale tag",
			fsys: fstest.MapFS{
				"locales/es.json":      {Data: []byte(`{"greeting": "hola"}`)},
				"locales/!!bad!!.json": {Data: []byte(`{"greeting": "?"}`)},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFromFS(tc.fsys)
			assert.Error(t, err)
		})
	}
}

func TestEmbeddedLocalesShareKeySet(t *testing.T) {
	t.Parallel()

	b, err := LoadEmbedded()
	require.NoError(t, err)

	base := b.locales[BaseLocale]
	for _, locale := range b.Locales() {
		for key := range base {
			_, ok := b.locales[locale][key]
			assert.True(t, ok, "locale %s is missing key %s", locale, key)
		}
	}
}
