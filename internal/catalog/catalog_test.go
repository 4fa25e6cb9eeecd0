package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoquiz/internal/domain"
)

func TestLoadEmbeddedEnglish(t *testing.T) {
	t.Parallel()

	c, err := Load(nil, "en", nil)
	require.NoError(t, err)

	assert.Equal(t, "en", c.Language())
	assert.Greater(t, c.Len(), 150, "embedded english data should cover the world")

	fr, err := c.ByCode("FR")
	require.NoError(t, err)
	assert.Equal(t, "France", fr.Name)
	assert.Equal(t, "Paris", fr.Capital)
	assert.Equal(t, "Europe", fr.Continent)

	// Alias tables are attached per language.
	gb, err := c.ByCode("GB")
	require.NoError(t, err)
	assert.Contains(t, gb.Aliases, "uk")

	us, err := c.ByCode("US")
	require.NoError(t, err)
	assert.Contains(t, us.CapitalAliases, "washington dc")

	assert.Equal(t, []string{"Africa", "America", "Asia", "Europe", "Oceania"}, c.Continents())
}

func TestLoadFallsBackToDefaultLanguage(t *testing.T) {
	t.Parallel()

	c, err := Load(nil, "fr", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguage, c.Language())

	es, err := c.ByCode("ES")
	require.NoError(t, err)
	assert.Equal(t, "España", es.Name)
}

func TestLoadFallsBackWhenDataFileMissing(t *testing.T) {
	t.Parallel()

	// German is a supported language but its data file is not embedded,
	// so without a data dir the load degrades to the default language.
	c, err := Load(nil, "de", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguage, c.Language())
	assert.NotZero(t, c.Len())
}

func TestLoadFromOverrideFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"countries_en.csv": &fstest.MapFile{Data: []byte(
			"# test data\n" +
				"France,Paris,Europe,FR\n" +
				"Japan,Tokyo,Asia,JP\n" +
				"short,row\n" +
				"Peru,Lima,America,PE\n",
		)},
	}

	c, err := Load(fsys, "en", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len(), "comments and short rows are skipped")

	_, err = c.ByCode("DE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadRejectsDuplicateCodes(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"countries_en.csv": &fstest.MapFile{Data: []byte(
			"France,Paris,Europe,FR\n" +
				"Francia,Paris,Europe,FR\n",
		)},
	}

	_, err := Load(fsys, "en", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestByCapital(t *testing.T) {
	t.Parallel()

	c, err := Load(nil, "en", nil)
	require.NoError(t, err)

	testCases := []struct {
		name    string
		capital string
		code    string
	}{
		{name: "exact capital", capital: "Tokyo", code: "JP"},
		{name: "normalized capital", capital: "  TOKYO ", code: "JP"},
		{name: "punctuated capital", capital: "Washington, D.C.", code: "US"},
		{name: "capital alias", capital: "washington dc", code: "US"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			country, err := c.ByCapital(tc.capital)
			require.NoError(t, err)
			assert.Equal(t, tc.code, country.Code)
		})
	}

	_, err = c.ByCapital("Atlantis")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCodes(t *testing.T) {
	t.Parallel()

	c, err := Load(nil, "en", nil)
	require.NoError(t, err)

	all := c.Codes(domain.RegionAll)
	assert.Equal(t, c.Len(), len(all))

	europe := c.Codes("Europe")
	assert.NotEmpty(t, europe)
	assert.Contains(t, europe, "FR")
	assert.NotContains(t, europe, "JP")

	assert.Empty(t, c.Codes("Atlantis"))

	// Returned slices are copies.
	all[0] = "XX"
	again := c.Codes(domain.RegionAll)
	assert.NotEqual(t, "XX", again[0])
}

func TestHasAll(t *testing.T) {
	t.Parallel()

	c, err := Load(nil, "en", nil)
	require.NoError(t, err)

	assert.True(t, c.HasAll("FR", "JP", "PE"))
	assert.True(t, c.HasAll("FR", ""), "empty codes are ignored")
	assert.False(t, c.HasAll("FR", "ZZ"))
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	langs := Languages()
	assert.Equal(t, []string{"de", "en", "es", "it", "pt"}, langs)
	assert.True(t, Supported("es"))
	assert.False(t, Supported("fr"))
}
