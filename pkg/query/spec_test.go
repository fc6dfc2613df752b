package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileDefaults(t *testing.T) {
	t.Parallel()

	spec := Compile(url.Values{})

	assert.Equal(t, DefaultPage, spec.Page)
	assert.Equal(t, DefaultLimit, spec.Limit)
	assert.Equal(t, DefaultSort, spec.Sort)
	assert.Empty(t, spec.Search)
	assert.Nil(t, spec.Filters)
}

func TestCompileClampsPageAndLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		params    url.Values
		wantPage  int
		wantLimit int
	}{
		{"zero", url.Values{"page": {"0"}, "limit": {"0"}}, 1, 1},
		{"negative", url.Values{"page": {"-3"}, "limit": {"-10"}}, 1, 1},
		{"non numeric", url.Values{"page": {"abc"}, "limit": {"lots"}}, DefaultPage, DefaultLimit},
		{"limit capped", url.Values{"limit": {"5000"}}, DefaultPage, MaxLimit},
		{"valid", url.Values{"page": {"3"}, "limit": {"50"}}, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spec := Compile(tt.params)
			assert.Equal(t, tt.wantPage, spec.Page)
			assert.Equal(t, tt.wantLimit, spec.Limit)
			assert.GreaterOrEqual(t, spec.Page, 1)
			assert.GreaterOrEqual(t, spec.Limit, 1)
		})
	}
}

func TestCompileDropsEmptyFilters(t *testing.T) {
	t.Parallel()

	withEmpty := Compile(url.Values{"genre": {""}})
	omitted := Compile(url.Values{})

	assert.Nil(t, withEmpty.Filters)
	assert.True(t, withEmpty.Equal(omitted))

	mixed := Compile(url.Values{"genre": {"", "rpg", "  ", "rpg"}, "platform": {"switch", "ps5"}})
	assert.Equal(t, []string{"rpg"}, mixed.Filters["genre"])
	assert.Equal(t, []string{"switch", "ps5"}, mixed.Filters["platform"])
}

func TestCompileIgnoresUnknownFilterKeys(t *testing.T) {
	t.Parallel()

	spec := Compile(url.Values{"publisher": {"nintendo"}})
	assert.Nil(t, spec.Filters)
}

func TestCompileTrimsSearch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "zelda", Compile(url.Values{"q": {"  zelda "}}).Search)
	assert.Empty(t, Compile(url.Values{"q": {"   "}}).Search)
}

func TestCompileSortFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SortAscending, Compile(url.Values{"sort": {"asc"}}).Sort)
	assert.Equal(t, SortAscending, Compile(url.Values{"sort": {" ASC "}}).Sort)
	assert.Equal(t, SortDescending, Compile(url.Values{"sort": {"desc"}}).Sort)
	assert.Equal(t, DefaultSort, Compile(url.Values{"sort": {"sideways"}}).Sort)
	assert.Equal(t, DefaultSort, Compile(url.Values{}).Sort)
}

func TestCompileIdempotence(t *testing.T) {
	t.Parallel()

	params := url.Values{
		"page":     {"0"},
		"limit":    {"999"},
		"genre":    {"rpg", ""},
		"platform": {"switch"},
		"q":        {" mario "},
		"sort":     {"upside-down"},
	}

	once := Compile(params)
	twice := Compile(once.Values())

	assert.True(t, once.Equal(twice))
	assert.Equal(t, once, twice)
}

func TestSpecOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Spec{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Spec{Page: 3, Limit: 20}.Offset())
}

func TestSpecEqual(t *testing.T) {
	t.Parallel()

	a := Compile(url.Values{"genre": {"rpg"}, "q": {"zelda"}})
	b := Compile(url.Values{"genre": {"rpg"}, "q": {"zelda"}})
	c := Compile(url.Values{"genre": {"arcade"}, "q": {"zelda"}})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Compile(url.Values{"q": {"zelda"}})))
}
