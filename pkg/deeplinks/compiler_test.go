package deeplinks_test

import (
	"errors"
	"testing"

	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternText(t *testing.T) {
	syntax := deeplinks.DefaultSyntax()

	tests := []struct {
		name string
		path deeplinks.Path
		want string
	}{
		{"literal", deeplinks.Paths("MockPath"), `^MockPath$`},
		{"literal keeps metacharacters", deeplinks.Paths("a_b?c"), `^a_b?c$`},
		{"path item", deeplinks.Paths("a/{x}"), `^a(/[^=&?/]+){1}$`},
		{"whole path", deeplinks.Paths("{x}"), `^([^=&?/]+){1}$`},
		{"first query", deeplinks.Paths("search?{q}"), `^search(\?[^&/]+=[^&/]+){1}$`},
		{"optional first query", deeplinks.Paths("search?{q?}"), `^search(\?[^&/]+=[^&/]+)?$`},
		{"next query", deeplinks.Paths("feed?{tab}&{page?}"), `^feed(\?[^&/]+=[^&/]+){1}(&[^&/]+=[^&/]+)?$`},
		{"trailing literal", deeplinks.Paths("MockPath?{sample?}/Mock2"), `^MockPath(\?[^&/]+=[^&/]+)?/Mock2$`},
		{"escapes underscore", deeplinks.Paths("my_items/{id}"), `^my\_items(/[^=&?/]+){1}$`},
		{"escapes question mark", deeplinks.Paths("a?b/{id}"), `^a\?b(/[^=&?/]+){1}$`},
		{"several paths", deeplinks.Paths("a", "b/{id}"), `(^a$)|(^b(/[^=&?/]+){1}$)`},
		{"expression", deeplinks.Expression(`^item/\d+$`), `^item/\d+$`},
		{"unterminated marker dropped", deeplinks.Paths("a/{x"), `^a/{x$`},
		{"unmatched end ignored", deeplinks.Paths("a}/{x}"), `^a}(/[^=&?/]+){1}$`},
		{"second begin replaces first", deeplinks.Paths("a/{{x}"), `^a/([^=&?/]+){1}$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := deeplinks.PatternText(tt.path, syntax)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompilePathItemParameter(t *testing.T) {
	re, err := deeplinks.Compile(deeplinks.Paths("a/{x}"), deeplinks.DefaultSyntax())
	require.NoError(t, err)

	assert.True(t, re.MatchString("a/anything-without-separators"))
	assert.False(t, re.MatchString("a/"))
	assert.False(t, re.MatchString("a/x/y"))
	assert.False(t, re.MatchString("a/x=y"))
	assert.False(t, re.MatchString("a/x&y"))
}

func TestCompileOptionalQueryParameter(t *testing.T) {
	re, err := deeplinks.Compile(deeplinks.Paths("search?{q?}"), deeplinks.DefaultSyntax())
	require.NoError(t, err)

	assert.True(t, re.MatchString("search"))
	assert.True(t, re.MatchString("search?q=go"))
	assert.False(t, re.MatchString("search?q"))
	assert.False(t, re.MatchString("searching"))
}

func TestCompileSeveralQueryParameters(t *testing.T) {
	re, err := deeplinks.Compile(deeplinks.Paths("MockPath?{sample}&{sample1}"), deeplinks.DefaultSyntax())
	require.NoError(t, err)

	assert.True(t, re.MatchString("MockPath?sample=sample&sample1=sample1"))
	assert.False(t, re.MatchString("MockPath?sample=sample"))
}

func TestCompileSeveralPaths(t *testing.T) {
	re, err := deeplinks.Compile(deeplinks.Paths("item/{id}", "items/{id}", "product"), deeplinks.DefaultSyntax())
	require.NoError(t, err)

	assert.True(t, re.MatchString("item/1"))
	assert.True(t, re.MatchString("items/1"))
	assert.True(t, re.MatchString("product"))
	assert.False(t, re.MatchString("products"))
}

func TestCompileInvalidParameterPosition(t *testing.T) {
	_, err := deeplinks.Compile(deeplinks.Paths("MockPath{sample}"), deeplinks.DefaultSyntax())
	require.Error(t, err)

	perr, ok := deeplinks.AsProcessingError(err)
	require.True(t, ok)
	assert.Equal(t, deeplinks.KindParameterPosition, perr.Kind)
	assert.Equal(t, "h{sample}", perr.Token)
	assert.True(t, errors.Is(err, deeplinks.ErrParameterPosition))
	assert.True(t, deeplinks.IsPatternError(err))
}

func TestCompileInvalidPattern(t *testing.T) {
	path := deeplinks.Paths("(*abc")

	_, err := deeplinks.Compile(path, deeplinks.DefaultSyntax())
	require.Error(t, err)

	perr, ok := deeplinks.AsProcessingError(err)
	require.True(t, ok)
	assert.Equal(t, deeplinks.KindPatternInvalid, perr.Kind)
	assert.True(t, perr.Path.Equal(path))
	assert.NotNil(t, errors.Unwrap(err))
	assert.True(t, errors.Is(err, deeplinks.ErrPatternInvalid))
}

func TestCompileInvalidExpression(t *testing.T) {
	_, err := deeplinks.Compile(deeplinks.Expression("item/[0-9"), deeplinks.DefaultSyntax())
	assert.ErrorIs(t, err, deeplinks.ErrPatternInvalid)
}

func TestCompileCustomSyntax(t *testing.T) {
	syntax := deeplinks.Syntax{Begin: '<', End: '>', Optional: '*'}

	text, err := deeplinks.PatternText(deeplinks.Paths("item/<id>", "search?<q*>"), syntax)
	require.NoError(t, err)
	assert.Equal(t, `(^item(/[^=&?/]+){1}$)|(^search(\?[^&/]+=[^&/]+)?$)`, text)

	// Braces are plain text under this syntax.
	text, err = deeplinks.PatternText(deeplinks.Paths("a{1}"), syntax)
	require.NoError(t, err)
	assert.Equal(t, `^a{1}$`, text)
}

func TestCompileEmptyPaths(t *testing.T) {
	path := deeplinks.Paths()

	_, err := deeplinks.PatternText(path, deeplinks.DefaultSyntax())
	require.ErrorIs(t, err, deeplinks.ErrPatternInvalid)

	_, err = deeplinks.Compile(path, deeplinks.DefaultSyntax())
	perr, ok := deeplinks.AsProcessingError(err)
	require.True(t, ok)
	assert.Equal(t, deeplinks.KindPatternInvalid, perr.Kind)
	assert.True(t, perr.Path.Equal(path))
}

func TestGetDeeplinkEmptyPaths(t *testing.T) {
	empty := deeplinks.Link[deeplinks.EmptyParameters](routeMock(deeplinks.Paths(), false, false, nil, nil))
	f := newFixture(t, nil, empty)

	got, err := f.service.GetDeeplink(mustParse(t, "example://anything/at/all?x=1"))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, deeplinks.ErrPatternInvalid)
}
