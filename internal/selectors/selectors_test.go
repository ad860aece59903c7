package selectors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_DefaultsPreserved(t *testing.T) {
	defaults := Table{
		"a": "default-a",
		"group": Table{
			"x": "default-x",
			"y": "default-y",
		},
	}
	override := Table{
		"group": map[string]any{"x": "override-x"},
	}

	merged := Merge(override, defaults)

	assert.Equal(t, "default-a", merged["a"], "untouched default key must survive")
	group := merged["group"].(Table)
	assert.Equal(t, "override-x", group["x"], "override replaces the leaf")
	assert.Equal(t, "default-y", group["y"], "sibling default survives nested merge")
}

func TestMerge_UnknownOverrideKeysKept(t *testing.T) {
	merged := Merge(Table{"extra": "kept"}, Table{"a": "default"})
	assert.Equal(t, "kept", merged["extra"])
	assert.Equal(t, "default", merged["a"])
}

func TestMerge_OverrideReplacesListLeaf(t *testing.T) {
	defaults := Table{"sic": []string{"one", "two"}}
	merged := Merge(Table{"sic": []any{"three"}}, defaults)

	r := NewResolver(merged)
	assert.Equal(t, []string{"three"}, r.Resolve("sic"))
}

func TestMerge_EmptyListOverrideHonored(t *testing.T) {
	defaults := Table{"sic": []string{"one", "two"}}
	merged := Merge(Table{"sic": []any{}}, defaults)

	r := NewResolver(merged)
	assert.Empty(t, r.Resolve("sic"), "explicit empty override wins over defaults")
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(Defaults())

	sic := r.Resolve("sources", "companies_house", "company_overview_page", "nature_of_business_sic")
	require.NotEmpty(t, sic)
	assert.Equal(t, "div#sic-codes ul li", sic[0], "fallback order must match the default table")

	single := r.Resolve("sources", "companies_house", "navigation", "search_input")
	assert.Equal(t, []string{"input#searchText"}, single)

	assert.Nil(t, r.Resolve("sources", "no_such_source", "anything"))
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	r := Load(filepath.Join(t.TempDir(), "absent.json"), zerolog.Nop())
	assert.Equal(t, "input#searchText", r.First("sources", "companies_house", "navigation", "search_input"))
}

func TestLoad_OverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selectors.json")
	content := `{"sources": {"companies_house": {"navigation": {"search_input": "input#q"}}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r := Load(path, zerolog.Nop())
	assert.Equal(t, "input#q", r.First("sources", "companies_house", "navigation", "search_input"))
	// Sibling defaults survive.
	assert.Equal(t, "button#cookie-accept-all-button", r.First("sources", "companies_house", "navigation", "accept_cookies_button"))
}

func TestLoad_CorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selectors.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	r := Load(path, zerolog.Nop())
	assert.Equal(t, "input#searchText", r.First("sources", "companies_house", "navigation", "search_input"))
}
