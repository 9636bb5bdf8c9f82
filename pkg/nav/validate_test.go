package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("reserved substring in top-level pages", func(t *testing.T) {
		res := Validate(Config{Pages: []string{"foo/api/bar", "clean-page"}})
		assert.False(t, res.IsValid)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], `"foo/api/bar"`)
		assert.Contains(t, res.Errors[0], "/api")
		assert.Equal(t, `Pages: Path "foo/api/bar" contains reserved path "/api" or "/mcp"`, res.Errors[0])
	})

	t.Run("clean config", func(t *testing.T) {
		res := Validate(Config{Pages: []string{"clean-page"}})
		assert.True(t, res.IsValid)
		assert.NotNil(t, res.Errors)
		assert.Empty(t, res.Errors)
	})

	t.Run("direct group pages are scanned", func(t *testing.T) {
		cfg := Config{Groups: []Group{{Group: "Tools", Pages: []PageEntry{PagePath("x/mcp/y")}}}}
		res := Validate(cfg)
		assert.False(t, res.IsValid)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, `Group "Tools": Path "x/mcp/y" contains reserved path "/api" or "/mcp"`, res.Errors[0])
	})

	t.Run("nested sub-group pages are not scanned", func(t *testing.T) {
		nested := Group{Group: "Inner", Pages: []PageEntry{PagePath("x/mcp/y")}}
		cfg := Config{Groups: []Group{{Group: "Outer", Pages: []PageEntry{NestedGroup(nested)}}}}
		res := Validate(cfg)
		assert.True(t, res.IsValid, "shallow scan must not descend into nested groups")
		assert.Empty(t, res.Errors)
	})

	t.Run("versions and languages are not scanned", func(t *testing.T) {
		bad := Group{Group: "G", Pages: []PageEntry{PagePath("v1/api/ref")}}
		cfg := Config{
			Versions:  []Version{{Version: "v1", Groups: []Group{bad}}},
			Languages: []Language{{Language: "de", Groups: []Group{bad}}},
		}
		assert.True(t, Validate(cfg).IsValid)
	})

	t.Run("every violation is reported in scan order", func(t *testing.T) {
		cfg := Config{
			Pages:     []string{"/api", "ok", "a/mcp"},
			Tabs:      []Tab{{Tab: "T", Pages: []PageEntry{PagePath("t/api")}}},
			Anchors:   []Anchor{{Anchor: "A", Pages: []PageEntry{PagePath("a/api")}}},
			Dropdowns: []Dropdown{{Dropdown: "D", Pages: []PageEntry{PagePath("d/mcp")}}},
		}
		res := Validate(cfg)
		assert.False(t, res.IsValid)
		require.Len(t, res.Errors, 5)
		assert.Contains(t, res.Errors[0], `Pages: Path "/api"`)
		assert.Contains(t, res.Errors[1], `Pages: Path "a/mcp"`)
		assert.Contains(t, res.Errors[2], `Tab "T"`)
		assert.Contains(t, res.Errors[3], `Anchor "A"`)
		assert.Contains(t, res.Errors[4], `Dropdown "D"`)
	})

	t.Run("substring match is literal", func(t *testing.T) {
		res := Validate(Config{Pages: []string{"apis/overview", "mcp-server", "docs/apiary"}})
		assert.False(t, res.IsValid)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "docs/apiary")
	})
}

func TestValidatorCustomReservedPaths(t *testing.T) {
	v := NewValidator([]string{"/internal"})
	res := v.Validate(Config{Pages: []string{"foo/api", "x/internal/y"}})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, `Pages: Path "x/internal/y" contains reserved path "/internal"`, res.Errors[0])

	assert.Equal(t, DefaultReservedPaths, NewValidator(nil).ReservedPaths)
}
