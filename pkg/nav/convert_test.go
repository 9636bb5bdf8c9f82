package nav

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `{
  "pages": ["index", "quickstart"],
  "groups": [
    {"group": "Getting Started", "icon": "play", "pages": [
      "overview",
      {"group": "Installation", "icon": "download", "tag": "NEW", "pages": ["installation/requirements"]}
    ]}
  ],
  "tabs": [
    {"tab": "Docs", "icon": "book", "pages": ["docs/guide", {"group": "Advanced", "pages": ["docs/advanced"]}]},
    {"tab": "Blog", "href": "https://example.com/blog"}
  ],
  "anchors": [{"anchor": "Community", "icon": "discord", "href": "https://discord.gg/example"}],
  "dropdowns": [{"dropdown": "Resources", "pages": ["resources/faq"]}],
  "versions": [{"version": "v2", "groups": [{"group": "Intro", "pages": ["v2/intro"]}]}],
  "languages": [{"language": "fr", "groups": [{"group": "Accueil", "pages": ["fr/index"]}]}]
}`

func decodeConfig(t *testing.T, raw string) Config {
	t.Helper()
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))
	return cfg
}

func encodeConfig(t *testing.T, cfg Config) string {
	t.Helper()
	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	return string(out)
}

func TestRoundTrip(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		cfg := decodeConfig(t, fullConfig)
		got := ForestToConfig(ConfigToForest(cfg))
		assert.JSONEq(t, fullConfig, encodeConfig(t, got))
	})

	t.Run("empty categories are dropped", func(t *testing.T) {
		cfg := decodeConfig(t, `{"pages": [], "tabs": [], "groups": [{"group": "G", "pages": []}]}`)
		got := ForestToConfig(ConfigToForest(cfg))
		assert.JSONEq(t, `{"groups": [{"group": "G", "pages": []}]}`, encodeConfig(t, got))
	})

	t.Run("empty config", func(t *testing.T) {
		got := ForestToConfig(ConfigToForest(Config{}))
		assert.True(t, got.IsEmpty())
		assert.JSONEq(t, `{}`, encodeConfig(t, got))
	})

	t.Run("version without groups keeps empty groups", func(t *testing.T) {
		cfg := decodeConfig(t, `{"versions": [{"version": "1.0.0", "groups": []}]}`)
		got := ForestToConfig(ConfigToForest(cfg))
		assert.JSONEq(t, `{"versions": [{"version": "1.0.0", "groups": []}]}`, encodeConfig(t, got))
	})
}

func TestConfigToForestOrder(t *testing.T) {
	cfg := decodeConfig(t, `{"pages": ["a", "b", "c"]}`)
	forest := ConfigToForest(cfg)
	require.Len(t, forest, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, TypePage, forest[i].Type)
		assert.Equal(t, PageData{Path: want}, forest[i].Data)
		assert.Empty(t, forest[i].ParentID)
		assert.Empty(t, forest[i].Children)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ForestToConfig(forest).Pages)
}

func TestConfigToForestCategoryOrder(t *testing.T) {
	forest := ConfigToForest(decodeConfig(t, fullConfig))
	types := make([]NodeType, 0, len(forest))
	for _, n := range forest {
		types = append(types, n.Type)
	}
	assert.Equal(t, []NodeType{
		TypePage, TypePage, TypeGroup, TypeTab, TypeTab, TypeAnchor, TypeDropdown, TypeVersion, TypeLanguage,
	}, types)
}

func TestConfigToForestLinkage(t *testing.T) {
	forest := ConfigToForest(decodeConfig(t, fullConfig))

	seen := make(map[string]bool)
	Walk(forest, func(n *Node, depth int) bool {
		assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true
		assert.Equal(t, n.Type, n.Data.Type())
		if depth == 0 {
			assert.Empty(t, n.ParentID)
		}
		for _, child := range n.Children {
			assert.Equal(t, n.ID, child.ParentID)
		}
		return true
	})
	assert.Empty(t, Inspect(forest))

	for _, n := range forest {
		if n.Type != TypeVersion && n.Type != TypeLanguage {
			continue
		}
		for _, child := range n.Children {
			assert.Equal(t, TypeGroup, child.Type)
		}
	}
}

func TestNestedGroupFidelity(t *testing.T) {
	raw := `{"groups": [{"group": "Outer", "icon": "folder", "tag": "BETA", "pages": [
		{"group": "Middle", "pages": [{"group": "Inner", "icon": "leaf", "tag": "NEW", "pages": ["deep/page"]}]}
	]}]}`
	forest := ConfigToForest(decodeConfig(t, raw))
	require.Len(t, forest, 1)

	outer := forest[0]
	require.Len(t, outer.Children, 1)
	middle := outer.Children[0]
	require.Len(t, middle.Children, 1)
	inner := middle.Children[0]
	assert.Equal(t, GroupData{Name: "Inner", Icon: "leaf", Tag: "NEW"}, inner.Data)
	require.Len(t, inner.Children, 1)
	assert.Equal(t, PageData{Path: "deep/page"}, inner.Children[0].Data)

	assert.JSONEq(t, raw, encodeConfig(t, ForestToConfig(forest)))
}

func TestConfigToForestFreshIDs(t *testing.T) {
	cfg := decodeConfig(t, fullConfig)
	first := ConfigToForest(cfg)
	second := ConfigToForest(cfg)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.NotEqual(t, first[i].ID, second[i].ID)
	}
}

func TestForestToConfig(t *testing.T) {
	t.Run("does not mutate input", func(t *testing.T) {
		forest := ConfigToForest(decodeConfig(t, fullConfig))
		before, err := json.Marshal(forest)
		require.NoError(t, err)
		_ = ForestToConfig(forest)
		after, err := json.Marshal(forest)
		require.NoError(t, err)
		assert.JSONEq(t, string(before), string(after))
	})

	t.Run("nodes with parent id are not emitted at top level", func(t *testing.T) {
		forest := Forest{
			{ID: "p1", Type: TypePage, Data: PageData{Path: "top"}},
			{ID: "p2", Type: TypePage, Data: PageData{Path: "orphan"}, ParentID: "g1"},
		}
		assert.Equal(t, []string{"top"}, ForestToConfig(forest).Pages)
	})

	t.Run("non-group children of versions are skipped", func(t *testing.T) {
		forest := Forest{{
			ID: "v1", Type: TypeVersion, Data: VersionData{Key: "v1"},
			Children: []*Node{
				{ID: "p1", Type: TypePage, Data: PageData{Path: "stray"}, ParentID: "v1"},
				{ID: "g1", Type: TypeGroup, Data: GroupData{Name: "Kept"}, ParentID: "v1"},
			},
		}}
		cfg := ForestToConfig(forest)
		require.Len(t, cfg.Versions, 1)
		require.Len(t, cfg.Versions[0].Groups, 1)
		assert.Equal(t, "Kept", cfg.Versions[0].Groups[0].Group)

		violations := Inspect(forest)
		require.Len(t, violations, 1)
		assert.Equal(t, "p1", violations[0].NodeID)
	})

	t.Run("payload disagreeing with type is skipped", func(t *testing.T) {
		forest := Forest{
			{ID: "p1", Type: TypePage, Data: PageData{Path: "kept"}},
			{ID: "x1", Type: TypeVersion, Data: PageData{Path: "mislabelled"}},
			{ID: "g1", Type: TypeGroup, Data: GroupData{Name: "G"}, Children: []*Node{
				{ID: "x2", Type: TypeGroup, Data: PageData{Path: "inner"}, ParentID: "g1"},
				{ID: "p2", Type: TypePage, Data: PageData{Path: "g/one"}, ParentID: "g1"},
			}},
		}
		assert.JSONEq(t, `{"pages": ["kept"], "groups": [{"group": "G", "pages": ["g/one"]}]}`, encodeConfig(t, ForestToConfig(forest)))

		var ids []string
		for _, v := range Inspect(forest) {
			ids = append(ids, v.NodeID)
		}
		assert.Equal(t, []string{"x1", "x2"}, ids)
	})

	t.Run("tab without children omits pages", func(t *testing.T) {
		forest := Forest{{ID: "t1", Type: TypeTab, Data: TabData{Name: "Blog", Href: "https://example.com"}}}
		assert.JSONEq(t, `{"tabs": [{"tab": "Blog", "href": "https://example.com"}]}`, encodeConfig(t, ForestToConfig(forest)))
	})
}

func TestTabMenuRoundTrip(t *testing.T) {
	raw := `{"tabs": [{"tab": "API", "icon": "code", "pages": ["api/index"], "menu": [
		{"item": "REST", "icon": "globe", "description": "HTTP endpoints", "pages": ["api/rest"],
		 "groups": [{"group": "Auth", "pages": ["api/rest/auth"]}]},
		{"item": "SDKs"}
	]}]}`
	forest := ConfigToForest(decodeConfig(t, raw))
	require.Len(t, forest, 1)
	data, ok := forest[0].Data.(TabData)
	require.True(t, ok)
	require.Len(t, data.Menu, 2)
	assert.Equal(t, "REST", data.Menu[0].Item)
	assert.JSONEq(t, raw, encodeConfig(t, ForestToConfig(forest)))

	t.Run("survives edits to the tab", func(t *testing.T) {
		out, err := Update(forest, forest[0].ID, Patch{Label: strPtr("Reference")})
		require.NoError(t, err)
		out, _, err = Duplicate(out, out[0].ID)
		require.NoError(t, err)
		cfg := ForestToConfig(out)
		require.Len(t, cfg.Tabs, 2)
		for _, tab := range cfg.Tabs {
			assert.Equal(t, "Reference", tab.Tab)
			assert.Len(t, tab.Menu, 2)
		}
	})
}

func TestNestedGroupRejectsUnknownFields(t *testing.T) {
	var cfg Config
	err := json.Unmarshal([]byte(`{"groups": [{"group": "G", "pages": [{"group": "Sub", "colour": "red", "pages": []}]}]}`), &cfg)
	assert.ErrorContains(t, err, "colour")
}
