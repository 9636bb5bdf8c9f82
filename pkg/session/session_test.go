package session

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rexliu/navb/pkg/codec"
	"github.com/rexliu/navb/pkg/logging"
	"github.com/rexliu/navb/pkg/nav"
)

const doc = `{"pages": ["index", "docs/api/ref"], "groups": [{"group": "G", "pages": ["g/one"]}]}`

func TestImport(t *testing.T) {
	var logs bytes.Buffer
	s := New(nil, logging.NewWithWriter("session", &logs))

	res, err := s.Import([]byte(doc), FormatJSON)
	require.NoError(t, err)
	assert.False(t, res.IsValid, "validation problems do not block import")
	assert.Len(t, s.Forest(), 3)
	assert.Equal(t, res.Errors, s.Errors())
	assert.Contains(t, logs.String(), "navigation validation warnings")

	t.Run("malformed text leaves snapshot untouched", func(t *testing.T) {
		before := s.Forest()
		_, err := s.Import([]byte(`{"pages": [`), FormatJSON)
		require.Error(t, err)
		assert.True(t, errors.Is(err, codec.ErrMalformed))
		assert.Equal(t, before, s.Forest())
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := s.Import([]byte(doc), Format("toml"))
		assert.True(t, errors.Is(err, ErrUnknownFormat))
	})
}

func TestImportTabMenu(t *testing.T) {
	const withMenu = `{"tabs": [{"tab": "API", "menu": [{"item": "REST", "pages": ["api/rest"]}]}]}`
	s := New(nil, nil)
	_, err := s.Import([]byte(withMenu), FormatJSON)
	require.NoError(t, err)
	out, err := s.Export(FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, withMenu, string(out))

	t.Run("unknown fields are rejected, not dropped", func(t *testing.T) {
		before := s.Forest()
		for _, format := range []Format{FormatJSON, FormatYAML} {
			text := `{"tabs": [{"tab": "API"}], "global": {"anchors": []}}`
			_, err := s.Import([]byte(text), format)
			assert.True(t, errors.Is(err, codec.ErrMalformed), format)
		}
		assert.Equal(t, before, s.Forest())
	})
}

func TestEditAndExport(t *testing.T) {
	s := New(nav.NewValidator(nil), nil)
	_, err := s.Import([]byte(doc), FormatJSON)
	require.NoError(t, err)

	bad := s.Forest()[1]
	require.NoError(t, s.Apply(nav.UpdateItemOp{NodeID: bad.ID, Patch: nav.Patch{Label: strPtr("docs/reference")}}))
	assert.True(t, s.Validate().IsValid)
	assert.Empty(t, s.Errors())

	group := s.Forest()[2]
	require.NoError(t, s.Apply(
		nav.AddChildOp{ParentID: group.ID, Type: nav.TypePage, Data: nav.PageData{Path: "g/two"}},
		nav.MoveItemOp{NodeID: group.ID, Direction: nav.Up},
	))

	out, err := s.Export(FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pages": ["index", "docs/reference"], "groups": [{"group": "G", "pages": ["g/one", "g/two"]}]}`, string(out))

	yml, err := s.Export(FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(yml), "- g/two")

	t.Run("failed batch keeps snapshot", func(t *testing.T) {
		before := s.Forest()
		err := s.Apply(nav.DeleteItemOp{NodeID: "missing"})
		assert.True(t, errors.Is(err, nav.ErrNodeNotFound))
		assert.Equal(t, before, s.Forest())
	})

	t.Run("yaml import", func(t *testing.T) {
		other := New(nil, nil)
		_, err := other.Import(yml, FormatYAML)
		require.NoError(t, err)
		again, err := other.Export(FormatJSON)
		require.NoError(t, err)
		assert.JSONEq(t, string(out), string(again))
	})

	s.Reset()
	assert.Empty(t, s.Forest())
	empty, err := s.Export(FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(empty))
}

func TestConfigLogsInvariantBreaches(t *testing.T) {
	var logs bytes.Buffer
	s := New(nil, logging.NewWithWriter("session", &logs))
	s.forest = nav.Forest{{
		ID: "v", Type: nav.TypeVersion, Data: nav.VersionData{Key: "v1"},
		Children: []*nav.Node{{ID: "p", Type: nav.TypePage, Data: nav.PageData{Path: "stray"}, ParentID: "v"}},
	}}
	cfg := s.Config()
	require.Len(t, cfg.Versions, 1)
	assert.Empty(t, cfg.Versions[0].Groups)
	assert.Contains(t, logs.String(), "skipping invalid node")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func strPtr(s string) *string {
	return &s
}
