package nav

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOps(t *testing.T) {
	forest := newTestForest(t)
	group := forest[3]

	t.Run("batch applies in order", func(t *testing.T) {
		out, err := ApplyOps(forest, []Op{
			AddItemOp{Type: TypeTab, Data: TabData{Name: "API", Icon: "code"}},
			AddChildOp{ParentID: group.ID, Type: TypePage, Data: PageData{Path: "guides/two"}},
			UpdateItemOp{NodeID: group.ID, Patch: Patch{Tag: strPtr("NEW")}},
			MoveItemOp{NodeID: forest[2].ID, Direction: Up},
			DeleteItemOp{NodeID: forest[0].ID},
			DuplicateItemOp{NodeID: forest[4].ID},
		})
		require.NoError(t, err)

		cfg := ForestToConfig(out)
		assert.Equal(t, []string{"c", "b"}, cfg.Pages)
		require.Len(t, cfg.Groups, 1)
		assert.Equal(t, "NEW", cfg.Groups[0].Tag)
		assert.Len(t, cfg.Groups[0].Pages, 3)
		require.Len(t, cfg.Tabs, 1)
		assert.Equal(t, "API", cfg.Tabs[0].Tab)
		assert.Len(t, cfg.Versions, 2)
	})

	t.Run("failure leaves input untouched", func(t *testing.T) {
		out, err := ApplyOps(forest, []Op{
			DeleteItemOp{NodeID: forest[0].ID},
			AddChildOp{ParentID: forest[1].ID, Type: TypePage, Data: PageData{Path: "x"}},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidParent))
		assert.Contains(t, err.Error(), "op 1")
		assert.Equal(t, labels(forest), labels(out))
	})

	t.Run("later ops see earlier ones", func(t *testing.T) {
		err := ValidateOps(forest, []Op{
			DeleteItemOp{NodeID: group.ID},
			UpdateItemOp{NodeID: group.ID, Patch: Patch{Label: strPtr("gone")}},
		})
		assert.True(t, errors.Is(err, ErrNodeNotFound))
	})

	t.Run("unsupported op", func(t *testing.T) {
		err := ValidateOps(forest, []Op{nil})
		assert.True(t, errors.Is(err, errUnsupportedOp))
	})

	t.Run("empty batch", func(t *testing.T) {
		out, err := ApplyOps(forest, nil)
		require.NoError(t, err)
		assert.Equal(t, labels(forest), labels(out))
	})
}

func TestInspect(t *testing.T) {
	forest := Forest{
		{ID: "g", Type: TypeGroup, Data: GroupData{Name: "G"}, Children: []*Node{
			{ID: "p", Type: TypePage, Data: PageData{Path: "p"}, ParentID: "elsewhere"},
			{ID: "t", Type: TypeTab, Data: TabData{Name: "t"}, ParentID: "g"},
		}},
		{ID: "x", Type: TypeGroup, Data: PageData{Path: "mismatch"}},
		{ID: "y", Type: TypePage, ParentID: "g"},
	}
	got := Inspect(forest)
	ids := make([]string, 0, len(got))
	for _, v := range got {
		ids = append(ids, v.NodeID)
	}
	assert.Equal(t, []string{"p", "t", "x", "y", "y"}, ids)
	assert.Contains(t, got[0].String(), "elsewhere")
}
