package lintview_test

import (
	"slices"
	"testing"

	"github.com/fwojciec/lintview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finding(path string, line int, code string) lintview.Finding {
	return lintview.Finding{Code: code, Message: code + " message", Path: path, Line: line}
}

func TestFormatLocationURI(t *testing.T) {
	t.Parallel()

	col := 4

	assert.Equal(t, "editor:///my%20src/a.py#3:4", lintview.FormatLocationURI("", "/my src/a.py", 3, &col))
	assert.Equal(t, "thonny-editor:///a.py#3", lintview.FormatLocationURI("thonny-editor", "/a.py", 3, nil))
	assert.Equal(t, "editor:///a.py", lintview.FormatLocationURI("editor", "/a.py", 0, &col))
}

func TestPresenter_Render(t *testing.T) {
	t.Parallel()

	t.Run("orders by line then descending relevance", func(t *testing.T) {
		t.Parallel()

		a := finding("/a.py", 5, "A")
		a.Relevance = 1
		b := finding("/a.py", 3, "B")
		b.Relevance = 5
		c := finding("/a.py", 3, "C")
		c.Relevance = 1

		doc := lintview.Presenter{}.Render([]lintview.Finding{a, b, c}, nil)

		var codes []string
		for _, blk := range doc.Blocks() {
			codes = append(codes, blk.Finding.Code)
		}
		assert.Equal(t, []string{"B", "C", "A"}, codes)
	})

	t.Run("collapses duplicate findings", func(t *testing.T) {
		t.Parallel()

		f := finding("/a.py", 2, "W0611")

		doc := lintview.Presenter{}.Render([]lintview.Finding{f, f}, nil)

		assert.Equal(t, 1, doc.Len())
	})

	t.Run("is deterministic under reordering", func(t *testing.T) {
		t.Parallel()

		x := finding("/b.py", 1, "X")
		x.EnabledBy = "pylint"
		y := finding("/b.py", 1, "X")
		y.EnabledBy = "flake8"
		findings := []lintview.Finding{
			finding("/a.py", 9, "A"),
			x,
			finding("/b.py", 1, "Z"),
			y,
			finding("/a.py", 2, "B"),
		}
		reversed := slices.Clone(findings)
		slices.Reverse(reversed)

		assert.Equal(t, lintview.Presenter{}.Render(findings, nil), lintview.Presenter{}.Render(reversed, nil))
	})

	t.Run("renders empty input", func(t *testing.T) {
		t.Parallel()

		doc := lintview.Presenter{}.Render(nil, nil)

		assert.Equal(t, "no problems detected", doc.Summary)
		assert.Zero(t, doc.Len())
		assert.Empty(t, doc.ConfigLine)
	})

	t.Run("summarizes counts by origin", func(t *testing.T) {
		t.Parallel()

		f1 := finding("/a.py", 1, "A")
		f1.EnabledBy = "pylint"
		f2 := finding("/a.py", 2, "B")
		f2.EnabledBy = "flake8"
		f3 := finding("/a.py", 3, "C")
		f4 := finding("/a.py", 4, "D")
		f4.EnabledBy = "pylint"

		doc := lintview.Presenter{}.Render([]lintview.Finding{f1, f2, f3, f4}, nil)

		assert.Equal(t, "flake8: 1, pylint: 2, undetermined origin: 1", doc.Summary)
	})

	t.Run("groups by file and links headers only for several files", func(t *testing.T) {
		t.Parallel()

		single := lintview.Presenter{}.Render([]lintview.Finding{finding("/a.py", 1, "A")}, nil)
		multi := lintview.Presenter{Scheme: "ed"}.Render([]lintview.Finding{finding("/b.py", 1, "A"), finding("/a.py", 1, "A")}, nil)

		require.Len(t, single.Sections, 1)
		assert.Empty(t, single.Sections[0].HeaderURI)
		require.Len(t, multi.Sections, 2)
		assert.Equal(t, "/a.py", multi.Sections[0].Path)
		assert.Equal(t, "ed:///a.py", multi.Sections[0].HeaderURI)
		assert.Equal(t, "/b.py", multi.Sections[1].Path)
	})

	t.Run("builds block title and body", func(t *testing.T) {
		t.Parallel()

		col := 0
		explained := finding("/a.py", 1, "A")
		explained.EnabledBy = "pylint"
		explained.Message = "first line\nsecond line"
		explained.Explanation = "**Why**"
		explained.MoreInfoURL = "https://example.com/A"
		explained.Column = &col
		plain := finding("/a.py", 2, "B")
		plain.Message = "use my_var"
		empty := finding("/a.py", 3, "C")
		empty.Message = ""

		blocks := lintview.Presenter{}.Render([]lintview.Finding{explained, plain, empty}, nil).Blocks()

		require.Len(t, blocks, 3)
		assert.Equal(t, "[pylint] first line", blocks[0].Title)
		assert.Equal(t, "editor:///a.py#1:0", blocks[0].URI)
		assert.Equal(t, "**Why**\n\n`More info online <https://example.com/A>`__", blocks[0].Body)
		assert.True(t, blocks[0].Collapsible)
		assert.True(t, blocks[0].Tight)
		assert.Equal(t, `use my\_var`, blocks[1].Body)
		assert.True(t, blocks[1].Tight)
		assert.Equal(t, "n/a", blocks[2].Body)
		assert.False(t, blocks[2].Collapsible)
		assert.False(t, blocks[2].Tight)
	})

	t.Run("writes configuration line", func(t *testing.T) {
		t.Parallel()

		doc := lintview.Presenter{}.Render(nil, &lintview.LinterConfig{Value: []byte(`"--max-line-length=100"`)})

		assert.Equal(t, "used configuration: --max-line-length=100", doc.ConfigLine)
	})
}
