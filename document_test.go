package lintview_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/lintview"
	"github.com/stretchr/testify/assert"
)

func TestDocument_Markup(t *testing.T) {
	t.Parallel()

	t.Run("renders topics for findings", func(t *testing.T) {
		t.Parallel()

		col := 2
		f1 := lintview.Finding{Code: "E225", Message: "missing whitespace", Path: "/a.py", Line: 3, Column: &col, EnabledBy: "pep8"}
		f2 := lintview.Finding{Code: "E501", Message: "line too long", Path: "/a.py", Line: 8, Explanation: "Keep lines short."}
		doc := lintview.Presenter{}.Render([]lintview.Finding{f2, f1}, &lintview.LinterConfig{Value: []byte(`"default"`)})

		got := doc.Markup()

		assert.Contains(t, got, ".. default-role:: code\n\n.. role:: light\n\n.. role:: remark\n\n")
		assert.Contains(t, got, "===============\nWhat to improve\n===============\n")
		assert.Contains(t, got, ":remark:`Addressing these suggestions")
		assert.Contains(t, got, ".. topic:: `Line 3 <editor:///a.py#3:2>`__ : [pep8] missing whitespace\n    :class: toggle, tight\n    \n    missing whitespace\n")
		assert.Contains(t, got, ".. topic:: `Line 8 <editor:///a.py#8>`__ : line too long\n    :class: toggle\n    \n    Keep lines short.\n")
		assert.Contains(t, got, "Summary: pep8: 1, undetermined origin: 1\n")
		assert.Contains(t, got, ":remark:`used configuration: default`")

		title := strings.Index(got, "What to improve")
		summary := strings.Index(got, "Summary:")
		firstBlock := strings.Index(got, ".. topic::")
		config := strings.Index(got, "used configuration")
		assert.Less(t, title, summary)
		assert.Less(t, summary, firstBlock)
		assert.Less(t, firstBlock, config)
	})

	t.Run("renders only summary for empty report", func(t *testing.T) {
		t.Parallel()

		got := lintview.Presenter{}.Render(nil, nil).Markup()

		assert.Equal(t, "Summary: no problems detected\n\n", got)
	})
}
