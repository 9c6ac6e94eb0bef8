package lintview_test

import (
	"testing"

	"github.com/fwojciec/lintview"
	"github.com/stretchr/testify/assert"
)

func TestToMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "converts heading to bold line",
			in:   "# Why is it bad",
			want: "**Why is it bad**",
		},
		{
			name: "converts links",
			in:   "See [the docs](https://docs.python.org/3/) and [PEP 8](https://peps.python.org/pep-0008/).",
			want: "See `the docs <https://docs.python.org/3/>`__ and `PEP 8 <https://peps.python.org/pep-0008/>`__.",
		},
		{
			name: "converts fenced code to indented directive",
			in:   "Instead:\n\n```py\n# keep comment\nif x:\n    pass\n```\nDone.",
			want: "Instead:\n\n.. code::\n\n    # keep comment\n    if x:\n        pass\n\nDone.",
		},
		{
			name: "rewrites code-block directive",
			in:   ".. code-block:: py\n\n    x = [i](j)\n\nText",
			want: ".. code::\n\n    x = [i](j)\n\nText",
		},
		{
			name: "separates literal block from following text",
			in:   ".. code::\n\n    x = 1\nText",
			want: ".. code::\n\n    x = 1\n\nText",
		},
		{
			name: "leaves plain text untouched",
			in:   "Use `in` instead of comparisons.\n#notaheading",
			want: "Use `in` instead of comparisons.\n#notaheading",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := lintview.ToMarkup(tt.in)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, lintview.ToMarkup(got), "second conversion must not change output")
		})
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `use \*args and my\_var`, lintview.Escape("use *args and my_var"))
	assert.Equal(t, "\\`x\\`", lintview.Escape("`x`"))
}
