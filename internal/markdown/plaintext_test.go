package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fenced code removed with its content",
			in:   "Before\n```go\nfunc main() {}\n```\nAfter",
			want: "Before After",
		},
		{
			name: "inline code removed",
			in:   "Call `fmt.Println` to print",
			want: "Call  to print",
		},
		{
			name: "links keep their label",
			in:   "See [the docs](https://example.com/docs) for more",
			want: "See the docs for more",
		},
		{
			name: "structural symbols stripped",
			in:   "# Title\n\n**bold** _em_ ~~gone~~",
			want: "Title bold em gone",
		},
		{
			name: "newline runs collapse",
			in:   "one\n\n\ntwo\nthree",
			want: "one two three",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "\n\n  padded  \n",
			want: "padded",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}

func TestPlainText_CodeBeforeSymbols(t *testing.T) {
	in := "Use ```# not a heading``` and `*star*` here"
	assert.Equal(t, "Use  and  here", PlainText(in))
}

func TestPlainText_Idempotent(t *testing.T) {
	inputs := []string{
		"# Hello\n\nSome *markdown* with a [link](http://x.y) and `code`.\n\n```\nblock\n```\n",
		"Already plain text",
		"Tabs\tand   spaces\n\nand lines",
		"~~strike~~ __under__ ## heading",
	}
	for _, in := range inputs {
		once := PlainText(in)
		assert.Equal(t, once, PlainText(once), "input %q", in)
	}
}
