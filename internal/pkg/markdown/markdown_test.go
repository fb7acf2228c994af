package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	out := Render("a **bold** claim")
	assert.Contains(t, out, "<strong>bold</strong>")

	out = Render("- one\n- two")
	assert.Contains(t, out, "<li>one</li>")

	assert.Equal(t, "", Render("   "))
}

func TestRenderLinkifies(t *testing.T) {
	out := Render("see https://example.com for details")
	assert.Contains(t, out, `href="https://example.com"`)
}

func TestSanitizeHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		deny []string
	}{
		{"script tag", `<p>hi</p><script>alert(1)</script>`, []string{"<script", "alert"}},
		{"script tag with attrs", `<script type="text/javascript">x()</script><b>ok</b>`, []string{"<script"}},
		{"double quoted handler", `<img src="x" onerror="steal()">`, []string{"onerror"}},
		{"single quoted handler", `<div onclick='boom()'>hi</div>`, []string{"onclick"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := SanitizeHTML(tc.in)
			for _, fragment := range tc.deny {
				assert.NotContains(t, out, fragment)
			}
		})
	}
}

func TestSanitizeHTMLKeepsSafeMarkup(t *testing.T) {
	in := `<p class="note">hello <em>world</em></p>`
	assert.Equal(t, in, SanitizeHTML(in))
}
