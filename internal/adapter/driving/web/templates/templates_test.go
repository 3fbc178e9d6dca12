package templates

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vm "github.com/risinglab/jewelpanel/internal/adapter/driving/web/viewmodel"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

var templDecl = regexp.MustCompile(`(?m)^templ (\w+)\(`)

func TestTemplSources_PairWithGoFiles(t *testing.T) {
	sources, err := filepath.Glob("*.templ")
	require.NoError(t, err)
	require.NotEmpty(t, sources)

	var declared []string
	for _, src := range sources {
		_, err := os.Stat(strings.TrimSuffix(src, ".templ") + "_templ.go")
		assert.NoError(t, err, "%s has no Go counterpart", src)

		data, err := os.ReadFile(src)
		require.NoError(t, err)
		for _, m := range templDecl.FindAllStringSubmatch(string(data), -1) {
			declared = append(declared, m[1])
		}
	}
	slices.Sort(declared)

	assert.Equal(t, []string{
		"AccountMenu", "ActivityFeed", "Dashboard", "Dialog", "EditorContent",
		"EditorToolbar", "ImageList", "JewelleryList", "Layout", "LoginPage",
		"avatar", "csrfInput", "dashboardBody", "helper", "inputField",
		"loginForm", "selectField",
	}, declared)
}

func TestImageList_StoredAndStagedImages(t *testing.T) {
	html := renderString(t, ImageList([]vm.AttachmentViewModel{
		{ID: "k1", FileName: "front.png", URL: "/uploads/front.png", Size: "Saved", DeletePath: "/app/dialog/images/k1"},
		{ID: "a1", FileName: "side.png", Size: "2 kB", DeletePath: "/app/dialog/images/a1"},
	}))

	assert.Contains(t, html, `<img class="thumb" alt="" src="/uploads/front.png">`)
	assert.Contains(t, html, `hx-delete="/app/dialog/images/k1"`)
	assert.Contains(t, html, `<i class="tabler-photo"></i>`)
	assert.Contains(t, html, `<span class="file-name">side.png</span>`)
	assert.Equal(t, 1, strings.Count(html, "<img"))
}

func TestEditorContent_OutOfBand(t *testing.T) {
	m := vm.DialogViewModel{EditorPath: "/app/dialog/description", EditorHTML: "<p>Gold</p>"}

	inline := renderString(t, EditorContent(m, false))
	assert.NotContains(t, inline, "hx-swap-oob")
	assert.Contains(t, inline, `data-sync-path="/app/dialog/description"`)
	assert.Contains(t, inline, `<p>Gold</p></div>`)

	oob := renderString(t, EditorContent(m, true))
	assert.Contains(t, oob, `hx-swap-oob="true" data-fresh="true"`)
}
