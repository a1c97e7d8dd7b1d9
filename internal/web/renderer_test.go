package web

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"avatar-studio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer("", false, zap.NewNop())
	require.NoError(t, err)
	return r
}

func renderString(t *testing.T, r *TemplateRenderer, name string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, data))
	return buf.String()
}

func testConfig() *models.Configuration {
	return &models.Configuration{
		Models:       []string{"gpt-4o-mini", "gpt-4"},
		ContentTypes: []string{"reel", "carousel"},
		Checklist: []models.ChecklistItemDef{
			{ID: "script_review", Name: "Script review", Description: "Read the script", Automated: false},
			{ID: "auto_post", Name: "Auto post", Description: "Scheduled by the backend", Automated: true},
		},
	}
}

func TestResultBlocks_FixedOrderAndSubset(t *testing.T) {
	blocks := ResultBlocks(&models.ContentResult{
		AvatarDialogue: "hi",
		Caption:        "cap",
		Script:         "scr",
	})

	require.Len(t, blocks, 3)
	assert.Equal(t, "script", blocks[0].Key)
	assert.Equal(t, "caption", blocks[1].Key)
	assert.Equal(t, "avatar_dialogue", blocks[2].Key)
	assert.Nil(t, ResultBlocks(nil))
}

func TestChecklistRows_OneRowPerItemWithPendingDefault(t *testing.T) {
	cfg := testConfig()
	rows := ChecklistRows(cfg.Checklist, models.StatusMap{"auto_post": models.StatusCompleted})

	require.Len(t, rows, 2)
	assert.Equal(t, "script_review", rows[0].ID)
	assert.Equal(t, models.StatusPending, rows[0].Status)
	assert.Equal(t, Badge{Label: "Pending", Class: "status-pending"}, rows[0].Badge)
	assert.True(t, rows[0].ShowManual)

	assert.Equal(t, Badge{Label: "Completed", Class: "status-completed"}, rows[1].Badge)
	assert.False(t, rows[1].ShowManual)
}

func TestBadgeFor_UnknownFallsBackToPending(t *testing.T) {
	assert.Equal(t, "Manual", BadgeFor(models.StatusManual).Label)
	assert.Equal(t, "Failed", BadgeFor(models.StatusFailed).Label)
	assert.Equal(t, "Pending", BadgeFor(models.ChecklistStatus("in_review")).Label)
}

func TestSelectOptions(t *testing.T) {
	t.Run("default model preselected", func(t *testing.T) {
		opts := SelectOptions(modelPlaceholder, []string{"gpt-4o-mini", "gpt-4"}, "", "gpt-4o-mini")
		require.Len(t, opts, 3)
		assert.Equal(t, Option{Value: "", Label: "Select API Model"}, opts[0])
		assert.True(t, opts[1].Selected)
		assert.False(t, opts[2].Selected)
	})

	t.Run("submitted value wins", func(t *testing.T) {
		opts := SelectOptions(modelPlaceholder, []string{"gpt-4o-mini", "gpt-4"}, "gpt-4", "gpt-4o-mini")
		assert.False(t, opts[1].Selected)
		assert.True(t, opts[2].Selected)
	})

	t.Run("sentinel selected when nothing matches", func(t *testing.T) {
		opts := SelectOptions(contentTypePlaceholder, []string{"reel"}, "story", "")
		assert.True(t, opts[0].Selected)
		assert.False(t, opts[1].Selected)
	})

	t.Run("empty config", func(t *testing.T) {
		opts := SelectOptions(modelPlaceholder, nil, "", "gpt-4o-mini")
		require.Len(t, opts, 1)
		assert.True(t, opts[0].Selected)
	})
}

func TestRender_IndexPreselectsDefaultModel(t *testing.T) {
	r := newTestRenderer(t)
	snap := models.SessionContext{Config: testConfig()}

	out := renderString(t, r, PageIndex, NewPageView(snap, FormValues{}, "gpt-4o-mini", ""))

	assert.Contains(t, out, `<option value="gpt-4o-mini" selected>gpt-4o-mini</option>`)
	assert.Contains(t, out, `<option value="gpt-4">gpt-4</option>`)
	assert.Contains(t, out, `<option value="" selected>Select Content Type</option>`)
	assert.NotContains(t, out, `id="results"`)
	assert.Contains(t, out, `hx-on::before-request="clearBeforeCreate(this)"`)
	assert.Contains(t, out, "function clearBeforeCreate(form)")
}

func TestRender_IndexShowsConfigError(t *testing.T) {
	r := newTestRenderer(t)
	msg := "Failed to load configuration. Make sure the backend is running."

	out := renderString(t, r, PageIndex, NewPageView(models.SessionContext{}, FormValues{}, "gpt-4o-mini", msg))

	assert.Contains(t, out, msg)
	assert.Contains(t, out, `<option value="" selected>Select API Model</option>`)
}

func TestRender_CoffeeExampleShowsOnlyCaption(t *testing.T) {
	r := newTestRenderer(t)
	snap := models.SessionContext{
		Config:    testConfig(),
		SessionID: "s1",
		Result:    &models.ContentResult{Caption: "Brew on!"},
		Status:    models.StatusMap{"script_review": models.StatusPending},
	}

	out := renderString(t, r, FragmentWorkspace, FragmentView{Workspace: NewWorkspaceView(snap)})

	assert.Contains(t, out, "Brew on!")
	assert.Contains(t, out, "Caption")
	for _, absent := range []string{"Script</h3>", "Carousel Content", "Hashtags", "Alt Text", "Avatar Dialogue"} {
		assert.NotContains(t, out, absent)
	}
	assert.Equal(t, 1, strings.Count(out, `class="result-section"`))
}

func TestRender_EscapesResultText(t *testing.T) {
	r := newTestRenderer(t)
	snap := models.SessionContext{
		Config:    testConfig(),
		SessionID: "s1",
		Result:    &models.ContentResult{Script: `<script>alert("x")</script>`, Hashtags: "#a & #b"},
		Warnings:  []string{"<b>warn</b>"},
	}

	out := renderString(t, r, FragmentWorkspace, FragmentView{Workspace: NewWorkspaceView(snap)})

	assert.NotContains(t, out, `<script>alert`)
	assert.Contains(t, out, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;")
	assert.Contains(t, out, "#a &amp; #b")
	assert.Contains(t, out, "&lt;b&gt;warn&lt;/b&gt;")
}

func TestRender_ChecklistFragment(t *testing.T) {
	r := newTestRenderer(t)
	snap := models.SessionContext{
		Config:    testConfig(),
		SessionID: "s1",
		Result:    &models.ContentResult{Caption: "c"},
		Status:    models.StatusMap{"script_review": models.StatusManual},
	}

	out := renderString(t, r, FragmentChecklist, FragmentView{Workspace: NewWorkspaceView(snap)})

	assert.Equal(t, 2, strings.Count(out, `class="checklist-item"`))
	assert.Equal(t, 2, strings.Count(out, "Mark Complete"))
	assert.Equal(t, 1, strings.Count(out, "Mark Manual"))
	assert.Contains(t, out, `status-badge status-manual">Manual`)
	assert.Contains(t, out, `status-badge status-pending">Pending`)
	assert.Contains(t, out, `hx-swap-oob="innerHTML"`)
}

func TestRender_ChecklistFragmentWithoutResult(t *testing.T) {
	r := newTestRenderer(t)
	// Сессия еще старая, а результат уже очищен новым созданием контента.
	snap := models.SessionContext{
		Config:    testConfig(),
		SessionID: "s1",
		Status:    models.StatusMap{"auto_post": models.StatusCompleted},
	}

	view := NewWorkspaceView(snap)
	assert.False(t, view.Visible)
	require.Len(t, view.Checklist, 2)

	out := renderString(t, r, FragmentChecklist, FragmentView{Workspace: view})
	assert.Equal(t, 2, strings.Count(out, `class="checklist-item"`))
	assert.Contains(t, out, `status-badge status-completed">Completed`)

	workspace := renderString(t, r, FragmentWorkspace, FragmentView{Workspace: view})
	assert.NotContains(t, workspace, `class="checklist-item"`)
}

func TestRender_ErrorFragment(t *testing.T) {
	r := newTestRenderer(t)

	out := renderString(t, r, FragmentError, FragmentView{Error: "Please fill in all required fields."})

	assert.Contains(t, out, "Please fill in all required fields.")
	assert.NotContains(t, out, "hx-swap-oob")
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, "missing.html", nil))
}

func TestRenderer_DebugReparsesFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("v1 {{.}}"), 0o644))

	r, err := NewTemplateRenderer(dir, true, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "v1 x", renderString(t, r, "page.html", "x"))

	require.NoError(t, os.WriteFile(path, []byte("v2 {{.}}"), 0o644))
	assert.Equal(t, "v2 x", renderString(t, r, "page.html", "x"))

	require.NoError(t, os.WriteFile(path, []byte("broken {{"), 0o644))
	assert.Equal(t, "v2 x", renderString(t, r, "page.html", "x"))
}
