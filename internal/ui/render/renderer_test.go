package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/previewhost/internal/state"
)

func TestTruncateTextToWidth(t *testing.T) {
	r := NewRenderer(nil)

	tests := []struct {
		name   string
		text   string
		width  int
		expect string
	}{
		{"fits without truncation", "file.txt", 20, "file.txt"},
		{"adds ellipsis when needed", "verylongname", 6, "veryl…"},
		{"only ellipsis when width too small", "example", 1, "…"},
		{"multi-byte characters respected", "你好世界", 5, "你好…"},
		{"returns empty when width is zero", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := r.truncateTextToWidth(tt.text, tt.width)
			if actual != tt.expect {
				t.Fatalf("expected %q, got %q (width %d)", tt.expect, actual, tt.width)
			}
		})
	}
}

func TestFitPathKeepsTail(t *testing.T) {
	r := NewRenderer(nil)
	if got := r.fitPath("/home/user/projects/deep/file.txt", 12); got != "…ep/file.txt" {
		t.Fatalf("fitPath=%q", got)
	}
	if got := r.fitPath("/short", 20); got != "/short" {
		t.Fatalf("fitPath=%q", got)
	}
	if got := r.fitPath("/home/user", 1); got != "…" {
		t.Fatalf("fitPath=%q", got)
	}
}

func TestPreviewAreaFollowsVisibility(t *testing.T) {
	state := &statepkg.AppState{PreviewVisible: true}

	area := PreviewArea(100, 30, state)
	want := Area{X: 41, Y: 2, Width: 59, Height: 27}
	if area != want {
		t.Fatalf("PreviewArea=%+v want %+v", area, want)
	}

	state.PreviewVisible = false
	if area := PreviewArea(100, 30, state); area != (Area{}) {
		t.Fatalf("hidden pane area=%+v", area)
	}

	state.PreviewVisible = true
	if area := PreviewArea(30, 30, state); area != (Area{}) {
		t.Fatalf("narrow terminal area=%+v", area)
	}
}

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.SimulationScreen, y, from, to int) string {
	var b strings.Builder
	for x := from; x < to; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestRenderDrawsListAndPane(t *testing.T) {
	screen := newTestScreen(t, 80, 10)
	r := NewRenderer(screen)
	state := &statepkg.AppState{
		CurrentPath: "/work",
		Files: []statepkg.FileEntry{
			{Name: "docs", IsDir: true},
			{Name: "notes.txt"},
		},
		SelectedIndex:  1,
		PreviewVisible: true,
		PreviewPath:    "/work/notes.txt",
		PreviewStatus:  statepkg.PreviewUnsupported,
		DarkTheme:      true,
	}

	r.Render(state)

	if got := rowText(screen, 0, 0, 80); !strings.Contains(got, "/work") {
		t.Fatalf("header=%q", got)
	}
	if got := rowText(screen, 1, 0, 32); got != " / docs" {
		t.Fatalf("row 1=%q", got)
	}
	if got := rowText(screen, 2, 0, 32); got != "   notes.txt" {
		t.Fatalf("row 2=%q", got)
	}
	area := PreviewArea(80, 10, state)
	if got := rowText(screen, area.Y-1, area.X, 80); !strings.Contains(got, "notes.txt") {
		t.Fatalf("pane title=%q", got)
	}
	if got := rowText(screen, area.Y, area.X, 80); !strings.Contains(got, "No preview available") {
		t.Fatalf("pane body=%q", got)
	}
}

func TestRenderLeavesLoadedPaneToPreview(t *testing.T) {
	screen := newTestScreen(t, 80, 10)
	r := NewRenderer(screen)
	state := &statepkg.AppState{
		CurrentPath:    "/work",
		Files:          []statepkg.FileEntry{{Name: "a.txt"}},
		PreviewVisible: true,
		PreviewPath:    "/work/a.txt",
		PreviewStatus:  statepkg.PreviewLoaded,
	}

	r.Render(state)

	area := PreviewArea(80, 10, state)
	if got := rowText(screen, area.Y, area.X, 80); got != "" {
		t.Fatalf("pane body should be blank, got %q", got)
	}
}

func TestRenderShowsFailure(t *testing.T) {
	screen := newTestScreen(t, 80, 10)
	r := NewRenderer(screen)
	state := &statepkg.AppState{
		CurrentPath:    "/work",
		Files:          []statepkg.FileEntry{{Name: "a.bin"}},
		PreviewVisible: true,
		PreviewPath:    "/work/a.bin",
		PreviewStatus:  statepkg.PreviewFailed,
		PreviewErr:     errors.New("boom"),
	}

	r.Render(state)

	area := PreviewArea(80, 10, state)
	if got := rowText(screen, area.Y, area.X, 80); !strings.Contains(got, "boom") {
		t.Fatalf("pane body=%q", got)
	}
}

func TestRenderSwitchesPalette(t *testing.T) {
	screen := newTestScreen(t, 40, 5)
	r := NewRenderer(screen)
	state := &statepkg.AppState{CurrentPath: "/"}

	r.Render(state)
	if r.Theme() != GetColorTheme(false) {
		t.Fatal("expected light palette")
	}
	state.DarkTheme = true
	r.Render(state)
	if r.Theme() != GetColorTheme(true) {
		t.Fatal("expected dark palette")
	}
}

func TestStatusLineFlashesAfterYank(t *testing.T) {
	screen := newTestScreen(t, 60, 5)
	r := NewRenderer(screen)
	now := time.Now()
	r.now = func() time.Time { return now }
	state := &statepkg.AppState{
		CurrentPath:  "/work",
		Files:        []statepkg.FileEntry{{Name: "a.txt"}},
		LastYankTime: now,
	}

	r.Render(state)

	_, _, style, _ := screen.GetContent(0, 4)
	_, bg, _ := style.Decompose()
	if bg != tcell.ColorGreen {
		t.Fatalf("status background=%v, want green flash", bg)
	}
}

func TestFooterHelpReflectsState(t *testing.T) {
	state := &statepkg.AppState{
		Files:              []statepkg.FileEntry{{Name: "a.txt"}},
		ClipboardAvailable: true,
		PreviewVisible:     true,
		PreviewStatus:      statepkg.PreviewLoaded,
	}
	help := buildFooterHelpText(state)
	for _, want := range []string{"y copy", "Tab focus", "p hide"} {
		if !strings.Contains(help, want) {
			t.Fatalf("help %q missing %q", help, want)
		}
	}

	state.Focus = statepkg.FocusPreview
	if help := buildFooterHelpText(state); !strings.HasPrefix(help, "Esc back") {
		t.Fatalf("preview focus help=%q", help)
	}
}

func TestStatusLineShowsLastError(t *testing.T) {
	screen := newTestScreen(t, 60, 5)
	r := NewRenderer(screen)
	state := &statepkg.AppState{
		CurrentPath: "/work",
		LastError:   errors.New("clipboard unavailable"),
	}

	r.Render(state)

	if got := rowText(screen, 4, 0, 60); !strings.HasPrefix(got, "error: clipboard unavailable") {
		t.Fatalf("status=%q", got)
	}
}
