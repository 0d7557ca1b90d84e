package render

import statepkg "github.com/kk-code-lab/previewhost/internal/state"

// Area is a rectangle of screen cells.
type Area struct {
	X      int
	Y      int
	Width  int
	Height int
}

type layoutMetrics struct {
	listWidth     int
	separatorX    int
	previewStart  int
	previewWidth  int
	showPreview   bool
	contentTop    int
	contentBottom int
}

const (
	minListWidth      = 24
	minPreviewWidth   = 20
	listWidthRatio    = 0.4
	headerHeight      = 1
	statusLineHeight  = 1
	paneTitleHeight   = 1
	separatorWidth    = 1
	maxListWidthRatio = 0.6
)

func computeLayout(w, h int, state *statepkg.AppState) layoutMetrics {
	if w < 0 {
		w = 0
	}
	m := layoutMetrics{
		listWidth:     w,
		contentTop:    headerHeight,
		contentBottom: h - statusLineHeight,
	}
	if state == nil || !state.PreviewVisible {
		return m
	}
	if w < minListWidth+separatorWidth+minPreviewWidth {
		return m
	}

	list := int(float64(w)*listWidthRatio + 0.5)
	if list < minListWidth {
		list = minListWidth
	}
	if limit := int(float64(w) * maxListWidthRatio); list > limit {
		list = limit
	}
	m.listWidth = list
	m.separatorX = list
	m.previewStart = list + separatorWidth
	m.previewWidth = w - m.previewStart
	m.showPreview = m.previewWidth > 0
	return m
}

// PreviewArea returns the cells the embedded preview may draw into. The
// area is empty while the preview pane is hidden or does not fit.
func PreviewArea(w, h int, state *statepkg.AppState) Area {
	m := computeLayout(w, h, state)
	if !m.showPreview {
		return Area{}
	}
	top := m.contentTop + paneTitleHeight
	height := m.contentBottom - top
	if height < 0 {
		height = 0
	}
	return Area{X: m.previewStart, Y: top, Width: m.previewWidth, Height: height}
}
