package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yanmxa/lumina/internal/compare"
	"github.com/yanmxa/lumina/internal/image"
	"github.com/yanmxa/lumina/internal/message"
)

const halfBlock = "▀"

// previewKey identifies a rasterised payload. Snapshots share image bytes,
// so the address of the first byte is stable for one image.
type previewKey struct {
	data       *byte
	size       int
	cols, rows int
}

type previewEntry struct {
	key  previewKey
	grid image.Grid
	err  error
}

// previewCache keeps the last rasterisation per slot.
type previewCache struct {
	original  previewEntry
	generated previewEntry
}

func keyFor(img *message.Image, cols, rows int) previewKey {
	if img == nil || img.Empty() {
		return previewKey{cols: cols, rows: rows}
	}
	return previewKey{data: &img.Data[0], size: len(img.Data), cols: cols, rows: rows}
}

func (e *previewEntry) get(img *message.Image, cols, rows int) (image.Grid, error) {
	key := keyFor(img, cols, rows)
	if key == e.key && (e.grid != nil || e.err != nil) {
		return e.grid, e.err
	}
	if key.data == nil {
		return nil, fmt.Errorf("no image")
	}
	e.key = key
	e.grid, e.err = image.Rasterize(*img, cols, rows)
	return e.grid, e.err
}

// renderImagePane draws the label line and the image rows: the compare
// view when both images exist, otherwise the plain original.
func (m *model) renderImagePane() string {
	cols, rows := m.width, m.imageRows
	if cols <= 0 || rows <= 0 || !m.state.HasImage() {
		return ""
	}

	before, err := m.previews.original.get(m.state.OriginalImage, cols, rows)
	if err != nil {
		return m.paneMessage(rows, errorStyle.Render("Cannot preview image: "+err.Error()))
	}

	var lines []string
	if m.state.CanCompare() {
		after, err := m.previews.generated.get(m.state.GeneratedImage, cols, rows)
		if err != nil {
			return m.paneMessage(rows, errorStyle.Render("Cannot preview redesign: "+err.Error()))
		}
		pos := m.slider.Position()
		clipped, err := compare.Clip([][]image.Cell(after), [][]image.Cell(before), pos)
		if err != nil {
			return m.paneMessage(rows, errorStyle.Render(err.Error()))
		}
		lines = append(lines, m.renderCompareLabels(cols))
		lines = append(lines, renderCells(clipped, compare.Divider(cols, pos))...)
	} else {
		label := compareLabelStyle.Render(beforeLabel)
		lines = append(lines, lipgloss.PlaceHorizontal(cols, lipgloss.Right, label))
		lines = append(lines, renderCells(before, -1)...)
	}

	if m.state.IsLoading {
		mid := 1 + rows/2
		text := overlayStyle.Render(m.spinner.View() + " " + loadingText)
		lines[mid] = lipgloss.PlaceHorizontal(cols, lipgloss.Center, text)
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderCompareLabels(cols int) string {
	left := compareLabelStyle.Render(afterLabel)
	right := compareLabelStyle.Render(beforeLabel)
	pos := hintStyle.Render(fmt.Sprintf(" %.0f%% ", m.slider.Position()))

	gap := cols - lipgloss.Width(left) - lipgloss.Width(right) - lipgloss.Width(pos)
	if gap < 2 {
		return runewidth.Truncate(afterLabel+" | "+beforeLabel, cols, "…")
	}
	l := gap / 2
	return left + strings.Repeat(" ", l) + pos + strings.Repeat(" ", gap-l) + right
}

func (m *model) paneMessage(rows int, text string) string {
	lines := make([]string, rows+1)
	lines[1+rows/2] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, text)
	return strings.Join(lines, "\n")
}

// renderCells draws a grid with half blocks. divider is the column of the
// reveal edge, or -1 for none.
func renderCells(grid [][]image.Cell, divider int) []string {
	dividerStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Accent)

	lines := make([]string, len(grid))
	for y, row := range grid {
		var sb strings.Builder
		for x, c := range row {
			if x == divider {
				sb.WriteString(dividerStyle.Background(hexColor(c.Bottom)).Render("┃"))
				continue
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(c.Top)).
				Background(hexColor(c.Bottom)).
				Render(halfBlock))
		}
		lines[y] = sb.String()
	}
	return lines
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// inImagePane reports whether terminal row y falls inside the image pane.
func (m *model) inImagePane(y int) bool {
	return m.imageRows > 0 && y >= m.paneTop && y <= m.paneTop+m.imageRows
}
