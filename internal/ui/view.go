package ui

import (
	"fmt"
	"strings"

	"genesis-tui/internal/favorites"
	"genesis-tui/internal/render"
	"genesis-tui/internal/theme"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const bookName = "Genesis"

const helpMarkdown = `# Keys

## Reading

| Key | Action |
|-----|--------|
| n, → | next chapter |
| p, ← | previous chapter |
| j, k | move between verses |
| f, space | mark or unmark the verse as a favorite |
| enter | open the verse full screen |

## Elsewhere

| Key | Action |
|-----|--------|
| g | chapter picker |
| F | favorites list |
| t | next colour theme |
| esc | close the current screen |
| q | quit |

Favorites are saved after every change.
`

func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	var header, body string

	switch m.mode {
	case modeLoading:
		header = m.styles.Header.Render(bookName)
		body = m.styles.Help.Render("\n  Loading verse data...")
	case modeUnavailable:
		header = m.styles.Header.Render(bookName)
		body = "\n" + m.styles.Error.Render(fmt.Sprintf("  Could not load verse data: %v", m.err)) +
			"\n\n" + m.styles.Help.Render("  Check the data location and restart. Press q to quit.")
	case modeChapterSelect:
		header = m.styles.Header.Render("Select Chapter")
		body = formatPicker(m.session.TotalChapters(), m.pick, m.session.Current(), m.styles)
	case modeVerse:
		header = m.styles.Header.Render(m.styles.Title.Render(fmt.Sprintf("%s %s", bookName, m.modalRef)))
		body = m.verseModal()
	case modeFavorites:
		header = m.styles.Header.Render(fmt.Sprintf("Favorites (%d)", len(m.session.Favorites())))
		body = m.viewport.View()
	case modeHelp:
		header = m.styles.Header.Render("Help")
		body = m.helpText
	default:
		title := m.styles.Title.Render(fmt.Sprintf("%s %d", bookName, m.display.Chapter))
		position := m.styles.Help.Render(fmt.Sprintf("  %d/%d", m.session.Current(), m.session.TotalChapters()))
		header = m.styles.Header.Render(title + position)
		body = m.viewport.View()
	}

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.styles.Help.Render(m.status) + "\n" + footer
	}

	return fmt.Sprintf("%s\n%s\n%s", header, body, footer)
}

func (m Model) verseModal() string {
	text := m.session.Verse(m.modalRef)

	marker := ""
	if m.session.IsFavorite(m.modalRef.Chapter, m.modalRef.Verse) {
		marker = m.styles.Star.Render("★ ")
	}

	title := m.styles.Title.Render(fmt.Sprintf("%s%s %s", marker, bookName, m.modalRef))
	content := m.styles.VerseText.Width(m.textWidth()).Render(text)
	box := m.styles.Modal.Render(title + "\n\n" + content)

	return lipgloss.Place(m.width, max(m.height-5, 1), lipgloss.Center, lipgloss.Center, box)
}

// formatChapter renders dm and returns the first content row of every
// verse so the caller can scroll the cursor into view.
func formatChapter(dm render.DisplayModel, cursor int, styles theme.Styles, width int) (string, []int) {
	if dm.Empty {
		return "\n  " + styles.Empty.Render(dm.Message), nil
	}

	textStyle := styles.VerseText.Width(width)

	var sb strings.Builder
	offsets := make([]int, 0, len(dm.Verses))
	row := 0

	for i, line := range dm.Verses {
		offsets = append(offsets, row)

		star := "  "
		if line.Favorite {
			star = styles.Star.Render("★ ")
		}
		num := styles.VerseNumber.Render(fmt.Sprintf("%3d", line.Number))
		text := textStyle.Render(line.Text)

		block := lipgloss.JoinHorizontal(lipgloss.Top, star, num, "  ", text)
		if i == cursor {
			block = styles.Cursor.Render(block)
		}

		sb.WriteString(block)
		sb.WriteString("\n\n")
		row += lipgloss.Height(block) + 1
	}

	return sb.String(), offsets
}

// formatFavorites renders the favorites list and returns the row of the
// selected entry.
func formatFavorites(entries []favorites.Entry, cursor int, styles theme.Styles, width int) (string, int) {
	if len(entries) == 0 {
		return "\n  " + styles.Empty.Render("No favorites yet. Press f on a verse to add one."), 0
	}

	textStyle := styles.VerseText.Width(width)

	var sb strings.Builder
	row, selectedRow := 0, 0

	for i, e := range entries {
		ref := styles.Star.Render(fmt.Sprintf("★ %-7s", e.Ref))
		style := textStyle
		if !e.Found {
			style = styles.Empty.Width(width)
		}
		block := lipgloss.JoinHorizontal(lipgloss.Top, ref, " ", style.Render(e.Text))
		if i == cursor {
			block = styles.Cursor.Render(block)
			selectedRow = row
		}

		sb.WriteString(block)
		sb.WriteString("\n\n")
		row += lipgloss.Height(block) + 1
	}

	return sb.String(), selectedRow
}

// formatPicker renders one button per chapter in [1, total].
func formatPicker(total, pick, current int, styles theme.Styles) string {
	var rows []string
	var row []string

	for ch := 1; ch <= total; ch++ {
		label := fmt.Sprintf("%2d", ch)
		if ch == current {
			label = fmt.Sprintf("%2d•", ch)
		} else {
			label += " "
		}

		style := styles.Button
		if ch-1 == pick {
			style = styles.ButtonOn
		}
		row = append(row, style.Render(label))

		if len(row) == pickerColumns || ch == total {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, rows...)
}
