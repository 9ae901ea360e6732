package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// requestEntry is one request file found by browse.
type requestEntry struct {
	Path string
	Kind string // empty when the file carries no kind
	Size int64
}

// browseCommand creates the browse command: an interactive picker over the
// request files in a directory that renders the selected one.
func (c *CLI) browseCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "Pick a request file interactively and render it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			entries, err := scanRequests(dir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No request files in %s", dir)
				return nil
			}

			final, err := tea.NewProgram(newBrowseModel(entries), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			sel := final.(browseModel).Selected
			if sel == nil {
				return nil
			}
			return c.runRender(cmd.Context(), sel.Path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s) for the selected chart")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// scanRequests lists the *.json files in dir that look like chart requests,
// skipping layout output written by earlier runs.
func scanRequests(dir string) ([]requestEntry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var entries []requestEntry
	for _, path := range matches {
		if strings.HasSuffix(path, ".layout.json") {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var head struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		}
		if json.Unmarshal(data, &head) != nil || head.Data == nil {
			continue
		}
		entries = append(entries, requestEntry{Path: path, Kind: head.Kind, Size: int64(len(data))})
	}
	return entries, nil
}

// =============================================================================
// browseModel - Interactive request selection
// =============================================================================

type browseModel struct {
	Entries  []requestEntry
	Cursor   int
	Offset   int
	Height   int
	Selected *requestEntry
}

func newBrowseModel(entries []requestEntry) browseModel {
	return browseModel{Entries: entries, Height: 15}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			e := m.Entries[m.Cursor]
			if e.Kind == "" {
				return m, nil
			}
			m.Selected = &e
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Chart"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		kind := e.Kind
		if kind == "" {
			kind = "—"
		}
		rows = append(rows, []string{cursor, filepath.Base(e.Path), kind, formatBytes(int(e.Size))})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Kind", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			style := lipgloss.NewStyle()
			if m.Entries[idx].Kind == "" {
				return style.Foreground(colorDim)
			}
			if idx == m.Cursor {
				return style.Foreground(colorGreen).Bold(true)
			}
			return style.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
