package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/camlock/internal/storage"
)

const (
	viewSummary = iota
	viewProfile
	viewFriction
	viewSupport
	numViews
)

var viewNames = [numViews]string{"summary", "profile", "friction", "support"}

// Inspector is a read-only viewer for one archived run.
type Inspector struct {
	meta          storage.RunMetadata
	samples       []storage.Sample
	view          int
	width, height int
}

func NewInspector(meta *storage.RunMetadata, samples []storage.Sample) Inspector {
	return Inspector{meta: *meta, samples: samples, width: 80, height: 24}
}

func (m Inspector) Init() tea.Cmd { return nil }

func (m Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.view = (m.view + 1) % numViews
		case "shift+tab", "left", "h":
			m.view = (m.view + numViews - 1) % numViews
		case "1", "2", "3", "4":
			m.view = int(msg.String()[0] - '1')
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Inspector) View() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.meta.ID)) + "\n")

	tabs := make([]string, numViews)
	for i, name := range viewNames {
		style := InactiveTab
		if i == m.view {
			style = ActiveTab
		}
		tabs[i] = style.Render(name)
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	chartW, chartH := max(m.width-12, 20), max(m.height-12, 5)
	switch m.view {
	case viewSummary:
		s.WriteString(m.summary())
	case viewProfile:
		s.WriteString(PanelStyle.Render(ProfileCanvas(m.samples, chartH*2, chartH).String()))
	case viewFriction:
		if chart := FrictionChart(m.samples, chartW, chartH); chart != "" {
			s.WriteString(chart)
		} else {
			s.WriteString(Subtle.Render("no friction data for this run"))
		}
	case viewSupport:
		s.WriteString(SupportChart(m.samples, chartW, chartH))
	}

	s.WriteString("\n\n" + KeyHint.Render("tab/←/→ switch view • q quit"))
	return s.String()
}

func (m Inspector) summary() string {
	row := func(label, value string) string {
		return LabelStyle.Render(label) + ValueStyle.Render(value) + "\n"
	}
	var s strings.Builder
	s.WriteString(row("Created", m.meta.Timestamp.Format("2006-01-02 15:04:05")))
	s.WriteString(row("Law", m.meta.Law))
	s.WriteString(row("Angles", fmt.Sprintf("%.2f to %.2f deg", m.meta.StartAngle, m.meta.EndAngle)))
	s.WriteString(row("Radius", fmt.Sprintf("%.4f in", m.meta.Radius)))
	s.WriteString(row("Displacement", fmt.Sprintf("%.4f in", m.meta.Displacement)))
	s.WriteString(row("Grid", fmt.Sprintf("%d x %d", m.meta.Segments, m.meta.Samples)))
	s.WriteString(row("RMS error", fmt.Sprintf("%.3g in", m.meta.RMSError)))
	if f := m.meta.Friction; f != nil {
		s.WriteString(row("Mu", fmt.Sprintf("%.4f to %.4f", f.Min, f.Max)))
		s.WriteString(row("Degenerate", fmt.Sprintf("%d", f.Degenerate)))
	}
	for _, w := range m.meta.Warnings {
		s.WriteString(WarnStyle.Render("! "+w) + "\n")
	}
	return s.String()
}

// RunInspector blocks until the user quits the viewer.
func RunInspector(meta *storage.RunMetadata, samples []storage.Sample) error {
	p := tea.NewProgram(NewInspector(meta, samples), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
