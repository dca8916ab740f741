package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skylinehq/skyline/pkg/pipeline"
	"github.com/skylinehq/skyline/pkg/tree"
)

// =============================================================================
// solveModel - Interactive solve progress
// =============================================================================

// solveProgressMsg reports simulation progress from the solver goroutine.
type solveProgressMsg struct {
	done  int
	total int
}

// solveDoneMsg reports solver completion.
type solveDoneMsg struct {
	result *pipeline.Result
	err    error
}

// solveModel is the bubbletea model for the interactive solve view.
type solveModel struct {
	nodeCount int
	done      int
	total     int
	width     int
	result    *pipeline.Result
	err       error
	cancelled bool
	cancel    context.CancelFunc
}

func newSolveModel(nodeCount int, cancel context.CancelFunc) solveModel {
	return solveModel{
		nodeCount: nodeCount,
		width:     40,
		cancel:    cancel,
	}
}

func (m solveModel) Init() tea.Cmd {
	return nil
}

func (m solveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width - 20
		if m.width < 10 {
			m.width = 10
		}
		if m.width > 60 {
			m.width = 60
		}
	case solveProgressMsg:
		m.done = msg.done
		m.total = msg.total
	case solveDoneMsg:
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m solveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Solving layout"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d nodes  ·  q to cancel", m.nodeCount)))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(m.renderBar())
	if m.total > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d", m.done, m.total)))
	}
	b.WriteString("\n")

	return b.String()
}

// renderBar draws the iteration progress bar.
func (m solveModel) renderBar() string {
	filled := 0
	if m.total > 0 {
		filled = m.done * m.width / m.total
	}
	if filled > m.width {
		filled = m.width
	}
	return styleBarFilled.Render(strings.Repeat("█", filled)) +
		styleBarEmpty.Render(strings.Repeat("░", m.width-filled))
}

// =============================================================================
// Interactive solve driver
// =============================================================================

// runLayoutInteractive solves the layout while showing a live progress view.
// The solver runs on a background goroutine and streams iteration counts
// into the bubbletea program.
func (c *CLI) runLayoutInteractive(ctx context.Context, runner *pipeline.Runner, root *tree.Node, opts pipeline.Options) (*pipeline.Result, error) {
	solveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSolveModel(root.Count(), cancel))

	opts.Progress = func(done, total int) {
		p.Send(solveProgressMsg{done: done, total: total})
	}

	go func() {
		result, err := runner.ComputeLayoutWithCacheInfo(solveCtx, root, opts)
		p.Send(solveDoneMsg{result: result, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run progress view: %w", err)
	}

	m := finalModel.(solveModel)
	if m.cancelled {
		return nil, context.Canceled
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}
