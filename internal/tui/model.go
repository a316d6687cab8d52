package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/memory"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	tickInterval      = 500 * time.Millisecond
	sparklineSamples  = 60
	maxLogLines       = 200
	minPanelWidth     = 30
	leftColumnPercent = 55
	resultPanelLines  = 6
)

// ExecutionState holds the run-related fields of a dashboard session.
type ExecutionState struct {
	ctx         context.Context
	cancel      context.CancelFunc
	calculators []chudnovsky.Calculator
	generation  uint64
	done        bool
	exitCode    int
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	ExecutionState

	keymap KeyMap
	help   help.Model

	names   []string
	bars    []progressbar.Model
	values  []float64
	average float64
	eta     time.Duration

	memStats   *metrics.MemoryCollector
	cpu        *RingBuffer
	mem        *RingBuffer
	heapAlloc  uint64
	numGC      uint32
	goroutines int

	logs    []string
	results []orchestration.CalculationResult
	final   *FinalResultMsg
	failure *ErrorMsg
	showAll bool

	plan    chudnovsky.PrecisionPlan
	start   time.Time
	elapsed time.Duration

	width  int
	height int

	parentCtx context.Context
	config    config.AppConfig
	opts      chudnovsky.Options
	version   string
	ref       *programRef
	paused    bool
}

// NewModel returns a dashboard for running calculators with cfg and opts.
func NewModel(parentCtx context.Context, calculators []chudnovsky.Calculator, cfg config.AppConfig, opts chudnovsky.Options, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	plan, _ := chudnovsky.Plan(cfg.Digits)

	m := Model{
		ExecutionState: ExecutionState{
			ctx:         ctx,
			cancel:      cancel,
			calculators: calculators,
			exitCode:    apperrors.ExitSuccess,
		},
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		memStats:  metrics.NewMemoryCollector(),
		cpu:       NewRingBuffer(sparklineSamples),
		mem:       NewRingBuffer(sparklineSamples),
		plan:      plan,
		start:     time.Now(),
		parentCtx: parentCtx,
		config:    cfg,
		opts:      opts,
		version:   version,
		ref:       &programRef{},
		showAll:   cfg.ShowAll,
	}
	for _, c := range calculators {
		m.names = append(m.names, c.Name())
		m.bars = append(m.bars, progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithoutPercentage()))
	}
	m.values = make([]float64, len(calculators))
	m.addLog("π to %s digits: %d terms at %d bits", format.FormatNumberString(fmt.Sprint(cfg.Digits)), plan.IterationCount, plan.BitPrecision)
	m.addLog("workers: %d, variants: %s", chudnovsky.ResolveWorkers(opts.Workers, opts.MaxWorkers), strings.Join(m.names, ", "))
	return m
}

// Init starts the run, the sampling tick and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startCalculationCmd(m.ref, m.ctx, m.calculators, m.config, m.opts, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles every incoming message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case ProgressMsg:
		if !m.paused && msg.CalculatorIndex >= 0 && msg.CalculatorIndex < len(m.values) {
			m.values[msg.CalculatorIndex] = msg.Value
			m.average = msg.AverageProgress
			m.eta = msg.ETA
		}
		return m, nil

	case ProgressDoneMsg:
		for i := range m.values {
			m.values[i] = 1
		}
		m.average = 1
		m.eta = 0
		return m, nil

	case ComparisonResultsMsg:
		m.results = msg.Results
		for _, r := range msg.Results {
			if r.Err != nil {
				m.addLog("%s failed after %s: %v", r.Name, format.FormatExecutionDuration(r.Duration), r.Err)
				continue
			}
			m.addLog("%s finished in %s", r.Name, format.FormatExecutionDuration(r.Duration))
		}
		return m, nil

	case FinalResultMsg:
		m.final = &msg
		m.addLog("%s computed %d significant digits in %s", msg.Result.Name, len(msg.Result.Digits), format.FormatExecutionDuration(msg.Result.Duration))
		return m, nil

	case ErrorMsg:
		m.failure = &msg
		m.addLog("error: %v", msg.Err)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		m.elapsed = time.Since(m.start)
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(m.memStats), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.heapAlloc = msg.HeapAlloc
		m.numGC = msg.NumGC
		m.goroutines = msg.NumGoroutine
		return m, nil

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem.Push(msg.MemPercent)
		return m, nil

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.elapsed = time.Since(m.start)
		if msg.ExitCode == apperrors.ExitErrorMismatch {
			m.addLog("variants disagree")
		}
		m.addLog("done, exit code %d", msg.ExitCode)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.done = true
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Digits):
		m.showAll = !m.showAll
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.done, m.paused = false, false
		m.exitCode = apperrors.ExitSuccess
		m.values = make([]float64, len(m.calculators))
		m.average, m.eta = 0, 0
		m.results, m.final, m.failure = nil, nil, nil
		m.memStats = metrics.NewMemoryCollector()
		m.cpu.Reset()
		m.mem.Reset()
		m.start = time.Now()
		m.elapsed = 0
		m.addLog("restarted")
		return m, tea.Batch(
			tickCmd(),
			startCalculationCmd(m.ref, m.ctx, m.calculators, m.config, m.opts, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}
	return m, nil
}

func (m *Model) addLog(msgFormat string, args ...any) {
	line := fmt.Sprintf("%s  %s", time.Now().Format("15:04:05"), fmt.Sprintf(msgFormat, args...))
	m.logs = append(m.logs, line)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
}

func (m Model) leftWidth() int {
	return max(m.width*leftColumnPercent/100, minPanelWidth)
}

func (m Model) rightWidth() int {
	return max(m.width-m.leftWidth(), minPanelWidth)
}

func (m *Model) layout() {
	barWidth := max(m.leftWidth()-30, 10)
	for i := range m.bars {
		m.bars[i].Width = barWidth
	}
	m.help.Width = m.width
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	left := lipgloss.JoinVertical(lipgloss.Left, m.progressView(), m.resourcesView())
	right := m.logsView(lipgloss.Height(left))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.resultView(), m.help.View(m.keymap))
}

func (m Model) headerView() string {
	status := statusRunningStyle.Render("RUNNING")
	switch {
	case m.paused:
		status = statusPausedStyle.Render("PAUSED")
	case m.done && m.exitCode != apperrors.ExitSuccess:
		status = errorStyle.Render("FAILED")
	case m.done:
		status = statusDoneStyle.Render("DONE")
	}
	title := fmt.Sprintf("picalc %s  π to %s digits  %d terms at %d bits",
		m.version, format.FormatNumberString(fmt.Sprint(m.config.Digits)), m.plan.IterationCount, m.plan.BitPrecision)
	return headerStyle.Render(title) + "  " + status + "  " + dimStyle.Render(format.FormatExecutionDuration(m.elapsed.Round(time.Millisecond)))
}

func (m Model) progressView() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Progress") + "\n")
	for i, name := range m.names {
		fmt.Fprintf(&b, "%-9s %s %5.1f%%\n", variantStyle.Render(name), m.bars[i].ViewAs(m.values[i]), m.values[i]*100)
	}
	fmt.Fprintf(&b, "average %s  ETA %s", valueStyle.Render(fmt.Sprintf("%.1f%%", m.average*100)), format.FormatETA(m.eta))
	return panelStyle.Width(m.leftWidth() - 2).Render(b.String())
}

func (m Model) resourcesView() string {
	spark := max(m.leftWidth()-22, 10)
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Resources") + "\n")
	fmt.Fprintf(&b, "CPU %5.1f%% %s\n", m.cpu.Last(), cpuSparkStyle.Render(RenderSparkline(m.cpu.Slice(), spark)))
	fmt.Fprintf(&b, "MEM %5.1f%% %s\n", m.mem.Last(), memSparkStyle.Render(RenderSparkline(m.mem.Slice(), spark)))
	fmt.Fprintf(&b, "heap %s  GC %d  goroutines %d", memory.FormatBytes(m.heapAlloc), m.numGC, m.goroutines)
	return panelStyle.Width(m.leftWidth() - 2).Render(b.String())
}

func (m Model) logsView(height int) string {
	lines := max(height-3, 1)
	visible := m.logs
	if len(visible) > lines {
		visible = visible[len(visible)-lines:]
	}
	content := panelTitleStyle.Render("Log") + "\n" + dimStyle.Render(strings.Join(visible, "\n"))
	return panelStyle.Width(m.rightWidth() - 2).Height(height - 2).Render(content)
}

func (m Model) resultView() string {
	var body string
	switch {
	case m.failure != nil:
		body = errorStyle.Render(fmt.Sprintf("No variant completed: %v", m.failure.Err))
	case m.final != nil:
		r := m.final.Result
		rendered := format.RenderDigits(r.Digits, r.Exponent, m.config.LastDigits, m.showAll)
		if rendered.Full {
			body = "π = " + digitsStyle.Render(rendered.Text)
		} else {
			body = fmt.Sprintf("Last %d digits: %s", m.config.LastDigits, digitsStyle.Render(rendered.Text))
		}
	case m.done && m.exitCode == apperrors.ExitErrorMismatch:
		body = errorStyle.Render("The variants produced different digits.")
	default:
		body = dimStyle.Render("waiting for result...")
	}
	content := panelTitleStyle.Render("Result") + "\n" + body
	return panelStyle.Width(max(m.width-2, minPanelWidth)).MaxHeight(resultPanelLines + 2).Render(content)
}

// Run shows the dashboard until the user quits or the context ends, and
// returns the run's exit code.
func Run(ctx context.Context, calculators []chudnovsky.Calculator, cfg config.AppConfig, opts chudnovsky.Options, version string) int {
	initTUIStyles()

	model := NewModel(ctx, calculators, cfg, opts, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		if err != nil && m.exitCode == apperrors.ExitSuccess {
			return apperrors.ExitCodeFor(ctx.Err())
		}
		return m.exitCode
	}
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func startCalculationCmd(ref *programRef, ctx context.Context, calculators []chudnovsky.Calculator, cfg config.AppConfig, opts chudnovsky.Options, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := orchestration.ExecuteCalculations(ctx, calculators, cfg, opts, reporter, io.Discard)
		presOpts := orchestration.PresentationOptions{
			Digits:     cfg.Digits,
			LastDigits: cfg.LastDigits,
			ShowAll:    cfg.ShowAll,
			Verbose:    cfg.Verbose,
			Details:    cfg.Details,
		}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, io.Discard)
		return CalculationCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd(c *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		s := c.Snapshot()
		return MemStatsMsg{
			HeapAlloc:    s.HeapAlloc,
			NumGC:        s.NumGC,
			NumGoroutine: s.Goroutines,
		}
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}
