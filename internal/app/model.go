package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nguyentantai21042004/caption-remix/internal/logger"
	"github.com/nguyentantai21042004/caption-remix/internal/pipeline"
	"github.com/nguyentantai21042004/caption-remix/internal/ui"
	"github.com/nguyentantai21042004/caption-remix/internal/watcher"
)

const (
	eventBuffer = 256
	maxLogLines = 500
)

// StartFunc runs one pipeline pass and reports through sink. It is called on
// the worker goroutine.
type StartFunc func(ctx context.Context, videoDir, outputDir string, sink pipeline.Sink) pipeline.Outcome

// Options configures the model.
type Options struct {
	VideoDir  string
	OutputDir string
	Extension string
	Start     StartFunc
	Logger    logger.Logger
	// Watch keeps the video count current with an fsnotify watcher.
	Watch bool
}

type pickTarget int

const (
	pickNone pickTarget = iota
	pickVideo
	pickOutput
)

// Model is the root bubbletea model for the caption extractor TUI.
type Model struct {
	opts Options

	// Selection
	videoDir   string
	outputDir  string
	videoCount int

	// Picker
	picking   pickTarget
	form      *huh.Form
	pickValue *string

	// Run state, owned by Update only
	running  bool
	events   <-chan pipeline.Event
	cancel   context.CancelFunc
	progress pipeline.Progress
	outcome  *pipeline.Outcome

	// Watcher
	watchCancel context.CancelFunc
	watchCh     <-chan watcher.Event

	// Log
	logs []string

	width  int
	height int
}

// New creates a Model. Preselected folders in opts are applied as if picked.
func New(opts Options) Model {
	if opts.Extension == "" {
		opts.Extension = ".mp4"
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	m := Model{
		opts:      opts,
		videoDir:  opts.VideoDir,
		outputDir: opts.OutputDir,
	}
	if m.videoDir != "" {
		m.videoCount = pipeline.CountVideos(m.videoDir, opts.Extension)
	}
	return m
}

// Init starts watching a preselected video folder.
func (m Model) Init() tea.Cmd {
	if m.opts.Watch && m.videoDir != "" {
		return watchCmd(context.Background(), m.videoDir, m.opts.Extension, m.opts.Logger)
	}
	return nil
}

// Running reports whether a run is in flight.
func (m Model) Running() bool { return m.running }

// RunEnabled reports whether the run key is active.
func (m Model) RunEnabled() bool {
	return !m.running && m.videoDir != "" && m.outputDir != "" && m.videoCount > 0
}

// PickersEnabled reports whether the folder picker keys are active.
func (m Model) PickersEnabled() bool { return !m.running }

// Logs returns the log pane contents.
func (m Model) Logs() []string { return m.logs }

// Outcome returns the result of the last finished run, if any.
func (m Model) Outcome() *pipeline.Outcome { return m.outcome }

// runCmd is the worker. It runs the pipeline and closes events when done,
// whatever happens inside start.
func runCmd(ctx context.Context, start StartFunc, videoDir, outputDir string, ch chan<- pipeline.Event, log logger.Logger) tea.Cmd {
	return func() tea.Msg {
		defer close(ch)
		defer func() {
			// A panic ends the run; the closed channel tells the UI.
			if r := recover(); r != nil {
				log.Error(ctx, "Run worker panicked: %v", r)
			}
		}()

		sink := func(ev pipeline.Event) {
			select {
			case ch <- ev:
			case <-ctx.Done():
			}
		}
		start(ctx, videoDir, outputDir, sink)
		return nil
	}
}

// waitForEvent reads the next event from the worker.
func waitForEvent(ch <-chan pipeline.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return PipelineClosedMsg{}
		}
		return PipelineEventMsg{Event: ev}
	}
}

type watchStartedMsg struct {
	dir    string
	ch     <-chan watcher.Event
	cancel context.CancelFunc
}

type watchClosedMsg struct{ dir string }

// watchCmd starts an fsnotify watcher on dir and hands back its channel.
func watchCmd(parent context.Context, dir, ext string, log logger.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch := make(chan watcher.Event, 16)

		w, err := watcher.New(dir, ext, func(ctx context.Context, ev watcher.Event) error {
			select {
			case ch <- ev:
			case <-ctx.Done():
			}
			return nil
		}, log)
		if err != nil {
			cancel()
			return WatchErrorMsg{Dir: dir, Err: err}
		}

		go func() {
			defer close(ch)
			defer w.Stop()
			w.Start(ctx)
		}()
		return watchStartedMsg{dir: dir, ch: ch, cancel: cancel}
	}
}

func waitForWatch(dir string, ch <-chan watcher.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return watchClosedMsg{dir: dir}
		}
		return WatchEventMsg{Dir: dir, Event: ev}
	}
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.picking != pickNone && !isAppMsg(msg) {
		if key, ok := msg.(tea.KeyMsg); !ok || key.String() != KeyCtrlC {
			return m.updatePicker(msg)
		}
	}

	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case PipelineEventMsg:
		m.handleEvent(msg.Event)
		if m.running {
			return m, waitForEvent(m.events)
		}
		return m, nil

	case PipelineClosedMsg:
		if m.running {
			err := fmt.Errorf("run ended without a result")
			m.appendLog("Error: " + err.Error())
			m.finishRun(pipeline.Outcome{State: pipeline.StateFailed, Err: err})
		}
		return m, nil

	case watchStartedMsg:
		if msg.dir != m.videoDir {
			msg.cancel()
			return m, nil
		}
		if m.watchCancel != nil {
			m.watchCancel()
		}
		m.watchCancel = msg.cancel
		m.watchCh = msg.ch
		return m, waitForWatch(msg.dir, msg.ch)

	case WatchEventMsg:
		if msg.Dir != m.videoDir || m.watchCh == nil {
			return m, nil
		}
		m.videoCount = pipeline.CountVideos(m.videoDir, m.opts.Extension)
		return m, waitForWatch(m.videoDir, m.watchCh)

	case watchClosedMsg:
		return m, nil

	case WatchErrorMsg:
		m.opts.Logger.Warn(context.Background(), "Watch %s: %v", msg.Dir, msg.Err)
		return m, nil
	}

	return m, nil
}

// isAppMsg reports messages the model handles even while a picker is open.
func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case PipelineEventMsg, PipelineClosedMsg, watchStartedMsg, WatchEventMsg, watchClosedMsg, WatchErrorMsg:
		return true
	}
	return false
}

// handleEvent applies one worker event to the view state.
func (m *Model) handleEvent(ev pipeline.Event) {
	switch ev := ev.(type) {
	case pipeline.LogLine:
		m.appendLog(ev.Text)
	case pipeline.Progress:
		m.progress = ev
	case pipeline.RunFinished:
		m.finishRun(ev.Outcome)
	}
}

// finishRun re-enables the controls. Every path out of a run ends here.
func (m *Model) finishRun(out pipeline.Outcome) {
	m.running = false
	m.outcome = &out
	m.events = nil
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.videoDir != "" {
		m.videoCount = pipeline.CountVideos(m.videoDir, m.opts.Extension)
	}
}

func (m *Model) appendLog(line string) {
	m.logs = append(m.logs, line)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		if m.cancel != nil {
			m.cancel()
		}
		if m.watchCancel != nil {
			m.watchCancel()
		}
		return m, tea.Quit

	case KeyPickVideo, KeyVideoUpper:
		if !m.PickersEnabled() {
			return m, nil
		}
		return m.openPicker(pickVideo)

	case KeyPickOutput, KeyOutputUpper:
		if !m.PickersEnabled() {
			return m, nil
		}
		return m.openPicker(pickOutput)

	case KeyRun, KeyRunUpper:
		if !m.RunEnabled() {
			return m, nil
		}
		return m.startRun()
	}

	return m, nil
}

func (m Model) startRun() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan pipeline.Event, eventBuffer)

	m.running = true
	m.outcome = nil
	m.progress = pipeline.Progress{}
	m.cancel = cancel
	m.events = ch
	m.logs = nil
	m.appendLog(fmt.Sprintf("Starting run on %s", m.videoDir))

	return m, tea.Batch(
		runCmd(ctx, m.opts.Start, m.videoDir, m.outputDir, ch, m.opts.Logger),
		waitForEvent(ch),
	)
}

func (m Model) openPicker(target pickTarget) (tea.Model, tea.Cmd) {
	start := m.videoDir
	title := "Select the video folder"
	if target == pickOutput {
		start = m.outputDir
		title = "Select the output folder"
	}
	if start == "" {
		start, _ = os.Getwd()
	}

	m.pickValue = new(string)
	m.picking = target
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewFilePicker().
			Title(title).
			Description("Enter to open a folder, esc to cancel").
			CurrentDirectory(start).
			ShowHidden(false).
			DirAllowed(true).
			FileAllowed(false).
			Height(15).
			Value(m.pickValue),
	)).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(true)

	return m, m.form.Init()
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == KeyEsc {
		m.closePicker()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		target, value := m.picking, *m.pickValue
		m.closePicker()
		return m.applyPick(target, value)
	case huh.StateAborted:
		m.closePicker()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closePicker() {
	m.picking = pickNone
	m.form = nil
	m.pickValue = nil
}

// applyPick stores a chosen folder.
func (m Model) applyPick(target pickTarget, dir string) (tea.Model, tea.Cmd) {
	if dir == "" {
		return m, nil
	}
	dir = filepath.Clean(dir)

	switch target {
	case pickVideo:
		m.videoDir = dir
		m.videoCount = pipeline.CountVideos(dir, m.opts.Extension)
		m.appendLog(fmt.Sprintf("Video folder: %s (%d videos)", dir, m.videoCount))
		if m.opts.Watch {
			if m.watchCancel != nil {
				m.watchCancel()
				m.watchCancel = nil
				m.watchCh = nil
			}
			return m, watchCmd(context.Background(), dir, m.opts.Extension, m.opts.Logger)
		}
	case pickOutput:
		m.outputDir = dir
		m.appendLog(fmt.Sprintf("Output folder: %s", dir))
	}
	return m, nil
}

// View renders the full TUI.
func (m Model) View() string {
	if m.picking != pickNone && m.form != nil {
		return m.form.View()
	}

	width := m.width
	if width == 0 {
		width = 80
	}
	divider := ui.DividerStyle.Render(strings.Repeat("─", width))

	sections := []string{
		ui.TitleStyle.Render("CAPTION EXTRACTOR"),
		m.renderFolders(),
		m.renderStatus(),
		divider,
		m.renderLogs(),
		divider,
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderFolders() string {
	video := ui.DimStyle.Render("not selected")
	if m.videoDir != "" {
		video = ui.PathStyle.Render(m.videoDir) + ui.DimStyle.Render(fmt.Sprintf(" (%d videos)", m.videoCount))
	}
	output := ui.DimStyle.Render("not selected")
	if m.outputDir != "" {
		output = ui.PathStyle.Render(m.outputDir)
	}
	return ui.LabelStyle.Render("Video folder:  ") + video + "\n" +
		ui.LabelStyle.Render("Output folder: ") + output
}

func (m Model) renderStatus() string {
	switch {
	case m.running:
		status := ui.RunningStyle.Render("● RUNNING")
		if m.progress.Total > 0 {
			status += "  " + m.progress.Label + " " + renderBar(m.progress.Current, m.progress.Total) +
				fmt.Sprintf(" %d/%d", m.progress.Current, m.progress.Total)
		}
		return status
	case m.outcome != nil && m.outcome.State == pipeline.StateDone:
		return ui.DoneStyle.Render("✓ DONE") + ui.DimStyle.Render(fmt.Sprintf("  %d captions, %d failed, %d skipped",
			len(m.outcome.Records), m.outcome.FailedItems(), len(m.outcome.Extraction.Skipped)))
	case m.outcome != nil:
		return ui.ErrorStyle.Render("✗ FAILED")
	default:
		return ui.DimStyle.Render("○ IDLE")
	}
}

func renderBar(current, total int) string {
	const barLen = 20
	filled := current * barLen / total
	return ui.BarFilledStyle.Render(strings.Repeat("█", filled)) +
		ui.BarEmptyStyle.Render(strings.Repeat("░", barLen-filled))
}

func (m Model) renderLogs() string {
	visible := 15
	if m.height > 0 {
		visible = max(5, m.height-9)
	}
	lines := m.logs
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "Error"), strings.Contains(l, "ERROR ("):
			out = append(out, ui.ErrorTextStyle.Render(l))
		case strings.Contains(l, "FAILED"):
			out = append(out, ui.WarnTextStyle.Render(l))
		default:
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func (m Model) renderFooter() string {
	key := func(k, desc string, enabled bool) string {
		if !enabled {
			return ui.DisabledKeyStyle.Render(k + " " + desc)
		}
		return ui.FooterKeyStyle.Render(k) + " " + ui.FooterDescStyle.Render(desc)
	}
	return strings.Join([]string{
		key("v", "video folder", m.PickersEnabled()),
		key("o", "output folder", m.PickersEnabled()),
		key("r", "run", m.RunEnabled()),
		key("q", "quit", true),
	}, "  ")
}
