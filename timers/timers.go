package timers

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Timer is the accumulated wall time of one named stage
type Timer struct {
	Name  string
	Calls int
	Total time.Duration
	start time.Time
	open  bool
}

func (t Timer) Mean() time.Duration {
	if t.Calls == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Calls)
}

/*
TimerCollection accumulates per stage durations. Stages are kept in the order
they were first started, so reports are stable from run to run. It satisfies
Godunov2D.StageObserver and may be shared by several flux evaluations.
*/
type TimerCollection struct {
	mu     sync.Mutex
	order  []string
	timers map[string]*Timer
	now    func() time.Time
}

func NewTimerCollection() *TimerCollection {
	return &TimerCollection{
		timers: make(map[string]*Timer),
		now:    time.Now,
	}
}

func (tc *TimerCollection) BeginStage(name string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	t, ok := tc.timers[name]
	if !ok {
		t = &Timer{Name: name}
		tc.timers[name] = t
		tc.order = append(tc.order, name)
	}
	t.start, t.open = tc.now(), true
}

// EndStage closes the stage, an EndStage without a BeginStage is ignored
func (tc *TimerCollection) EndStage(name string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	t, ok := tc.timers[name]
	if !ok || !t.open {
		return
	}
	t.Total += tc.now().Sub(t.start)
	t.Calls++
	t.open = false
}

// Timers returns a snapshot in first use order
func (tc *TimerCollection) Timers() (tt []Timer) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tt = make([]Timer, len(tc.order))
	for i, name := range tc.order {
		tt[i] = *tc.timers[name]
	}
	return
}

func (tc *TimerCollection) Get(name string) (t Timer, ok bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	var tp *Timer
	if tp, ok = tc.timers[name]; ok {
		t = *tp
	}
	return
}

func (tc *TimerCollection) Reset() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.order = nil
	tc.timers = make(map[string]*Timer)
}

// Report logs one debug line per stage
func (tc *TimerCollection) Report(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	for _, t := range tc.Timers() {
		logger.Debug("stage timing", "stage", t.Name, "calls", t.Calls,
			"total", t.Total, "mean", t.Mean())
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	nameStyle   = lipgloss.NewStyle().Width(28)
	cellStyle   = lipgloss.NewStyle().Width(14).Align(lipgloss.Right)
)

// Render formats the collection as a table for the terminal
func (tc *TimerCollection) Render() string {
	row := func(style lipgloss.Style, name string, cells ...string) string {
		parts := []string{style.Inherit(nameStyle).Render(name)}
		for _, c := range cells {
			parts = append(parts, style.Inherit(cellStyle).Render(c))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	rows := []string{row(headerStyle, "stage", "calls", "total", "mean")}
	for _, t := range tc.Timers() {
		rows = append(rows, row(lipgloss.NewStyle(), t.Name,
			fmt.Sprintf("%d", t.Calls), t.Total.Round(time.Microsecond).String(),
			t.Mean().Round(time.Microsecond).String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
