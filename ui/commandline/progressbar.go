// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
)

// ExtraMetricFn is any function that will give extra values to display along the progress bar.
// It is called at each time the progress bar is updated, and it should return a name and the current value when it is called.
type ExtraMetricFn func() (name, value string)

// ProgressbarStyle to use. Defaults to the ASCII version.
// Consider "progressbar.ThemeUnicode" for a prettier version.
// But it requires some of the graphical symbols to be supported.
var ProgressbarStyle = progressbar.ThemeASCII

// maxUpdateFrequency is the time between updates to the commandline display of stats.
const maxUpdateFrequency = time.Millisecond * 200

var (
	normalStyle       = lipgloss.NewStyle().Padding(0, 1)
	rightAlignedStyle = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
	tableBorderColor  = "#705090"
)

// ProgressBar displays the progress of a loop with a known number of steps, along with a table
// of statistics: steps done, median step duration and any extra metrics.
//
// Call Step after each step of the loop, and Done at the end.
type ProgressBar struct {
	numSteps, stepsDone int
	lastStep            time.Time
	durations           []time.Duration // Kept sorted.
	bar                 *progressbar.ProgressBar

	out           io.Writer
	termenv       *termenv.Output
	statsStyle    lipgloss.Style
	statsTable    *lgtable.Table
	isFirstOutput bool

	mu               sync.Mutex // Protects durations, read by the asynchronous updates.
	updates          chan progressBarUpdate
	asyncUpdatesDone sync.WaitGroup

	extraMetricFns []ExtraMetricFn
}

type progressBarUpdate struct {
	amount    int
	stepsDone int
}

// NewProgressBar creates a progress bar for numSteps steps, printed to os.Stdout.
func NewProgressBar(description string, numSteps int, extraMetrics ...ExtraMetricFn) *ProgressBar {
	return NewProgressBarWithWriter(os.Stdout, description, numSteps, extraMetrics...)
}

// NewProgressBarWithWriter creates a progress bar for numSteps steps, printed to out.
func NewProgressBarWithWriter(out io.Writer, description string, numSteps int, extraMetrics ...ExtraMetricFn) *ProgressBar {
	pBar := &ProgressBar{
		numSteps:       numSteps,
		lastStep:       time.Now(),
		out:            out,
		isFirstOutput:  true,
		termenv:        termenv.NewOutput(out),
		statsStyle:     lipgloss.NewStyle().PaddingLeft(8),
		extraMetricFns: extraMetrics,
		updates:        make(chan progressBarUpdate, 100), // Large buffer so the loop is not blocked.
	}
	pBar.bar = progressbar.NewOptions(numSteps,
		progressbar.OptionSetDescription(fmt.Sprintf("%8s [bold]", description)),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("steps"),
		progressbar.OptionSetTheme(ProgressbarStyle),
		progressbar.OptionSetWriter(out),
	)
	pBar.statsTable = lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(tableBorderColor))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return rightAlignedStyle
			}
			return normalStyle
		})
	pBar.asyncUpdatesDone.Add(1)
	go pBar.drawUpdates()
	return pBar
}

// drawUpdates asynchronously draws the updates, so a loop faster than the terminal is not slowed down.
func (pBar *ProgressBar) drawUpdates() {
	defer pBar.asyncUpdatesDone.Done()
	for update := range pBar.updates {
		// Exhaust the updates in the buffer:
		amount := update.amount
	exhaust:
		for {
			select {
			case newUpdate, ok := <-pBar.updates:
				if !ok {
					break exhaust
				}
				amount += newUpdate.amount
				update = newUpdate
			default:
				break exhaust
			}
		}

		pBar.mu.Lock()
		median := medianOfSorted(pBar.durations)
		pBar.mu.Unlock()
		pBar.statsTable.Data(lgtable.NewStringData())
		pBar.statsTable.Row("Steps", fmt.Sprintf("%s of %s",
			humanize.Comma(int64(update.stepsDone)), humanize.Comma(int64(pBar.numSteps))))
		pBar.statsTable.Row("Median step duration", FormatDuration(median))
		for _, extraMetric := range pBar.extraMetricFns {
			name, value := extraMetric()
			pBar.statsTable.Row(name, value)
		}

		// Clear the previous lines that will be overwritten.
		pBar.termenv.HideCursor()
		if !pBar.isFirstOutput {
			numLinesToBackup := 2 + 2 + 2 + len(pBar.extraMetricFns)
			pBar.termenv.CursorPrevLine(numLinesToBackup)
		}
		pBar.isFirstOutput = false

		_, _ = fmt.Fprintln(pBar.out, pBar.statsStyle.Render(pBar.statsTable.String()))
		_ = pBar.bar.Add(amount) // Prints progress bar line.
		_, _ = fmt.Fprintln(pBar.out)
		pBar.termenv.ShowCursor()
		time.Sleep(maxUpdateFrequency)
	}
}

// Step marks the end of one step of the loop.
func (pBar *ProgressBar) Step() {
	now := time.Now()
	pBar.addDuration(now.Sub(pBar.lastStep))
	pBar.lastStep = now
	pBar.stepsDone++
	pBar.updates <- progressBarUpdate{amount: 1, stepsDone: pBar.stepsDone}
}

// addDuration inserts d in the sorted list of step durations.
func (pBar *ProgressBar) addDuration(d time.Duration) {
	pBar.mu.Lock()
	defer pBar.mu.Unlock()
	idx, _ := slices.BinarySearch(pBar.durations, d)
	pBar.durations = slices.Insert(pBar.durations, idx, d)
}

// MedianStepDuration returns the median duration of the steps so far.
func (pBar *ProgressBar) MedianStepDuration() time.Duration {
	pBar.mu.Lock()
	defer pBar.mu.Unlock()
	return medianOfSorted(pBar.durations)
}

// Done waits for the pending updates to be displayed and finishes the progress bar.
// The ProgressBar can't be used afterward.
func (pBar *ProgressBar) Done() {
	close(pBar.updates)
	pBar.asyncUpdatesDone.Wait()
	pBar.termenv.ShowCursor()
	_, _ = fmt.Fprintln(pBar.out)
}
