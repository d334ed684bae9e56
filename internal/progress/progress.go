// Package progress renders namespace builds as terminal progress bars.
package progress

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

var theme = progressbar.OptionSetTheme(progressbar.Theme{
	Saucer:        "=",
	SaucerHead:    ">",
	SaucerPadding: " ",
	BarStart:      "[",
	BarEnd:        "]",
})

// Bars shows one bar per namespace:
// [building core]  40% [=========>               ] (4/10)
type Bars struct {
	out    io.Writer
	bars   map[string]*progressbar.ProgressBar
	counts map[string]int
}

// New returns Bars that draw on out, or stderr when out is nil.
func New(out io.Writer) *Bars {
	if out == nil {
		out = os.Stderr
	}

	return &Bars{
		out:    out,
		bars:   make(map[string]*progressbar.ProgressBar),
		counts: make(map[string]int),
	}
}

// Start implements adapter.Progress.
func (b *Bars) Start(namespace string, total int) {
	b.bars[namespace] = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(50),
		theme,
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("building "+namespace),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(b.out, "\n")
		}),
	)
	b.counts[namespace] = 0
}

// Advance implements adapter.Progress.
func (b *Bars) Advance(namespace, schema string) {
	bar, ok := b.bars[namespace]
	if !ok {
		return
	}

	b.counts[namespace]++

	bar.Describe("building " + namespace + ": " + schema)

	if err := bar.Add(1); err != nil {
		logrus.Errorf("failed to increment progress bar, err: %s", err)
	}
}

// Count returns how many schema files of namespace were reported built.
func (b *Bars) Count(namespace string) int {
	return b.counts[namespace]
}
