package helpers

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

const progressTemplate = `{{string . "prefix"}}{{counters . }} {{bar . }} {{percent . }} {{etime . }}`

// Progress counts finished uploads. A nil *Progress is valid and does nothing,
// which is what NewProgress returns when output is disabled.
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress starts a bar over total items written to w. It returns nil
// unless enabled is set and there is more than one item.
func NewProgress(w io.Writer, total int, enabled bool) *Progress {
	if !enabled || total < 2 {
		return nil
	}
	bar := pb.New(total)
	bar.SetTemplateString(progressTemplate)
	bar.SetWriter(w)
	bar.Set("prefix", "Uploading ")
	bar.Start()
	return &Progress{bar: bar}
}

// Increment marks one more item as done.
func (p *Progress) Increment() {
	if p == nil {
		return
	}
	p.bar.Increment()
}

// Current returns the number of finished items.
func (p *Progress) Current() int64 {
	if p == nil {
		return 0
	}
	return p.bar.Current()
}

// Finish stops the bar and prints its final state.
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	p.bar.Finish()
}
