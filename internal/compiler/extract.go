package compiler

import (
	"fmt"

	"github.com/shiwa/flocompile/internal/bufmap"
	"github.com/shiwa/flocompile/internal/timeline"
)

// ChangeEvent — буфер должен показывать Value в битах Mask к моменту Deadline
type ChangeEvent struct {
	Deadline int64
	Buffer   int
	Value    uint16
	Mask     uint16
}

// Extract сравнивает соседние строки и возвращает события изменений буферов:
// основные и отдельно — для буферов градиента. Порядок — порядок обнаружения.
func Extract(tl *timeline.Timeline, cfg Config) (events, gradEvents []ChangeEvent, err error) {
	if tl.Version != timeline.Version {
		return nil, nil, &timeline.FormatError{Msg: fmt.Sprintf("wrong CSV version tag %q, want %q", tl.Version, timeline.Version)}
	}
	samples := tl.Samples
	if cfg.QuickStart {
		samples = timeline.QuickStart(samples)
	}
	for k := 1; k < len(samples); k++ {
		prev, next := &samples[k-1], &samples[k]
		for i := range next.Values {
			if prev.Values[i] == next.Values[i] {
				continue
			}
			col := bufmap.Column(i + 1)
			writes, err := bufmap.Map(col, next.Values[i], cfg.Board)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d (time %d): %w", k, next.Time, err)
			}
			for _, w := range writes {
				ev := ChangeEvent{
					Deadline: next.Time - cfg.Latencies[w.Buffer],
					Buffer:   w.Buffer,
					Value:    w.Value,
					Mask:     w.Mask,
				}
				if IsGradientBuffer(w.Buffer) {
					gradEvents = append(gradEvents, ev)
				} else {
					events = append(events, ev)
				}
			}
		}
	}
	return events, gradEvents, nil
}
