package compiler

import (
	"github.com/shiwa/flocompile/internal/bufmap"
	"github.com/shiwa/flocompile/internal/instr"
	"github.com/shiwa/flocompile/internal/timeline"
)

// change — значение колонки в строке теста
type change struct {
	col   bufmap.Column
	value uint32
}

// rowSpec — строка CSV: время и изменения относительно предыдущей строки
type rowSpec struct {
	time    int64
	changes []change
}

// buildTimeline собирает timeline из строк; первая строка — все нули
func buildTimeline(rows ...rowSpec) *timeline.Timeline {
	tl := &timeline.Timeline{Version: timeline.Version}
	var cur timeline.Sample
	for _, r := range rows {
		cur.Time = r.time
		for _, c := range r.changes {
			cur.Values[int(c.col)-1] = c.value
		}
		tl.Samples = append(tl.Samples, cur)
	}
	return tl
}

func testConfig() Config {
	return Config{Board: bufmap.BoardGPAFHDO}
}

func seeds() []instr.Instruction {
	return Seed([bufmap.NumBuffers]uint16{})
}
