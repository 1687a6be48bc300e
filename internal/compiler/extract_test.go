package compiler

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shiwa/flocompile/internal/bufmap"
	"github.com/shiwa/flocompile/internal/timeline"
)

func TestExtract(t *testing.T) {
	cfg := testConfig()
	cfg.Latencies[15] = 3
	cfg.Latencies[1] = 150
	cfg.Latencies[2] = 150
	tl := buildTimeline(
		rowSpec{time: 0},
		rowSpec{time: 500, changes: []change{{bufmap.Tx0Q, 7}, {bufmap.FhdoVx, 1}, {bufmap.Leds, 0xf}}},
		rowSpec{time: 600},
	)
	events, grad, err := Extract(tl, cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := []ChangeEvent{
		{Deadline: 500, Buffer: 6, Value: 7, Mask: 0xffff},
		{Deadline: 497, Buffer: 15, Value: 0x0f00, Mask: 0xff00},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events %+v", events)
	}
	if len(grad) != 2 || grad[0].Buffer != 1 || grad[1].Buffer != 2 || grad[0].Deadline != 350 {
		t.Errorf("gradient events %+v", grad)
	}
}

func TestExtract_QuickStart(t *testing.T) {
	cfg := testConfig()
	cfg.QuickStart = true
	tl := buildTimeline(
		rowSpec{time: 0},
		rowSpec{time: 9000, changes: []change{{bufmap.Tx0I, 1}}},
		rowSpec{time: 9050, changes: []change{{bufmap.Tx0I, 2}}},
	)
	events, _, err := Extract(tl, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].Deadline != 10 || events[1].Deadline != 60 {
		t.Errorf("events %+v", events)
	}
	if tl.Samples[1].Time != 9000 {
		t.Error("samples must stay immutable")
	}
}

func TestExtract_Errors(t *testing.T) {
	t.Run("version", func(t *testing.T) {
		_, _, err := Extract(&timeline.Timeline{Version: "x"}, testConfig())
		if !errors.Is(err, ErrFormat) {
			t.Errorf("got %v", err)
		}
	})
	t.Run("board mismatch", func(t *testing.T) {
		cfg := testConfig()
		cfg.Board = bufmap.BoardOCRA1
		tl := buildTimeline(rowSpec{time: 0}, rowSpec{time: 10, changes: []change{{bufmap.FhdoVz2, 1}}})
		_, _, err := Extract(tl, cfg)
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("got %v", err)
		}
	})
}
