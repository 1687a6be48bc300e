package compiler

import (
	"fmt"

	"github.com/shiwa/flocompile/internal/instr"
	"github.com/shiwa/flocompile/internal/timeline"
)

// Stats — сводка компиляции
type Stats struct {
	Events       int `json:"events"`
	Groups       int `json:"groups"`
	Shifted      int `json:"shifted"`
	Waits        int `json:"waits"`
	Instructions int `json:"instructions"`
}

// Result — результат компиляции: поток инструкций и предупреждения
type Result struct {
	Instructions []instr.Instruction
	Diagnostics  []Diagnostic
	Groups       []Group
	Stats        Stats
}

// Compile компилирует временную шкалу в поток инструкций.
// Любая ошибка прерывает компиляцию целиком; частичный результат не возвращается.
func Compile(tl *timeline.Timeline, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	events, gradEvents, err := Extract(tl, cfg)
	if err != nil {
		return nil, err
	}
	var diags []Diagnostic
	extra, gd, err := cfg.gradients().ScheduleGradients(gradEvents, cfg.Board)
	if err != nil {
		return nil, fmt.Errorf("gradients: %w", err)
	}
	diags = append(diags, gd...)
	events = append(events, extra...)
	nEvents := len(events)

	st := NewState(cfg.InitialBuffers)
	groups, cd, err := Coalesce(events, st)
	if err != nil {
		return nil, err
	}
	diags = append(diags, cd...)

	shifted, err := Compensate(groups)
	if err != nil {
		return nil, err
	}
	stream, waits, err := Emit(groups, st)
	if err != nil {
		return nil, err
	}
	return &Result{
		Instructions: stream,
		Diagnostics:  diags,
		Groups:       groups,
		Stats: Stats{
			Events:       nEvents,
			Groups:       len(groups),
			Shifted:      shifted,
			Waits:        waits,
			Instructions: len(stream),
		},
	}, nil
}
