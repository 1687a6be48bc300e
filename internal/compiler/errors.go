package compiler

import (
	"errors"
	"fmt"

	"github.com/shiwa/flocompile/internal/bufmap"
	"github.com/shiwa/flocompile/internal/instr"
	"github.com/shiwa/flocompile/internal/timeline"
)

// Категории ошибок компиляции; проверяются через errors.Is
var (
	ErrFormat           = timeline.ErrFormat
	ErrConfiguration    = bufmap.ErrConfiguration
	ErrConflict         = errors.New("conflict error")
	ErrScheduleOverflow = errors.New("schedule overflow")
	ErrRange            = instr.ErrRange
)

// ConflictError — два несовместимых значения одного буфера в один момент времени
type ConflictError struct {
	Deadline int64
	Buffer   int
	Value    uint16
	Mask     uint16
	Assigned uint16 // биты, уже назначенные в этой группе
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("buffer %d assigned two incompatible values at the same time %d (value 0x%04x mask 0x%04x, already assigned 0x%04x)",
		e.Buffer, e.Deadline, e.Value, e.Mask, e.Assigned)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ScheduleOverflowError — группе не хватает тактов даже после полного сдвига назад
type ScheduleOverflowError struct {
	Deadline  int64
	Writes    int
	Available int64
}

func (e *ScheduleOverflowError) Error() string {
	return fmt.Sprintf("schedule overflow: %d writes due at %d, only %d cycles available", e.Writes, e.Deadline, e.Available)
}

func (e *ScheduleOverflowError) Unwrap() error { return ErrScheduleOverflow }
