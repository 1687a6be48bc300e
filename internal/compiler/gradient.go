package compiler

import "github.com/shiwa/flocompile/internal/bufmap"

// GradientScheduler планирует изменения буферов градиентов (1 и 2).
// Возвращённые события добавляются к основному потоку перед группировкой.
//
// Упаковка одновременных изменений каналов в широковещательные записи и
// интервал между словами последовательного интерфейса платы пока не реализованы;
// стандартный планировщик — DeferGradients.
type GradientScheduler interface {
	ScheduleGradients(events []ChangeEvent, board bufmap.Board) ([]ChangeEvent, []Diagnostic, error)
}

// DeferGradients не планирует изменения градиентов и сообщает их число
type DeferGradients struct{}

// ScheduleGradients возвращает пустой список и диагностику GradientDeferred
func (DeferGradients) ScheduleGradients(events []ChangeEvent, _ bufmap.Board) ([]ChangeEvent, []Diagnostic, error) {
	if len(events) == 0 {
		return nil, nil, nil
	}
	return nil, []Diagnostic{{Kind: GradientDeferred, Count: len(events)}}, nil
}

// IsGradientBuffer возвращает true для буферов слова градиента
func IsGradientBuffer(buf int) bool {
	return buf == bufmap.GradLowBuffer || buf == bufmap.GradHighBuffer
}
