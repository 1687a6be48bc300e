package compiler

import "github.com/shiwa/flocompile/internal/bufmap"

// State — изменяемое состояние одной компиляции.
// Передаётся по указателю через этапы конвейера; общих глобальных данных нет.
type State struct {
	// Initial — начальные значения буферов (пишутся seed-инструкциями)
	Initial [bufmap.NumBuffers]uint16
	// Buffers — последнее известное значение каждого буфера
	Buffers [bufmap.NumBuffers]uint16
	// Settle — тактов до того, как последняя запись в буфер станет видимой
	Settle [bufmap.NumBuffers]int64
	// LastTime — дедлайн последней выданной группы
	LastTime int64
}

// NewState создаёт состояние с начальными значениями буферов
func NewState(initial [bufmap.NumBuffers]uint16) *State {
	return &State{Initial: initial, Buffers: initial}
}
