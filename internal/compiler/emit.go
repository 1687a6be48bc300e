package compiler

import (
	"github.com/shiwa/flocompile/internal/bufmap"
	"github.com/shiwa/flocompile/internal/instr"
)

// IssueOverhead — фиксированные такты декодирования/выдачи перед группой записей
const IssueOverhead = 3

// Seed возвращает 16 начальных записей: буфер k получает задержку 15-k,
// поэтому все значения становятся видимыми одновременно.
func Seed(initial [bufmap.NumBuffers]uint16) []instr.Instruction {
	out := make([]instr.Instruction, 0, bufmap.NumBuffers)
	for k, v := range initial {
		out = append(out, instr.BufferWrite(k, int64(bufmap.NumBuffers-1-k), v))
	}
	return out
}

// Emit выдаёт поток инструкций: seed-записи, затем для каждой группы
// ожидание (только при настоящем простое) и записи с задержками,
// плотно упакованные с учётом времени установления буферов.
// Поле, не помещающееся в машинное слово, — ошибка ErrRange.
func Emit(groups []Group, st *State) ([]instr.Instruction, int, error) {
	stream := Seed(st.Initial)
	waits := 0
	for gi := range groups {
		g := &groups[gi]
		n := int64(g.Writes())
		gap := g.Deadline - st.LastTime
		eff := gap
		if gap > n+IssueOverhead {
			wait := gap - n - IssueOverhead
			stream = append(stream, instr.Wait(wait))
			waits++
			eff = gap - wait
		}

		for b := range st.Settle {
			st.Settle[b] -= eff
			if st.Settle[b] < 0 {
				st.Settle[b] = 0
			}
		}

		var maxSettle int64
		for _, b := range g.Buffers {
			if st.Settle[b] > maxSettle {
				maxSettle = st.Settle[b]
			}
		}

		for m, b := range g.Buffers {
			var delay int64
			if settle := st.Settle[b]; settle <= int64(m) {
				// буфер свободен к моменту выдачи этой записи
				delay = (n - int64(m) - 1) + (eff - 1) + g.Offset
			} else {
				delay = (maxSettle - settle) + (eff - 1)
			}
			stream = append(stream, instr.BufferWrite(b, delay, g.Values[m]))
			st.Settle[b] = g.Offset
		}
		st.LastTime = g.Deadline
	}
	if err := instr.ValidateStream(stream); err != nil {
		return nil, waits, err
	}
	return stream, waits, nil
}
