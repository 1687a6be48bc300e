// Package replay — модель буферов секвенсора для проверки потока инструкций.
//
// Модель: запись буфера занимает один такт выдачи и становится видимой через
// Delay + задержка буфера тактов после выдачи; ожидание занимает
// Delay + WaitOverhead тактов.
//
// Задержки записей группы отсчитываются от последней записи группы: группа из
// n записей видна через eff-1 (+ смещение) тактов после выдачи последней записи,
// где eff = gap - wait. Если перед группой стоит ожидание, eff = n + 3, поэтому
// время видимости зависит от числа записей: группа с номинальным временем T
// становится видимой на такте T + n + NumBuffers + 1 (плюс задержка буфера).
// Одна запись на t=100 видна на такте 118, две — на 119, три — на 120.
// Для группы без ожидания eff = gap, и её время видимости зависит ещё и от
// числа записей предыдущих групп.
package replay

import (
	"sort"

	"github.com/shiwa/flocompile/internal/bufmap"
	"github.com/shiwa/flocompile/internal/instr"
)

// WaitOverhead — такты декодирования инструкции ожидания сверх её Delay
const WaitOverhead = 3

// Transition — момент, когда буфер начинает показывать Value
type Transition struct {
	Time  int64
	Value uint16
}

// Landing — запись буфера и такт, на котором она стала видимой
type Landing struct {
	Buffer int
	Time   int64
	Value  uint16
}

// Trace — восстановленные переходы каждого буфера
type Trace struct {
	Buffers [bufmap.NumBuffers][]Transition
	// Writes — все записи в порядке выдачи
	Writes []Landing
	// End — такт, на котором выдана последняя инструкция
	End int64
}

// Run проигрывает поток и возвращает переходы буферов по времени видимости
func Run(stream []instr.Instruction, latencies [bufmap.NumBuffers]int64) *Trace {
	tr := &Trace{}
	var clock int64
	for _, in := range stream {
		switch in.Kind {
		case instr.KindBufferWrite:
			t := clock + in.Delay + latencies[in.Buffer]
			tr.Buffers[in.Buffer] = append(tr.Buffers[in.Buffer], Transition{Time: t, Value: in.Value})
			tr.Writes = append(tr.Writes, Landing{Buffer: in.Buffer, Time: t, Value: in.Value})
			clock++
		case instr.KindWait:
			clock += in.Delay + WaitOverhead
		}
	}
	tr.End = clock
	for b := range tr.Buffers {
		ts := tr.Buffers[b]
		sort.SliceStable(ts, func(i, j int) bool { return ts[i].Time < ts[j].Time })
	}
	return tr
}

// Final возвращает итоговое значение буфера (0, если записей не было)
func (tr *Trace) Final(buf int) uint16 {
	ts := tr.Buffers[buf]
	if len(ts) == 0 {
		return 0
	}
	return ts[len(ts)-1].Value
}

// Values возвращает последовательность значений буфера без повторов подряд
func (tr *Trace) Values(buf int) []uint16 {
	var out []uint16
	for _, t := range tr.Buffers[buf] {
		if len(out) > 0 && out[len(out)-1] == t.Value {
			continue
		}
		out = append(out, t.Value)
	}
	return out
}
