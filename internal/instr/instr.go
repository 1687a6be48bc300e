// Package instr — инструкции секвенсора: запись буфера и ожидание.
package instr

import (
	"errors"
	"fmt"
)

// Пределы полей, представимые кодировщиком машинных слов
const (
	MaxBuffer     = 15
	MaxWriteDelay = 0xff
	MaxWaitDelay  = 0xffffff
)

// ErrRange — поле инструкции не помещается в машинное слово
var ErrRange = errors.New("range error")

// Kind — тип инструкции
type Kind uint8

const (
	KindBufferWrite Kind = iota
	KindWait
)

func (k Kind) String() string {
	switch k {
	case KindBufferWrite:
		return "write"
	case KindWait:
		return "wait"
	default:
		return "unknown"
	}
}

// Instruction — одна инструкция потока.
// Для KindWait поля Buffer и Value не используются.
type Instruction struct {
	Kind   Kind
	Buffer int
	Delay  int64
	Value  uint16
}

// BufferWrite создаёт запись value в буфер с задержкой delay тактов
func BufferWrite(buffer int, delay int64, value uint16) Instruction {
	return Instruction{Kind: KindBufferWrite, Buffer: buffer, Delay: delay, Value: value}
}

// Wait создаёт ожидание на delay тактов
func Wait(delay int64) Instruction {
	return Instruction{Kind: KindWait, Delay: delay}
}

func (i Instruction) String() string {
	if i.Kind == KindWait {
		return fmt.Sprintf("wait %d", i.Delay)
	}
	return fmt.Sprintf("write buf=%d delay=%d value=0x%04x", i.Buffer, i.Delay, i.Value)
}

// Validate проверяет, что поля помещаются в форматы машинных слов
func Validate(i Instruction) error {
	switch i.Kind {
	case KindBufferWrite:
		if i.Buffer < 0 || i.Buffer > MaxBuffer {
			return fmt.Errorf("%w: buffer %d out of 0..%d", ErrRange, i.Buffer, MaxBuffer)
		}
		if i.Delay < 0 || i.Delay > MaxWriteDelay {
			return fmt.Errorf("%w: buffer %d write delay %d out of 0..%d", ErrRange, i.Buffer, i.Delay, MaxWriteDelay)
		}
	case KindWait:
		if i.Delay < 0 || i.Delay > MaxWaitDelay {
			return fmt.Errorf("%w: wait delay %d out of 0..%d", ErrRange, i.Delay, MaxWaitDelay)
		}
	default:
		return fmt.Errorf("%w: unknown instruction kind %d", ErrRange, i.Kind)
	}
	return nil
}

// ValidateStream проверяет весь поток; возвращает первую ошибку с индексом инструкции
func ValidateStream(stream []Instruction) error {
	for n, i := range stream {
		if err := Validate(i); err != nil {
			return fmt.Errorf("instruction %d: %w", n, err)
		}
	}
	return nil
}
