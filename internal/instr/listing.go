package instr

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sugawarayuuta/sonnet"
)

// WriteText пишет поток в текстовом виде: одна инструкция на строку
func WriteText(w io.Writer, stream []Instruction) error {
	bw := bufio.NewWriter(w)
	for n, i := range stream {
		if _, err := fmt.Fprintf(bw, "%6d  %s\n", n, i); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// jsonInstruction — представление инструкции в JSON-листинге
type jsonInstruction struct {
	Op     string  `json:"op"`
	Buffer *int    `json:"buffer,omitempty"`
	Delay  int64   `json:"delay"`
	Value  *uint16 `json:"value,omitempty"`
}

// MarshalJSON кодирует инструкцию для JSON-листинга
func (i Instruction) MarshalJSON() ([]byte, error) {
	j := jsonInstruction{Op: i.Kind.String(), Delay: i.Delay}
	if i.Kind == KindBufferWrite {
		b, v := i.Buffer, i.Value
		j.Buffer, j.Value = &b, &v
	}
	return sonnet.Marshal(j)
}

// UnmarshalJSON разбирает инструкцию из JSON-листинга
func (i *Instruction) UnmarshalJSON(data []byte) error {
	var j jsonInstruction
	if err := sonnet.Unmarshal(data, &j); err != nil {
		return err
	}
	switch j.Op {
	case "write":
		if j.Buffer == nil || j.Value == nil {
			return fmt.Errorf("instr: write without buffer or value")
		}
		*i = BufferWrite(*j.Buffer, j.Delay, *j.Value)
	case "wait":
		*i = Wait(j.Delay)
	default:
		return fmt.Errorf("instr: unknown op %q", j.Op)
	}
	return nil
}
