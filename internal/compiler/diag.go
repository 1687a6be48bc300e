package compiler

import "fmt"

// DiagKind — вид некритичного сообщения компиляции
type DiagKind int

const (
	// RedundantWrite — запись не меняет биты буфера и отброшена
	RedundantWrite DiagKind = iota
	// GradientDeferred — изменения градиентов собраны, но не запланированы
	GradientDeferred
)

func (k DiagKind) String() string {
	switch k {
	case RedundantWrite:
		return "redundant-write"
	case GradientDeferred:
		return "gradient-deferred"
	default:
		return "unknown"
	}
}

// Diagnostic — предупреждение, возвращаемое вместе с потоком инструкций
type Diagnostic struct {
	Kind     DiagKind `json:"kind"`
	Deadline int64    `json:"deadline"`
	Buffer   int      `json:"buffer"`
	Value    uint16   `json:"value"`
	Mask     uint16   `json:"mask"`
	Count    int      `json:"count,omitempty"`
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case RedundantWrite:
		return fmt.Sprintf("time %d: write of 0x%04x (mask 0x%04x) to buffer %d will have no effect, skipped",
			d.Deadline, d.Value, d.Mask, d.Buffer)
	case GradientDeferred:
		return fmt.Sprintf("%d gradient buffer changes not scheduled", d.Count)
	}
	return d.Kind.String()
}
