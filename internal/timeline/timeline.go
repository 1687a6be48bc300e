// Package timeline читает CSV с построчным описанием состояний выходов секвенсора.
//
// Формат: первая строка — заголовок, последнее поле которого — тег версии
// (csv_version_0.1); строки, начинающиеся с '#', и хвосты после '#' игнорируются;
// строка данных — время в тактах и 22 значения колонок.
package timeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shiwa/flocompile/internal/bufmap"
)

// Version — требуемый тег версии в последнем поле заголовка
const Version = "csv_version_0.1"

// QuickStartInterval — длительность первого интервала в режиме quick start (такты)
const QuickStartInterval = 10

// CommentMarker — начало комментария
const CommentMarker = "#"

// ErrFormat — неверный заголовок или строка данных
var ErrFormat = errors.New("format error")

// FormatError — ошибка формата с номером строки входного файла
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format error: line %d: %s", e.Line, e.Msg)
	}
	return "format error: " + e.Msg
}

// Unwrap позволяет errors.Is(err, ErrFormat)
func (e *FormatError) Unwrap() error { return ErrFormat }

// Sample — строка CSV: абсолютное время и значения колонок.
// Values[0] соответствует колонке 1 (tx0_i).
type Sample struct {
	Time   int64
	Values [bufmap.NumColumns]uint32
}

// Value возвращает значение логической колонки
func (s Sample) Value(c bufmap.Column) uint32 {
	return s.Values[int(c)-1]
}

// Timeline — разобранный вход: заголовок и строки
type Timeline struct {
	Columns []string
	Version string
	Samples []Sample
}

// Parse читает CSV из r. Неверный тег версии — FormatError.
func Parse(r io.Reader) (*Timeline, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	tl := &Timeline{}
	lineNo := 0
	header := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if !header {
			if line == "" {
				continue
			}
			if err := tl.parseHeader(line, lineNo); err != nil {
				return nil, err
			}
			header = true
			continue
		}
		if i := strings.Index(line, CommentMarker); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		s, err := parseRow(line, lineNo)
		if err != nil {
			return nil, err
		}
		tl.Samples = append(tl.Samples, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if !header {
		return nil, &FormatError{Msg: "missing header"}
	}
	return tl, nil
}

func (tl *Timeline) parseHeader(line string, lineNo int) error {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	tag := fields[len(fields)-1]
	if tag != Version {
		return &FormatError{Line: lineNo, Msg: fmt.Sprintf("wrong CSV version tag %q, want %q", tag, Version)}
	}
	tl.Version = tag
	tl.Columns = fields[:len(fields)-1]
	return nil
}

func parseRow(line string, lineNo int) (Sample, error) {
	fields := strings.Split(line, ",")
	if len(fields) != bufmap.NumColumns+1 {
		return Sample{}, &FormatError{Line: lineNo, Msg: fmt.Sprintf("got %d fields, want %d", len(fields), bufmap.NumColumns+1)}
	}
	var s Sample
	t, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 32)
	if err != nil {
		return Sample{}, &FormatError{Line: lineNo, Msg: fmt.Sprintf("time: %v", err)}
	}
	s.Time = int64(t)
	for i, f := range fields[1:] {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return Sample{}, &FormatError{Line: lineNo, Msg: fmt.Sprintf("%s: %v", bufmap.Column(i+1), err)}
		}
		s.Values[i] = uint32(v)
	}
	return s, nil
}

// QuickStart убирает начальную паузу: все строки после первой сдвигаются так,
// чтобы вторая строка пришлась на время QuickStartInterval. Время первой строки
// не меняется, поэтому первый интервал равен QuickStartInterval, только если
// первая строка стоит на нуле. Исходный срез не меняется.
func QuickStart(samples []Sample) []Sample {
	out := make([]Sample, len(samples))
	copy(out, samples)
	if len(out) < 2 {
		return out
	}
	shift := out[1].Time - QuickStartInterval
	for i := 1; i < len(out); i++ {
		out[i].Time -= shift
	}
	return out
}
