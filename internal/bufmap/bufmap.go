// Package bufmap — отображение логических колонок CSV на 16 аппаратных буферов секвенсора.
package bufmap

import (
	"errors"
	"fmt"

	"github.com/shiwa/flocompile/internal/instr"
)

// NumBuffers — число 16-битных выходных буферов секвенсора
const NumBuffers = 16

// Буферы 1 и 2 — младшая и старшая половины 32-битного слова градиента
const (
	GradLowBuffer  = 1
	GradHighBuffer = 2
)

// ErrConfiguration — неизвестная колонка или несовпадение платы градиентов и канала
var ErrConfiguration = errors.New("configuration error")

// Column — логическая колонка CSV (1..22, колонка 0 — время)
type Column int

const (
	Tx0I Column = iota + 1
	Tx0Q
	Tx1I
	Tx1Q
	FhdoVx
	FhdoVy
	FhdoVz
	FhdoVz2
	Ocra1Vx
	Ocra1Vy
	Ocra1Vz
	Ocra1Vz2
	Rx0Rate
	Rx1Rate
	Rx0RateValid
	Rx1RateValid
	Rx0RstN
	Rx1RstN
	TxGate
	RxGate
	TrigOut
	Leds
)

// NumColumns — число колонок значений в строке CSV (без времени)
const NumColumns = int(Leds)

var columnNames = [...]string{
	Tx0I: "tx0_i", Tx0Q: "tx0_q", Tx1I: "tx1_i", Tx1Q: "tx1_q",
	FhdoVx: "fhdo_vx", FhdoVy: "fhdo_vy", FhdoVz: "fhdo_vz", FhdoVz2: "fhdo_vz2",
	Ocra1Vx: "ocra1_vx", Ocra1Vy: "ocra1_vy", Ocra1Vz: "ocra1_vz", Ocra1Vz2: "ocra1_vz2",
	Rx0Rate: "rx0_rate", Rx1Rate: "rx1_rate",
	Rx0RateValid: "rx0_rate_valid", Rx1RateValid: "rx1_rate_valid",
	Rx0RstN: "rx0_rst_n", Rx1RstN: "rx1_rst_n",
	TxGate: "tx_gate", RxGate: "rx_gate", TrigOut: "trig_out",
	Leds: "leds",
}

func (c Column) String() string {
	if c.Valid() {
		return columnNames[c]
	}
	return fmt.Sprintf("column(%d)", int(c))
}

// Valid возвращает true для колонок 1..22
func (c Column) Valid() bool {
	return c >= Tx0I && c <= Leds
}

// IsGradient возвращает true для колонок любой из плат градиентов
func (c Column) IsGradient() bool {
	return c >= FhdoVx && c <= Ocra1Vz2
}

// Write — запись части буфера: значение действует только в битах Mask
type Write struct {
	Buffer int
	Value  uint16
	Mask   uint16
}

// Map возвращает записи буферов для нового значения колонки.
// Для колонок градиента возвращаются две записи (буферы 1 и 2).
// Значение шире поля колонки отклоняется с instr.ErrRange.
func Map(col Column, value uint32, board Board) ([]Write, error) {
	switch {
	case col >= Tx0I && col <= Tx1Q:
		if err := checkWidth(col, value, 0xffff); err != nil {
			return nil, err
		}
		return []Write{{Buffer: int(col) + 4, Value: uint16(value), Mask: 0xffff}}, nil
	case col.IsGradient():
		word, err := board.Pack(col, value)
		if err != nil {
			return nil, err
		}
		return []Write{
			{Buffer: GradLowBuffer, Value: uint16(word), Mask: 0xffff},
			{Buffer: GradHighBuffer, Value: uint16(word >> 16), Mask: 0xffff},
		}, nil
	case col == Rx0Rate || col == Rx1Rate:
		if err := checkWidth(col, value, 0x0fff); err != nil {
			return nil, err
		}
		return []Write{{Buffer: int(col) - 10, Value: uint16(value), Mask: 0x0fff}}, nil
	case col == Rx0RateValid || col == Rx1RateValid:
		if err := checkWidth(col, value, 1); err != nil {
			return nil, err
		}
		return []Write{{Buffer: int(col) - 12, Value: uint16(value) << 14, Mask: 0x4000}}, nil
	case col == Rx0RstN || col == Rx1RstN:
		if err := checkWidth(col, value, 1); err != nil {
			return nil, err
		}
		return []Write{{Buffer: int(col) - 14, Value: uint16(value) << 15, Mask: 0x8000}}, nil
	case col >= TxGate && col <= TrigOut:
		if err := checkWidth(col, value, 1); err != nil {
			return nil, err
		}
		bit := uint(col - TxGate)
		return []Write{{Buffer: 15, Value: uint16(value) << bit, Mask: uint16(1) << bit}}, nil
	case col == Leds:
		if err := checkWidth(col, value, 0xff); err != nil {
			return nil, err
		}
		return []Write{{Buffer: 15, Value: uint16(value) << 8, Mask: 0xff00}}, nil
	}
	return nil, fmt.Errorf("%w: unknown column %d", ErrConfiguration, int(col))
}

func checkWidth(col Column, value, limit uint32) error {
	if value > limit {
		return fmt.Errorf("%w: %s value %#x exceeds %#x", instr.ErrRange, col, value, limit)
	}
	return nil
}
