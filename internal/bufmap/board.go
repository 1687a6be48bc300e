package bufmap

import "fmt"

// Board — плата усилителя градиентов; определяет упаковку 32-битного слова
type Board int

const (
	BoardUnknown Board = iota
	BoardGPAFHDO
	BoardOCRA1
)

func (b Board) String() string {
	switch b {
	case BoardGPAFHDO:
		return "gpa-fhdo"
	case BoardOCRA1:
		return "ocra1"
	default:
		return "unknown"
	}
}

// ParseBoard разбирает имя платы из конфига ("gpa-fhdo", "ocra1")
func ParseBoard(s string) (Board, error) {
	switch s {
	case "gpa-fhdo", "gpa_fhdo", "fhdo":
		return BoardGPAFHDO, nil
	case "ocra1":
		return BoardOCRA1, nil
	}
	return BoardUnknown, fmt.Errorf("%w: unknown gradient board %q", ErrConfiguration, s)
}

// Channels возвращает диапазон колонок, которыми управляет плата
func (b Board) Channels() (first, last Column) {
	switch b {
	case BoardGPAFHDO:
		return FhdoVx, FhdoVz2
	case BoardOCRA1:
		return Ocra1Vx, Ocra1Vz2
	}
	return 0, -1
}

// Pack упаковывает значение канала в слово последовательного интерфейса платы.
// Колонка другой платы — ошибка конфигурации.
func (b Board) Pack(col Column, value uint32) (uint32, error) {
	first, last := b.Channels()
	if col < first || col > last {
		if b == BoardUnknown {
			return 0, fmt.Errorf("%w: no gradient board selected for %s", ErrConfiguration, col)
		}
		return 0, fmt.Errorf("%w: %s is selected, but CSV is trying to control %s", ErrConfiguration, b, col)
	}
	ch := uint32(col - first)
	switch b {
	case BoardGPAFHDO:
		if err := checkWidth(col, value, 0xffff); err != nil {
			return 0, err
		}
		return value | 0x80000 | ch<<16 | ch<<25, nil
	case BoardOCRA1:
		if err := checkWidth(col, value, 0x3ffff); err != nil {
			return 0, err
		}
		// данные сдвинуты на 2 бита
		return value<<2 | 0x00100000 | ch<<25, nil
	}
	return 0, fmt.Errorf("%w: unknown gradient board", ErrConfiguration)
}
