// Package sink — получатели листинга инструкций: stdout, файл, последовательный порт.
package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/tarm/serial"
)

// Destination — куда писать листинг
type Destination struct {
	Path       string // файл; пусто или "-" = stdout
	SerialPort string // если задан, листинг отправляется в порт загрузчика секвенсора
	Baud       int
}

// Open открывает получатель. Приоритет: последовательный порт, затем файл, затем stdout.
func Open(fs afero.Fs, d Destination) (io.WriteCloser, error) {
	if d.SerialPort != "" {
		p, err := OpenSerial(d.SerialPort, d.Baud)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	if d.Path == "" || d.Path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := fs.Create(d.Path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", d.Path, err)
	}
	return f, nil
}

// Port — обёртка над последовательным портом
type Port struct {
	port *serial.Port
}

// OpenSerial открывает последовательный порт
func OpenSerial(device string, baud int) (*Port, error) {
	if baud == 0 {
		baud = 115200
	}
	c := &serial.Config{
		Name: device,
		Baud: baud,
	}
	p, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("serial open %s: %w", device, err)
	}
	return &Port{port: p}, nil
}

// Write отправляет данные в порт
func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close закрывает порт
func (p *Port) Close() error {
	if p.port == nil {
		return nil
	}
	return p.port.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
