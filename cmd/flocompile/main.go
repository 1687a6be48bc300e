// flocompile — компилятор CSV-описания выходов секвенсора flocra в поток инструкций.
//
// Вход: CSV, одна строка на момент времени (время в тактах + 22 колонки),
// последнее поле заголовка — csv_version_0.1.
// Выход: листинг инструкций (запись буфера / ожидание) в text или json.
//
// Использование:
//
//	flocompile -config flocompile.yml seq.csv
//	flocompile -board ocra1 -quick-start -o seq.txt seq.csv
//	flocompile -format json -port /dev/ttyUSB0 seq.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"

	"github.com/shiwa/flocompile/internal/config"
	"github.com/shiwa/flocompile/internal/logger"
	"github.com/shiwa/flocompile/pkg/flocompile"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигу (по умолчанию flocompile.yml, если есть)")
	board := flag.String("board", "", "плата градиентов: gpa-fhdo или ocra1 (переопределяет config)")
	quickStart := flag.Bool("quick-start", false, "убрать начальную паузу: первый интервал 10 тактов")
	out := flag.String("o", "", "файл листинга (по умолчанию stdout)")
	format := flag.String("format", "", "формат листинга: text или json (переопределяет config)")
	port := flag.String("port", "", "последовательный порт загрузчика (переопределяет config)")
	baud := flag.Int("baud", 0, "скорость порта (переопределяет config)")
	archivePath := flag.String("archive", "", "sqlite архив компиляций (переопределяет config)")
	quiet := flag.Bool("quiet", false, "меньше вывода")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: flocompile [flags] input.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}
	logger.Quiet = *quiet

	fs := afero.NewOsFs()
	cfg, err := loadConfig(fs, *configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	if *board != "" {
		cfg.Board = *board
	}
	if *quickStart {
		cfg.QuickStart = true
	}
	if *out != "" {
		cfg.Output.Path = *out
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *port != "" {
		cfg.Output.SerialPort = *port
	}
	if *baud != 0 {
		cfg.Output.Baud = *baud
	}
	if *archivePath != "" {
		cfg.Archive.Path = *archivePath
	}

	if _, err := flocompile.Run(fs, flag.Arg(0), cfg); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func loadConfig(fs afero.Fs, path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = "flocompile.yml"
	}
	if ok, _ := afero.Exists(fs, path); !ok {
		if explicit {
			return nil, fmt.Errorf("%s: file not found", path)
		}
		return nil, nil
	}
	return config.Load(fs, path)
}
