// Package flocompile компилирует CSV-описание выходов секвенсора в поток инструкций.
// Предназначен для встраивания в другие инструменты; CLI — cmd/flocompile.
package flocompile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/sugawarayuuta/sonnet"

	"github.com/shiwa/flocompile/internal/archive"
	"github.com/shiwa/flocompile/internal/compiler"
	"github.com/shiwa/flocompile/internal/config"
	"github.com/shiwa/flocompile/internal/instr"
	"github.com/shiwa/flocompile/internal/logger"
	"github.com/shiwa/flocompile/internal/sink"
	"github.com/shiwa/flocompile/internal/timeline"
)

type (
	// Result — поток инструкций, диагностика и сводка
	Result = compiler.Result
	// Options — явная конфигурация компилятора
	Options = compiler.Config
	// Instruction — инструкция секвенсора
	Instruction = instr.Instruction
)

// Compile читает CSV из r и компилирует его
func Compile(r io.Reader, opts Options) (*Result, error) {
	tl, err := timeline.Parse(r)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(tl, opts)
}

// CompileFile читает CSV из файла fs и компилирует его
func CompileFile(fs afero.Fs, path string, opts Options) (*Result, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Compile(f, opts)
}

// Run выполняет полный цикл по конфигу: чтение CSV, компиляция, вывод предупреждений,
// запись листинга и, если задан архив, сверка отпечатка с прошлой компиляцией.
func Run(fs afero.Fs, csvPath string, cfg *config.Config) (*Result, error) {
	opts, err := cfg.Compiler()
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fs, csvPath)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	res, err := Compile(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}
	for _, d := range res.Diagnostics {
		logger.Warn("%s", d)
	}
	logger.Info("%d groups (%d shifted), %d waits, %d instructions",
		res.Stats.Groups, res.Stats.Shifted, res.Stats.Waits, res.Stats.Instructions)

	w, err := sink.Open(fs, sink.Destination{
		Path:       cfg.Output.Path,
		SerialPort: cfg.Output.SerialPort,
		Baud:       cfg.Output.Baud,
	})
	if err != nil {
		return nil, err
	}
	if err := WriteListing(w, res, cfg.Output.Format); err != nil {
		w.Close()
		return nil, fmt.Errorf("write listing: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("write listing: %w", err)
	}

	if cfg.Archive.Path != "" {
		if err := record(cfg.Archive.Path, data, opts, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func record(path string, input []byte, opts Options, res *Result) error {
	a, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()
	run := &archive.Run{
		InputDigest:  archive.Digest(input),
		ConfigDigest: ConfigDigest(opts),
		StreamDigest: archive.StreamDigest(res.Instructions),
		Instructions: len(res.Instructions),
		Warnings:     len(res.Diagnostics),
	}
	prev, err := a.Previous(run.InputDigest, run.ConfigDigest)
	if err != nil {
		return err
	}
	if prev != nil && prev.StreamDigest != run.StreamDigest {
		logger.Warn("stream differs from run %d with identical input and config (%s != %s)",
			prev.ID, run.StreamDigest[:12], prev.StreamDigest[:12])
	}
	return a.Record(run)
}

// ConfigDigest — отпечаток полей конфигурации, влияющих на поток
func ConfigDigest(opts Options) string {
	return archive.Digest([]byte(fmt.Sprintf("%s|%v|%v|%v",
		opts.Board, opts.InitialBuffers, opts.Latencies, opts.QuickStart)))
}

// jsonListing — JSON-представление результата
type jsonListing struct {
	Instructions []instr.Instruction `json:"instructions"`
	Diagnostics  []jsonDiagnostic    `json:"diagnostics"`
	Stats        compiler.Stats      `json:"stats"`
}

type jsonDiagnostic struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// WriteListing пишет поток в формате text или json
func WriteListing(w io.Writer, res *Result, format string) error {
	switch format {
	case "", "text":
		return instr.WriteText(w, res.Instructions)
	case "json":
		l := jsonListing{
			Instructions: res.Instructions,
			Diagnostics:  make([]jsonDiagnostic, 0, len(res.Diagnostics)),
			Stats:        res.Stats,
		}
		for _, d := range res.Diagnostics {
			l.Diagnostics = append(l.Diagnostics, jsonDiagnostic{Kind: d.Kind.String(), Message: d.String()})
		}
		data, err := sonnet.Marshal(l)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
	return fmt.Errorf("%w: unknown output format %q", compiler.ErrConfiguration, format)
}
