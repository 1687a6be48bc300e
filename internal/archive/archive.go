// Package archive хранит сводки компиляций в sqlite, чтобы сравнивать отпечатки
// потоков при повторной компиляции того же входа с той же конфигурацией.
package archive

import (
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/sha3"

	"github.com/shiwa/flocompile/internal/instr"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	input_digest  TEXT NOT NULL,
	config_digest TEXT NOT NULL,
	stream_digest TEXT NOT NULL,
	instructions  INTEGER NOT NULL,
	warnings      INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_input ON runs(input_digest, config_digest);
`

// Run — сводка одной компиляции
type Run struct {
	ID           int64
	InputDigest  string
	ConfigDigest string
	StreamDigest string
	Instructions int
	Warnings     int
	CreatedAt    time.Time
}

// Archive — sqlite архив компиляций
type Archive struct {
	db *sql.DB
}

// Open открывает (или создаёт) архив по пути к файлу базы
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("archive open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Record сохраняет сводку компиляции
func (a *Archive) Record(r *Run) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	res, err := a.db.Exec(
		`INSERT INTO runs (input_digest, config_digest, stream_digest, instructions, warnings, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.InputDigest, r.ConfigDigest, r.StreamDigest, r.Instructions, r.Warnings, r.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("archive insert: %w", err)
	}
	r.ID, err = res.LastInsertId()
	return err
}

// Previous возвращает последнюю сводку для того же входа и конфигурации; nil, если её нет
func (a *Archive) Previous(inputDigest, configDigest string) (*Run, error) {
	var (
		r       Run
		created string
	)
	err := a.db.QueryRow(
		`SELECT id, input_digest, config_digest, stream_digest, instructions, warnings, created_at
		 FROM runs WHERE input_digest = ? AND config_digest = ? ORDER BY id DESC LIMIT 1`,
		inputDigest, configDigest).Scan(&r.ID, &r.InputDigest, &r.ConfigDigest, &r.StreamDigest, &r.Instructions, &r.Warnings, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("archive query: %w", err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return &r, nil
}

// Close закрывает базу
func (a *Archive) Close() error {
	return a.db.Close()
}

// Digest возвращает sha3-256 от данных в hex
func Digest(data ...[]byte) string {
	h := sha3.New256()
	for _, d := range data {
		h.Write(d)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// StreamDigest — отпечаток потока инструкций, не зависящий от формата листинга
func StreamDigest(stream []instr.Instruction) string {
	buf := make([]byte, 0, len(stream)*12)
	for _, in := range stream {
		buf = append(buf, byte(in.Kind), byte(in.Buffer))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(in.Delay))
		buf = binary.LittleEndian.AppendUint16(buf, in.Value)
	}
	return Digest(buf)
}
