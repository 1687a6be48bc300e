// Package compiler превращает временную шкалу значений колонок в поток инструкций
// секвенсора: поиск изменений, группировка по времени, компенсация задержек и выдача.
package compiler

import (
	"fmt"

	"github.com/shiwa/flocompile/internal/bufmap"
)

// Config — явная конфигурация одной компиляции
type Config struct {
	Board          bufmap.Board
	InitialBuffers [bufmap.NumBuffers]uint16
	// Latencies — задержка каждого буфера в тактах между выдачей и видимым эффектом
	Latencies  [bufmap.NumBuffers]int64
	QuickStart bool
	// Gradients — планировщик изменений градиентов; nil означает DeferGradients
	Gradients GradientScheduler
}

// Validate проверяет конфигурацию
func (c Config) Validate() error {
	if c.Board != bufmap.BoardGPAFHDO && c.Board != bufmap.BoardOCRA1 {
		return fmt.Errorf("%w: gradient board must be gpa-fhdo or ocra1, got %s", ErrConfiguration, c.Board)
	}
	return nil
}

func (c Config) gradients() GradientScheduler {
	if c.Gradients == nil {
		return DeferGradients{}
	}
	return c.Gradients
}
