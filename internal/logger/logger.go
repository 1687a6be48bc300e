// Package logger — единый вывод логов flocompile с префиксом и учётом quiet.
package logger

import "log"

// Quiet при true отключает Info и Warn; Error выводится всегда.
var Quiet bool

// Info выводит сообщение с префиксом "flocompile: ", если Quiet == false.
func Info(format string, args ...interface{}) {
	if Quiet {
		return
	}
	log.Printf("flocompile: "+format, args...)
}

// Warn выводит предупреждение компиляции, если Quiet == false.
func Warn(format string, args ...interface{}) {
	if Quiet {
		return
	}
	log.Printf("flocompile: warning: "+format, args...)
}

// Error выводит сообщение об ошибке с префиксом "flocompile: " всегда.
func Error(format string, args ...interface{}) {
	log.Printf("flocompile: "+format, args...)
}
