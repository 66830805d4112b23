package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrProductoNoEncontrado    = errors.New("producto no encontrado")
	ErrVentaNoEncontrada       = errors.New("venta no encontrada")
	ErrEntradaInvalida         = errors.New("entrada inválida")
	ErrRespaldoEnCurso         = errors.New("ya hay un respaldo en curso")
	ErrRestauracionEnCurso     = errors.New("ya hay una restauración en curso")
	ErrRespaldoNoEncontrado    = errors.New("no hay respaldo guardado en este dispositivo")
	ErrFormatoRespaldoInvalido = errors.New("el archivo no es un respaldo válido de FeriaValle")
)
