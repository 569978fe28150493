package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrMissingFile          = errors.New("no se recibió ningún archivo PDF")
	ErrUnsupportedMediaType = errors.New("solo se aceptan archivos PDF")
	ErrFileTooLarge         = errors.New("el archivo supera el tamaño máximo permitido")
)
