package usecase

import (
	"fmt"
	"strings"
)

// ValidationError: un campo del formulario de contacto que no pasó validación.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors agrupa todos los campos inválidos de una misma petición,
// para que el front pueda marcar cada input de una vez.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	fields := make([]string, len(e))
	for i, v := range e {
		fields[i] = v.Field
	}
	return "invalid contact payload: " + strings.Join(fields, ", ")
}

// PersistenceError: la base de datos rechazó la escritura después de agotar
// degradación de columnas y la vía REST de respaldo.
type PersistenceError struct {
	Code    string
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
