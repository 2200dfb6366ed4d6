package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Pares de caracteres que foldAccents traduce en SQL. Debe cubrir lo mismo
// que textutil.NormalizeSearch elimina para el español, para que el término
// ya normalizado encuentre columnas guardadas con tilde.
const (
	accentedChars = "áéíóúüñÁÉÍÓÚÜÑ"
	plainChars    = "aeiouunAEIOUUN"
)

// foldAccents devuelve la expresión SQL que pasa la columna a minúsculas sin
// tildes, espejo de la normalización que aplica el caso de uso al término.
func foldAccents(column string) string {
	return "LOWER(translate(" + column + ", '" + accentedChars + "', '" + plainChars + "'))"
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}
