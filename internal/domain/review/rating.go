// Package review agrega las calificaciones de un vendor o producto.
package review

import "github.com/shopspring/decimal"

// Summary resumen de reseñas de un destino.
// Average es nil cuando no hay reseñas; nunca se divide por cero.
type Summary struct {
	Count   int
	Average *int
	Exact   decimal.NullDecimal // promedio sin redondear, con 2 decimales
}

// Summarize construye el resumen a partir del conteo y del AVG(rating) que devuelve la DB.
// El redondeo es al entero más cercano con empates a par (2.5 -> 2, 3.5 -> 4).
func Summarize(count int, avg decimal.NullDecimal) Summary {
	if count <= 0 {
		return Summary{}
	}
	if !avg.Valid {
		return Summary{Count: count}
	}
	rounded := int(avg.Decimal.RoundBank(0).IntPart())
	return Summary{
		Count:   count,
		Average: &rounded,
		Exact:   decimal.NullDecimal{Decimal: avg.Decimal.Round(2), Valid: true},
	}
}

// FromRatings calcula el resumen en memoria (listados ya cargados, tests).
func FromRatings(ratings []int) Summary {
	if len(ratings) == 0 {
		return Summary{}
	}
	sum := int64(0)
	for _, r := range ratings {
		sum += int64(r)
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(ratings))))
	return Summarize(len(ratings), decimal.NullDecimal{Decimal: avg, Valid: true})
}
