package drafting

import (
	"math"
	"strconv"
)

// LargeNumber is returned by NumberToWords for values it cannot spell.
const LargeNumber = "un número grande"

// WordsLimit is the exclusive upper bound of NumberToWords.
const WordsLimit = 1_000_000_000

var units = [...]string{
	"", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve",
	"diez", "once", "doce", "trece", "catorce", "quince",
	"dieciséis", "diecisiete", "dieciocho", "diecinueve",
}

var tens = [...]string{
	"", "", "veinte", "treinta", "cuarenta", "cincuenta",
	"sesenta", "setenta", "ochenta", "noventa",
}

// Irregular hundreds (quinientos, setecientos, novecientos) use their
// dictionary spelling rather than a regular "-cientos" suffix.
var hundreds = [...]string{
	"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos",
	"seiscientos", "setecientos", "ochocientos", "novecientos",
}

// NumberToWords spells whole numbers below one thousand in Spanish.
// Values at or above WordsLimit (and NaN) yield LargeNumber. Values from one
// thousand up to the limit, negatives, and fractions are returned as plain
// decimal digits.
// TODO: spell thousands and millions once product confirms the wording
// contracts should carry for them.
func NumberToWords(n float64) string {
	if math.IsNaN(n) || n >= WordsLimit {
		return LargeNumber
	}
	if n == 0 {
		return "cero"
	}
	if n < 0 || n != math.Trunc(n) || n >= 1000 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return spell(int(n))
}

func spell(n int) string {
	switch {
	case n < 20:
		return units[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " y " + units[n%10]
	case n == 100:
		return "cien"
	default:
		if n%100 == 0 {
			return hundreds[n/100]
		}
		return hundreds[n/100] + " " + spell(n%100)
	}
}
