// Package reference genera los números de transacción "YYYYMMDD-n", secuenciales por día.
package reference

import (
	"strconv"
	"strings"
	"time"
)

const layout = "20060102"

// Prefix devuelve el prefijo de fecha (YYYYMMDD) de t en su propia zona horaria.
func Prefix(t time.Time) string {
	return t.Format(layout)
}

// Next devuelve el siguiente número para el día de today a partir de los números existentes.
// Solo se consideran los que tienen el prefijo del día; el sufijo se compara como número,
// por lo que "-10" va después de "-9". Sin existentes o sin sufijos válidos, la secuencia empieza en 1.
func Next(existing []string, today time.Time) string {
	prefix := Prefix(today)
	var max int64
	for _, s := range existing {
		n, ok := suffix(s, prefix)
		if ok && n > max {
			max = n
		}
	}
	return Format(prefix, max+1)
}

// Format arma el número a partir del prefijo y la secuencia.
func Format(prefix string, n int64) string {
	return prefix + "-" + strconv.FormatInt(n, 10)
}

func suffix(s, prefix string) (int64, bool) {
	if !strings.HasPrefix(s, prefix+"-") {
		return 0, false
	}
	i := strings.LastIndex(s, "-")
	n, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
