// seed_households genera el script SQL que puebla la tabla households a partir de un padrón en CSV.
//
// Uso: go run ./cmd/seed_households [ruta/hogares.csv] [latin1|utf8]
// Por defecto lee hogares.csv del directorio actual en ISO-8859-1 (exportación habitual de hojas de cálculo).
// Columnas: name, purok, sitio, barangay, address[, location_id]. La primera fila es el encabezado.
// Escribe: migrations/002_seed_households.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type household struct {
	name, purok, sitio, barangay, address string
	locationID                            int64 // 0 = sin ubicación
}

func main() {
	csvPath := "hogares.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	encoding := "latin1"
	if len(os.Args) > 2 {
		encoding = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readHouseholds(decodeReader(f, encoding))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "migrations", "002_seed_households.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, filepath.Base(csvPath), rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d hogares\n", outPath, len(rows))
}

func decodeReader(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(encoding) {
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "cp1252", "windows-1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return r
	}
}

// readHouseholds salta el encabezado y las filas sin nombre.
func readHouseholds(r io.Reader) ([]household, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	var out []household
	for i, rec := range records {
		if i == 0 {
			continue
		}
		h := household{
			name:     col(rec, 0),
			purok:    col(rec, 1),
			sitio:    col(rec, 2),
			barangay: col(rec, 3),
			address:  col(rec, 4),
		}
		if h.name == "" {
			continue
		}
		if raw := col(rec, 5); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("fila %d: location_id %q inválido", i+1, raw)
			}
			h.locationID = id
		}
		out = append(out, h)
	}
	return out, nil
}

func writeSQL(w io.Writer, source string, rows []household) error {
	if _, err := fmt.Fprintf(w, "-- Padrón de hogares\n-- Generado desde %s\n\n", source); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "INSERT INTO households (name, purok, sitio, barangay, address, location_id) VALUES\n"); err != nil {
		return err
	}
	for i, h := range rows {
		loc := "NULL"
		if h.locationID > 0 {
			loc = strconv.FormatInt(h.locationID, 10)
		}
		sep := ","
		if i == len(rows)-1 {
			sep = ";"
		}
		if _, err := fmt.Fprintf(w, "  ('%s', '%s', '%s', '%s', '%s', %s)%s\n",
			escapeSQL(h.name), escapeSQL(h.purok), escapeSQL(h.sitio),
			escapeSQL(h.barangay), escapeSQL(h.address), loc, sep); err != nil {
			return err
		}
	}
	return nil
}

func col(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
