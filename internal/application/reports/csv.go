package reports

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Formato de los informes delimitados: campos separados por ';', líneas
// terminadas en '\n' (sin CR), celdas de datos entre comillas dobles y
// líneas de encabezado/sección sin comillas. La descarga antepone el BOM
// UTF-8 para que las hojas de cálculo detecten la codificación.

const reportDateLayout = "02/01/2006"

// csvDoc constructor de documentos delimitados.
type csvDoc struct {
	b strings.Builder
}

// row línea de datos: cada celda entre comillas (comillas internas dobladas).
func (d *csvDoc) row(cells ...string) {
	for i, cell := range cells {
		if i > 0 {
			d.b.WriteByte(';')
		}
		d.b.WriteByte('"')
		d.b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		d.b.WriteByte('"')
	}
	d.b.WriteByte('\n')
}

// raw línea sin comillas (encabezados, títulos de sección, totales).
func (d *csvDoc) raw(cells ...string) {
	d.b.WriteString(strings.Join(cells, ";"))
	d.b.WriteByte('\n')
}

// blank línea vacía separadora de secciones.
func (d *csvDoc) blank() {
	d.b.WriteByte('\n')
}

func (d *csvDoc) String() string {
	return d.b.String()
}

// formatHours horas sin ceros sobrantes (8, 2.5, 0).
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// formatFloat parámetros de forma y porcentajes de pérdida.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatPercent porcentaje con dos decimales (variante de informe).
func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(reportDateLayout)
}

// Filename nombre de descarga con la fecha actual: <kind>_report_<YYYY-MM-DD>.csv.
func Filename(kind string, at time.Time) string {
	return fmt.Sprintf("%s_report_%s.csv", kind, at.Format("2006-01-02"))
}

// WithBOM codifica el documento como UTF-8 con byte-order mark.
func WithBOM(doc string) ([]byte, error) {
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, unicode.UTF8BOM.NewEncoder())
	if _, err := w.Write([]byte(doc)); err != nil {
		return nil, fmt.Errorf("reports: codificar documento: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("reports: cerrar codificador: %w", err)
	}
	return buf.Bytes(), nil
}
