// Package catalogcsv lee catálogos de productos exportados desde hojas de cálculo.
package catalogcsv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/retail-pos/internal/application/dto"
)

// Columnas reconocidas en la cabecera (sin distinguir mayúsculas).
const (
	ColSKU          = "sku"
	ColName         = "name"
	ColCategory     = "category"
	ColCost         = "cost"
	ColPrice        = "price"
	ColDiscount     = "discount"
	ColInitialStock = "initial_stock"
)

// aliases nombres en español aceptados para cada columna.
var aliases = map[string]string{
	"codigo": ColSKU, "código": ColSKU, "nombre": ColName, "categoria": ColCategory,
	"categoría": ColCategory, "costo": ColCost, "precio": ColPrice, "descuento": ColDiscount,
	"stock": ColInitialStock, "stock_inicial": ColInitialStock,
}

// Options controla la decodificación del archivo.
type Options struct {
	Latin1 bool // archivo en ISO-8859-1 (exportación típica de Excel en Windows)
}

// RowError error de una fila concreta (1 = primera fila de datos).
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string { return fmt.Sprintf("fila %d: %v", e.Row, e.Err) }

func (e *RowError) Unwrap() error { return e.Err }

// Read devuelve una solicitud de alta por fila. El separador (',' o ';') se detecta en la cabecera.
func Read(r io.Reader, opts Options) ([]dto.CreateProductRequest, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	br := bufio.NewReader(r)
	head, err := br.Peek(1024)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	cr := csv.NewReader(br)
	cr.Comma = detectComma(string(head))
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		cols[name] = i
	}
	if _, ok := cols[ColName]; !ok {
		return nil, fmt.Errorf("la cabecera debe incluir la columna %q", ColName)
	}

	var out []dto.CreateProductRequest
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		p, err := parseRow(rec, cols)
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		out = append(out, p)
	}
	return out, nil
}

func detectComma(head string) rune {
	line := head
	if i := strings.IndexAny(head, "\r\n"); i >= 0 {
		line = head[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

func parseRow(rec []string, cols map[string]int) (dto.CreateProductRequest, error) {
	get := func(col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	p := dto.CreateProductRequest{
		SKU:      get(ColSKU),
		Name:     get(ColName),
		Category: get(ColCategory),
	}
	if p.Name == "" {
		return p, fmt.Errorf("%s vacío", ColName)
	}
	var err error
	if p.Cost, err = parseAmount(get(ColCost)); err != nil {
		return p, fmt.Errorf("%s: %w", ColCost, err)
	}
	if p.Price, err = parseAmount(get(ColPrice)); err != nil {
		return p, fmt.Errorf("%s: %w", ColPrice, err)
	}
	if s := get(ColDiscount); s != "" {
		d, err := parseAmount(strings.TrimSuffix(s, "%"))
		if err != nil {
			return p, fmt.Errorf("%s: %w", ColDiscount, err)
		}
		if !d.IsZero() {
			p.Discount = &d
		}
	}
	if s := get(ColInitialStock); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return p, fmt.Errorf("%s inválido: %q", ColInitialStock, s)
		}
		p.InitialStock = n
	}
	return p, nil
}

// parseAmount acepta "1234.5", "1234,5" y "1.234,50". Vacío es 0.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
