package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
)

const jsonIndent = "  "

// EncodeStock renders stock as a pretty-printed JSON object in ledger order.
// Non-ASCII characters are written literally.
func EncodeStock(stock *domain.Stock) ([]byte, error) {
	items := stock.Items()
	if len(items) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, item := range items {
		key, err := encodeString(item.Name)
		if err != nil {
			return nil, fmt.Errorf("encode item %q: %w", item.Name, err)
		}
		buf.WriteString(jsonIndent)
		buf.Write(key)
		buf.WriteString(": ")
		buf.WriteString(strconv.Itoa(item.Quantity))
		if i < len(items)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DecodeStock parses a JSON object of item -> quantity.
//
// Syntax errors are returned as *domain.MalformedError, a valid document whose
// root is not an object as domain.ErrInvalidFormat. Values that cannot be
// coerced to a positive integer are dropped. For duplicate keys the last value
// wins while the first position is kept.
func DecodeStock(path string, data []byte) (*domain.Stock, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, &domain.MalformedError{Path: path, Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &domain.MalformedError{Path: path, Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: %s root is not an object", domain.ErrInvalidFormat, path)
	}

	var order []string
	values := make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &domain.MalformedError{Path: path, Err: err}
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &domain.MalformedError{Path: path, Err: fmt.Errorf("unexpected token %v", tok)}
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, &domain.MalformedError{Path: path, Err: err}
		}
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = raw
	}

	stock := domain.NewStock()
	for _, key := range order {
		qty, ok := coerceQuantity(values[key])
		if !ok {
			continue
		}
		stock.Set(key, qty)
	}
	return stock, nil
}

// coerceQuantity converts a decoded JSON value to an int: numbers are
// truncated toward zero, numeric strings are parsed, booleans map to 1/0.
func coerceQuantity(v any) (int, bool) {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return toInt(n)
		}
		f, err := val.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		f = math.Trunc(f)
		if f > math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return toInt(int64(f))
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, false
		}
		return toInt(n)
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func toInt(n int64) (int, bool) {
	if n > math.MaxInt || n < math.MinInt {
		return 0, false
	}
	return int(n), true
}
