// Package dto содержит модели запросов и ответов HTTP API каталога.
package dto

import (
	"bytes"
	"fmt"
	"time"
)

// DateLayout - формат дат в запросах и ответах.
const DateLayout = "2006-01-02"

// Date - календарная дата в формате DateLayout.
type Date struct {
	time.Time
}

// UnmarshalJSON разбирает дату из строки "YYYY-MM-DD".
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("date must be a string in format %s", DateLayout)
	}
	t, err := time.Parse(DateLayout, string(data[1:len(data)-1]))
	if err != nil {
		return fmt.Errorf("date must be in format %s: %w", DateLayout, err)
	}
	d.Time = t
	return nil
}

// MarshalJSON пишет дату как "YYYY-MM-DD". Нулевая дата пишется как null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
