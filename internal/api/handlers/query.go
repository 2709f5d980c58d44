package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

// OptionalIntQuery извлекает опциональный целочисленный query-параметр
func OptionalIntQuery(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return &value, nil
}

// OptionalFloatQuery извлекает опциональный вещественный query-параметр
func OptionalFloatQuery(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return &value, nil
}
