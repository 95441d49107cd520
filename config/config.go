// Package config gives read-only access to JSON configuration documents.
// Lookups distinguish a missing field from one holding the wrong type so
// callers can probe for alternative layouts of the same field.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	// ErrNoEntry ...
	ErrNoEntry = errors.New("config: no such field")
	// ErrInvalidType ...
	ErrInvalidType = errors.New("config: field holds a different type")
)

// Config ...
type Config struct {
	values map[string]interface{}
}

// Parse ...
func Parse(data []byte) (*Config, error) {
	var values map[string]interface{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return &Config{values: values}, nil
}

// Load ...
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: load: %w", err)
	}
	return Parse(data)
}

func (c *Config) lookup(field string) (interface{}, error) {
	value, ok := c.values[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoEntry, field)
	}
	return value, nil
}

// Int returns field as an integer. A fractional number is ErrInvalidType.
func (c *Config) Int(field string) (int, error) {
	value, err := c.lookup(field)
	if err != nil {
		return 0, err
	}
	num, ok := value.(float64)
	if !ok || num != math.Trunc(num) {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidType, field)
	}
	return int(num), nil
}

// String ...
func (c *Config) String(field string) (string, error) {
	value, err := c.lookup(field)
	if err != nil {
		return "", err
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", ErrInvalidType, field)
	}
	return str, nil
}

// Sub returns the nested object stored under field.
func (c *Config) Sub(field string) (*Config, error) {
	value, err := c.lookup(field)
	if err != nil {
		return nil, err
	}
	values, ok := value.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an object", ErrInvalidType, field)
	}
	return &Config{values: values}, nil
}

// Array ...
type Array struct {
	items []interface{}
}

// Array returns the array stored under field.
func (c *Config) Array(field string) (*Array, error) {
	value, err := c.lookup(field)
	if err != nil {
		return nil, err
	}
	items, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an array", ErrInvalidType, field)
	}
	return &Array{items: items}, nil
}

// Len ...
func (a *Array) Len() int {
	return len(a.items)
}

// IntAt returns the element at index i as an integer.
func (a *Array) IntAt(i int) (int, error) {
	if i < 0 || i >= len(a.items) {
		return 0, fmt.Errorf("%w: index %d", ErrNoEntry, i)
	}
	num, ok := a.items[i].(float64)
	if !ok || num != math.Trunc(num) {
		return 0, fmt.Errorf("%w: element %d is not an integer", ErrInvalidType, i)
	}
	return int(num), nil
}
