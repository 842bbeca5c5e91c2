package config

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Thokas/zombie-survival/internal/models"
)

// Input validation errors for interactively typed values.
var (
	ErrNotANumber   = errors.New("not a valid number")
	ErrNotPositive  = errors.New("number must be greater than 0")
	ErrChanceRange  = errors.New("number must be between 1 and 99")
	ErrNegativeSize = errors.New("number must not be negative")
)

// ParseInt accepts a base-10 integer surrounded by optional whitespace.
func ParseInt(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, ErrNotANumber
	}
	return v, nil
}

// ParseCount accepts integers >= 1.
func ParseCount(text string) (int, error) {
	v, err := ParseInt(text)
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, ErrNotPositive
	}
	return v, nil
}

// ParseChance accepts integers in [1, 99].
func ParseChance(text string) (int, error) {
	v, err := ParseInt(text)
	if err != nil {
		return 0, err
	}
	if v < models.MinHitChance || v > models.MaxHitChance {
		return 0, ErrChanceRange
	}
	return v, nil
}

// ParseVariety accepts integers >= 0.
func ParseVariety(text string) (int, error) {
	v, err := ParseInt(text)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, ErrNegativeSize
	}
	return v, nil
}
