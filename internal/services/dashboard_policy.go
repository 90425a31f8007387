package services

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultTrendDays   = 7
	MaxTrendDays       = 90
	DefaultRecentLimit = 10
	MaxRecentLimit     = 200
)

var (
	ErrDashboardDaysInvalid  = errors.New("dashboard invalid days")
	ErrDashboardLimitInvalid = errors.New("dashboard invalid limit")
)

func ParseTrendDays(raw string) (int, error) {
	return parseBoundedInt(raw, DefaultTrendDays, MaxTrendDays, ErrDashboardDaysInvalid)
}

func ParseRecentLimit(raw string) (int, error) {
	return parseBoundedInt(raw, DefaultRecentLimit, MaxRecentLimit, ErrDashboardLimitInvalid)
}

func parseBoundedInt(raw string, fallback int, maximum int, invalid error) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil || value < 1 || value > maximum {
		return 0, invalid
	}
	return value, nil
}
