package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
)

const DateLayout = "2006-01-02"

func StringToNullString(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

func NullStringToString(ns null.String) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// ParseOptionalDate разбирает дату формата YYYY-MM-DD.
// Пустая или некорректная строка даёт NULL; dropped=true, если строка была, но не разобралась.
func ParseOptionalDate(s string) (value null.Time, dropped bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return null.Time{}, true
	}
	return null.TimeFrom(t), false
}

func FormatDate(t null.Time) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(DateLayout)
}

// ParseOptionalInt64: пустая строка даёт NULL, мусор даёт ошибку.
func ParseOptionalInt64(s string) (null.Int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Int64{}, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return null.Int64{}, err
	}
	return null.Int64From(v), nil
}

func ContainsInt64(list []int64, v int64) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
