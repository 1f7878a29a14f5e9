// Package query holds the in-memory filter, sort and aggregate rules applied
// to fetched collections before they are served.
package query

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Predicate reports whether an item passes one filter field. A nil Predicate
// stands for an empty field and imposes no constraint.
type Predicate[T any] func(T) bool

// Filter keeps the items that pass every non-nil predicate. With no active
// predicate the input slice is returned as is.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return items
	}

	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range active {
			if !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// ContainsFold is a case-insensitive substring match over any of fields.
func ContainsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Between checks inclusive bounds; a nil bound is open.
func Between(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseOrder defaults to def for an empty value.
func ParseOrder(value string, def Order) (Order, bool) {
	switch Order(strings.ToLower(strings.TrimSpace(value))) {
	case "":
		return def, true
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	default:
		return "", false
	}
}

// Compare orders two items by one field.
type Compare[T any] func(a, b T) int

func ByNumber[T any, N cmp.Ordered](get func(T) N) Compare[T] {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}

func ByText[T any](get func(T) string) Compare[T] {
	return func(a, b T) int { return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b))) }
}

func ByTime[T any](get func(T) time.Time) Compare[T] {
	return func(a, b T) int { return get(a).Compare(get(b)) }
}

// Sort returns a sorted copy. Equal keys keep their input order in both directions.
func Sort[T any](items []T, by Compare[T], order Order) []T {
	out := slices.Clone(items)
	if by == nil {
		return out
	}
	if order == Desc {
		slices.SortStableFunc(out, func(a, b T) int { return by(b, a) })
		return out
	}
	slices.SortStableFunc(out, by)
	return out
}
