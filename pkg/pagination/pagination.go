// Package pagination provides limit/offset paging helpers shared by the
// HTTP handlers.
package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type Params struct {
	Limit  int
	Offset int
}

// FromContext reads limit/offset query parameters, clamping them to
// sane bounds. Missing or malformed values fall back to the defaults.
func FromContext(c echo.Context) Params {
	p := Params{Limit: DefaultLimit}

	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if raw := c.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			p.Offset = n
		}
	}
	return p
}

// Slice applies the paging window to an in-memory result set and
// returns the page alongside the total count before paging.
func Slice[T any](items []T, p Params) ([]T, int) {
	total := len(items)
	if p.Offset >= total {
		return []T{}, total
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return items[p.Offset:end], total
}

type Response struct {
	Data   any `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func NewResponse(data any, total, limit, offset int) Response {
	return Response{Data: data, Total: total, Limit: limit, Offset: offset}
}
