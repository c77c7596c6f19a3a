package util

import (
	"errors"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var ErrInvalidPage = errors.New("invalid page")

// Window is a slice of a newest-first listing. A zero Limit means the whole
// listing.
type Window struct {
	Offset int
	Limit  int
}

func (w Window) Paged() bool { return w.Limit > 0 }

// ParseWindow reads ?page and ?size. Without a page the whole listing is
// requested; a size outside 1..MaxPageSize falls back to DefaultPageSize.
func ParseWindow(pageRaw, sizeRaw string) (Window, error) {
	if pageRaw == "" {
		return Window{}, nil
	}
	page, err := strconv.Atoi(pageRaw)
	if err != nil {
		return Window{}, ErrInvalidPage
	}
	size, _ := strconv.Atoi(sizeRaw)
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return Window{Offset: (page - 1) * size, Limit: size}, nil
}
