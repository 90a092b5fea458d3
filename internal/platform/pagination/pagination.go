// Package pagination implementa paginación por número de página
// con el sobre {count, next, previous, results}.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	PageParam     = "page"
	PageSizeParam = "page_size"

	DefaultPageSize    = 10
	DefaultMaxPageSize = 100
)

var ErrInvalidPage = errors.New("invalid page")

type Paginator struct {
	PageSize    int
	MaxPageSize int
}

func New(pageSize, maxPageSize int) Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if maxPageSize < pageSize {
		maxPageSize = pageSize
	}
	return Paginator{PageSize: pageSize, MaxPageSize: maxPageSize}
}

type Params struct {
	Page int
	Size int
}

func (p Params) Limit() int  { return p.Size }
func (p Params) Offset() int { return (p.Page - 1) * p.Size }

// Params lee page y page_size del query string.
// page inválido (no numérico o < 1) => ErrInvalidPage. page_size inválido se ignora.
func (pg Paginator) Params(r *http.Request) (Params, error) {
	q := r.URL.Query()

	page := 1
	if raw := strings.TrimSpace(q.Get(PageParam)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Params{}, ErrInvalidPage
		}
		page = n
	}

	size := pg.PageSize
	if raw := strings.TrimSpace(q.Get(PageSizeParam)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			size = min(n, pg.MaxPageSize)
		}
	}

	return Params{Page: page, Size: size}, nil
}

type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NumPages: con count == 0 hay igualmente una página (vacía).
func NumPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// NewPage arma el sobre. Si la página pedida está más allá de la última => ErrInvalidPage.
func NewPage[T any](r *http.Request, p Params, count int, results []T) (Page[T], error) {
	last := NumPages(count, p.Size)
	if p.Page > last {
		return Page[T]{}, ErrInvalidPage
	}
	if results == nil {
		results = []T{}
	}

	out := Page[T]{
		Count:   count,
		Results: results,
	}

	if p.Page < last {
		u := pageURL(r, p.Page+1)
		out.Next = &u
	}
	if p.Page > 1 {
		u := pageURL(r, p.Page-1)
		out.Previous = &u
	}
	return out, nil
}

// pageURL reconstruye la URL absoluta del request cambiando solo el parámetro page.
// La página 1 se representa sin parámetro page.
func pageURL(r *http.Request, page int) string {
	u := url.URL{
		Scheme: requestScheme(r),
		Host:   r.Host,
		Path:   r.URL.Path,
	}

	q := r.URL.Query()
	if page <= 1 {
		q.Del(PageParam)
	} else {
		q.Set(PageParam, strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func requestScheme(r *http.Request) string {
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		return strings.ToLower(proto)
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
