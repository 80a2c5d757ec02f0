package paging

import (
	"hoa/packages/core/sieve"
	"strconv"
	"strings"
)

// Requested page and page size, zero means that value wasn't specified.
type Request struct {
	Page     int
	PageSize int
}

// Parses raw "page" and "pageSize" query parameters, empty values are treated as unset.
func ParseRequest(rawPage string, rawPageSize string) (Request, error) {
	page, err := parseInt(sieve.PageParam, rawPage)
	if err != nil {
		return Request{}, err
	}

	pageSize, err := parseInt(sieve.PageSizeParam, rawPageSize)
	if err != nil {
		return Request{}, err
	}

	return Request{Page: page, PageSize: pageSize}, nil
}

func parseInt(param string, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, &sieve.ParseError{
			Param:  param,
			Token:  raw,
			Field:  param,
			Reason: "expected integer",
		}
	}

	return int(n), nil
}

type Metadata struct {
	CurrentPage        int    `json:"currentPage"`
	PageSize           int    `json:"pageSize"`
	TotalCount         int    `json:"totalCount"`
	TotalPages         int    `json:"totalPages"`
	PreviousPageExists bool   `json:"previousPageExists"`
	NextPageExists     bool   `json:"nextPageExists"`
	PreviousPageLink   string `json:"previousPageLink,omitempty"`
	NextPageLink       string `json:"nextPageLink,omitempty"`
}

// Page must be already coerced to be positive and pageSize must be positive.
func NewMetadata(page int, pageSize int, totalCount int) Metadata {
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	return Metadata{
		CurrentPage:        page,
		PageSize:           pageSize,
		TotalCount:         totalCount,
		TotalPages:         totalPages,
		PreviousPageExists: page > 1,
		NextPageExists:     page < totalPages,
	}
}

type Page[T any] struct {
	// Never nil, empty if requested page is out of range.
	Items    []T
	Metadata Metadata
}

// Returns effective page number and page size of the request.
func (c *Config) resolve(req Request) (page int, pageSize int) {
	page = req.Page
	if page <= 0 {
		page = 1
	}
	return page, c.PageSize(req.PageSize)
}

// Returns request with effective page number and page size,
// i.e. requests that address the same page are equal after Resolve.
func (c *Config) Resolve(req Request) Request {
	page, pageSize := c.resolve(req)
	return Request{Page: page, PageSize: pageSize}
}
