package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageNumber = 0
	DefaultPageSize   = 20
	MaxPageSize       = 100
	MinPageSize       = 1
)

// Params holds validated pagination parameters. Page numbering is 0-based.
type Params struct {
	PageNumber int
	PageSize   int
	Offset     int
}

// Parse extracts and validates pageNumber/pageSize from query parameters
func Parse(c *gin.Context) Params {
	pageNumber, _ := strconv.Atoi(c.DefaultQuery("pageNumber", strconv.Itoa(DefaultPageNumber)))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize)))

	return Normalize(pageNumber, pageSize)
}

// Normalize clamps out-of-range values back to the defaults
func Normalize(pageNumber, pageSize int) Params {
	if pageNumber < 0 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < MinPageSize {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Params{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		Offset:     pageNumber * pageSize,
	}
}

// Page wraps one page of elements with the total page count.
type Page[T any] struct {
	Elements   []T `json:"elements"`
	NumOfPage  int `json:"numOfPage"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// NewPage builds a page wrapper from the fetched elements and the total
// number of matching rows.
func NewPage[T any](elements []T, total int64, p Params) Page[T] {
	numOfPage := int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	if elements == nil {
		elements = []T{}
	}
	return Page[T]{
		Elements:   elements,
		NumOfPage:  numOfPage,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}
}
