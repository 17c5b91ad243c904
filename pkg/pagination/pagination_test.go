package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		pageNumber int
		pageSize   int
		want       Params
	}{
		{"in range", 2, 10, Params{PageNumber: 2, PageSize: 10, Offset: 20}},
		{"negative page number falls back", -1, 10, Params{PageNumber: 0, PageSize: 10, Offset: 0}},
		{"zero page size falls back to default", 0, 0, Params{PageNumber: 0, PageSize: 20, Offset: 0}},
		{"oversized page is capped", 0, 500, Params{PageNumber: 0, PageSize: 100, Offset: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.pageNumber, tt.pageSize))
		})
	}
}

func TestNewPage(t *testing.T) {
	params := Normalize(0, 20)

	t.Run("rounds the page count up", func(t *testing.T) {
		page := NewPage(make([]int, 20), 45, params)
		assert.Equal(t, 3, page.NumOfPage)
	})

	t.Run("exact multiple", func(t *testing.T) {
		page := NewPage(make([]int, 20), 40, params)
		assert.Equal(t, 2, page.NumOfPage)
	})

	t.Run("empty result", func(t *testing.T) {
		page := NewPage[int](nil, 0, params)
		assert.Equal(t, 0, page.NumOfPage)
		assert.NotNil(t, page.Elements)
		assert.Empty(t, page.Elements)
	})
}
