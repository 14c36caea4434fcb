// internal/utils/pagination_test.go
package utils

import (
	"math"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query   string
		page    int
		wantErr bool
	}{
		{"", 1, false},
		{"?page=3", 3, false},
		{"?page=0", 0, false},
		{"?page=abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/products"+tt.query, nil)

			page, err := ParsePage(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.page, page)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 1, TotalPages(5, 0))
}

func TestPageOffset(t *testing.T) {
	offset, ok := PageOffset(1, 8)
	assert.True(t, ok)
	assert.Equal(t, 0, offset)

	offset, ok = PageOffset(3, 8)
	assert.True(t, ok)
	assert.Equal(t, 16, offset)

	_, ok = PageOffset(math.MaxInt/2+1, 4)
	assert.False(t, ok)

	_, ok = PageOffset(math.MaxInt, 2)
	assert.False(t, ok)
}

func TestCreatePaginationResultLinks(t *testing.T) {
	base, err := url.Parse("/api/products?brands=chanel&page=2")
	require.NoError(t, err)

	result := CreatePaginationResult([]int{1, 2}, 5, PaginationParams{Page: 2, PageSize: 2}, base)
	assert.Equal(t, 3, result.TotalPages)
	require.NotNil(t, result.Next)
	require.NotNil(t, result.Previous)
	assert.Equal(t, "/api/products?brands=chanel&page=3", *result.Next)
	assert.Equal(t, "/api/products?brands=chanel", *result.Previous)

	last := CreatePaginationResult(nil, 5, PaginationParams{Page: 3, PageSize: 2}, base)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
	assert.Equal(t, "/api/products?brands=chanel&page=2", *last.Previous)

	first := CreatePaginationResult(nil, 1, PaginationParams{Page: 1, PageSize: 2}, base)
	assert.Nil(t, first.Next)
	assert.Nil(t, first.Previous)
}
