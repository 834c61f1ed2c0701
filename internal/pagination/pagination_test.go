package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Defaults(t *testing.T) {
	var p PageRequest
	p.Defaults()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = PageRequest{Page: 3, PageSize: 10}
	p.Defaults()
	assert.Equal(t, 20, p.Offset())
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse([]string{"a", "b"}, 1, 2, 5)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, int64(5), resp.TotalItems)

	empty := NewPageResponse[string](nil, 1, 20, 0)
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestMapPage(t *testing.T) {
	page := NewPageResponse([]int{1, 2, 3}, 2, 3, 9)
	mapped := MapPage(page, func(n int) int { return n * 10 })

	assert.Equal(t, []int{10, 20, 30}, mapped.Data)
	assert.Equal(t, 2, mapped.Page)
	assert.Equal(t, 3, mapped.TotalPages)
}
