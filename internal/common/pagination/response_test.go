package pagination_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/common/pagination"
)

func TestNewPage_Links(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://foodgram.example/api/recipes/?page=2&limit=2&tags=lunch", nil)

	page := pagination.NewPage(req, pagination.Params{Page: 2, Limit: 2}, 5, []int{3, 4})

	assert.Equal(t, int64(5), page.Count)
	assert.Equal(t, []int{3, 4}, page.Results)
	require.NotNil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://foodgram.example/api/recipes/?limit=2&page=3&tags=lunch", *page.Next)
	// 1 ページ目へのリンクには page を付けない
	assert.Equal(t, "http://foodgram.example/api/recipes/?limit=2&tags=lunch", *page.Previous)
}

func TestNewPage_SinglePage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://foodgram.example/api/users/", nil)

	page := pagination.NewPage[string](req, pagination.Params{Page: 1, Limit: 6}, 0, nil)

	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
}

func TestNewPage_OffsetLinks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://foodgram.example/api/users/subscriptions/?limit=3&offset=4&recipes_limit=2", nil)

	page := pagination.NewPage(req, pagination.AtOffset(4, 3), 10, []int{5, 6, 7})

	require.NotNil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://foodgram.example/api/users/subscriptions/?limit=3&offset=7&recipes_limit=2", *page.Next)
	assert.Equal(t, "http://foodgram.example/api/users/subscriptions/?limit=3&offset=1&recipes_limit=2", *page.Previous)

	last := pagination.NewPage(req, pagination.AtOffset(9, 3), 10, []int{10})
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
	assert.Equal(t, "http://foodgram.example/api/users/subscriptions/?limit=3&offset=6&recipes_limit=2", *last.Previous)
}
