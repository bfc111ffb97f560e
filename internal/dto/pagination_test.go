package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		name        string
		page, limit string
		want        Page
	}{
		{"defaults", "", "", Page{Page: 1, Limit: 10}},
		{"explicit", "2", "1", Page{Page: 2, Limit: 1}},
		{"negative clamps", "-3", "0", Page{Page: 1, Limit: 10}},
		{"garbage", "x", "y", Page{Page: 1, Limit: 10}},
		{"capped", "1", "1000", Page{Page: 1, Limit: 100}},
		{"huge page", "9223372036854775807", "100", Page{Page: MaxPage, Limit: 100}},
		{"page out of range", "99999999999999999999", "5", Page{Page: 1, Limit: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParsePage(tc.page, tc.limit, 10, 100))
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(Page{Page: 2, Limit: 1}, 3)
	assert.Equal(t, Pagination{Page: 2, Limit: 1, Total: 3, TotalPages: 3}, p)

	p = NewPagination(Page{Page: 1, Limit: 10}, 21)
	assert.EqualValues(t, 3, p.TotalPages)

	p = NewPagination(Page{Page: 1, Limit: 10}, 0)
	assert.EqualValues(t, 0, p.TotalPages)

	assert.Equal(t, 10, Page{Page: 2, Limit: 10}.Offset())

	huge := ParsePage("9223372036854775807", "100", 10, 100)
	assert.Positive(t, huge.Offset())
}
