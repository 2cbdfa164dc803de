package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageQuery_Normalize(t *testing.T) {
	q := PageQuery{}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)

	q = PageQuery{Page: -3, Limit: 1000}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 100, q.Limit)

	q = PageQuery{Page: 4, Limit: 25}
	q.Normalize()
	assert.Equal(t, 4, q.Page)
	assert.Equal(t, 25, q.Limit)
	assert.Equal(t, 75, q.Offset())
}

func TestNewPage(t *testing.T) {
	p := NewPage(0, 1, 10, []int{})
	assert.Equal(t, 0, p.TotalPages)

	p = NewPage(25, 2, 10, []int{1, 2})
	assert.Equal(t, 25, p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPage(30, 1, 10, nil)
	assert.Equal(t, 3, p.TotalPages)
}
