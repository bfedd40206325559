package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMap_InsertionOrder(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("2024-03", 1)
	m.Set("2023-12", 2)
	m.Set("2024-01", 3)
	m.Set("2024-03", 10)

	assert.Equal(t, []string{"2024-03", "2023-12", "2024-01"}, m.Keys())
	assert.Equal(t, 3, m.Len())

	v, ok := m.Get("2024-03")
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestOrderedMap_KeysIsACopy(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	keys := m.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, m.Keys())
}

func TestOrderedMap_Each(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("b", 2)
	m.Set("a", 1)

	var seen []string
	m.Each(func(k string, v int) {
		seen = append(seen, k)
	})
	assert.Equal(t, []string{"b", "a"}, seen)
}
