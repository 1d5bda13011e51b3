package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	ID   string
	Body string
}

func newRecordStore() *Store[record] {
	return New(func(r record) string { return r.ID })
}

func TestAppendKeepsArrivalOrder(t *testing.T) {
	s := newRecordStore()

	assert.True(t, s.Append(record{ID: "a", Body: "first"}))
	assert.True(t, s.Append(record{ID: "b", Body: "second"}))
	assert.True(t, s.Append(record{ID: "c", Body: "third"}))

	items := s.Items()
	assert.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestAppendDuplicateUpdatesInPlace(t *testing.T) {
	s := newRecordStore()

	s.Append(record{ID: "a", Body: "first"})
	s.Append(record{ID: "b", Body: "second"})

	// Same ID again: the item updates but does not move or duplicate.
	assert.False(t, s.Append(record{ID: "a", Body: "revised"}))

	items := s.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "revised", items[0].Body)
}

func TestUpdateMissing(t *testing.T) {
	s := newRecordStore()
	assert.False(t, s.Update("nope", func(r record) record { return r }))
}

func TestUpdateKeepsPosition(t *testing.T) {
	s := newRecordStore()
	s.Append(record{ID: "a", Body: "first"})
	s.Append(record{ID: "b", Body: "second"})

	ok := s.Update("a", func(r record) record {
		r.Body = "patched"
		return r
	})
	assert.True(t, ok)

	items := s.Items()
	assert.Equal(t, "patched", items[0].Body)
}

func TestRemove(t *testing.T) {
	s := newRecordStore()
	s.Append(record{ID: "a"})
	s.Append(record{ID: "b"})

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))

	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)
}
