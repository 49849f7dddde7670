package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsGetSet(t *testing.T) {
	var s Stats
	for _, ch := range Channels() {
		v, ok := s.Get(ch)
		assert.True(t, ok)
		assert.Equal(t, int64(0), v)

		s.Set(ch, 2)
		v, _ = s.Get(ch)
		assert.Equal(t, int64(2), v)
	}

	_, ok := s.Get("bogus")
	assert.False(t, ok)
}

func TestStatsTotal(t *testing.T) {
	s := Stats{Views: 1, PhoneViews: 2, AddressViews: 3, InstagramViews: 4, WhatsappViews: 5}
	assert.Equal(t, int64(15), s.Total())
	assert.Equal(t, int64(0), Stats{}.Total())
}

func TestStatsJSONKeys(t *testing.T) {
	raw, err := json.Marshal(Stats{PhoneViews: 1})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"views":0,"phoneViews":1,"addressViews":0,"instagramViews":0,"whatsappViews":0}`, string(raw))
}

func TestStudioClone(t *testing.T) {
	s := &Studio{ID: 1, Images: []string{"a"}, Features: []string{"b"}}
	c := s.Clone()
	c.Images[0] = "changed"
	c.Features = append(c.Features, "c")

	assert.Equal(t, "a", s.Images[0])
	assert.Len(t, s.Features, 1)
}
