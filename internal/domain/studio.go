package domain

import (
	"time"
)

// Stat channels recognized by the catalog. The JSON keys are the wire
// contract of the stats column and must not change.
const (
	ChannelViews          = "views"
	ChannelPhoneViews     = "phoneViews"
	ChannelAddressViews   = "addressViews"
	ChannelInstagramViews = "instagramViews"
	ChannelWhatsappViews  = "whatsappViews"
)

// Stats holds the per-channel engagement counters of a studio. Every
// channel is always present and defaults to 0, so readers never need
// existence checks. Counters are increment-only.
type Stats struct {
	Views          int64 `json:"views"`
	PhoneViews     int64 `json:"phoneViews"`
	AddressViews   int64 `json:"addressViews"`
	InstagramViews int64 `json:"instagramViews"`
	WhatsappViews  int64 `json:"whatsappViews"`
}

// Get returns the counter for a channel name, or false for an unknown channel.
func (s Stats) Get(channel string) (int64, bool) {
	switch channel {
	case ChannelViews:
		return s.Views, true
	case ChannelPhoneViews:
		return s.PhoneViews, true
	case ChannelAddressViews:
		return s.AddressViews, true
	case ChannelInstagramViews:
		return s.InstagramViews, true
	case ChannelWhatsappViews:
		return s.WhatsappViews, true
	}
	return 0, false
}

// Set overwrites the counter for a channel name. Unknown channels are
// ignored; callers validate with Get first.
func (s *Stats) Set(channel string, count int64) {
	switch channel {
	case ChannelViews:
		s.Views = count
	case ChannelPhoneViews:
		s.PhoneViews = count
	case ChannelAddressViews:
		s.AddressViews = count
	case ChannelInstagramViews:
		s.InstagramViews = count
	case ChannelWhatsappViews:
		s.WhatsappViews = count
	}
}

// Total is the single place the five-channel sum is computed.
func (s Stats) Total() int64 {
	return s.Views + s.PhoneViews + s.AddressViews + s.InstagramViews + s.WhatsappViews
}

// Channels lists the recognized channel names in display order.
func Channels() []string {
	return []string{
		ChannelViews,
		ChannelPhoneViews,
		ChannelAddressViews,
		ChannelInstagramViews,
		ChannelWhatsappViews,
	}
}

// Contact carries the optional contact fields of a studio. The schema
// gained fields over time (email first, whatsapp later), so the
// superset is stored and every field is optional.
type Contact struct {
	Phone     string `json:"phone"`
	Whatsapp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
	Email     string `json:"email"`
}

type Studio struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" validate:"required"`
	Address     string    `json:"address" validate:"required"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Images      []string  `json:"images" gorm:"serializer:json;type:jsonb;default:'[]'"`
	Features    []string  `json:"features" gorm:"serializer:json;type:jsonb;default:'[]'"`
	Contact     Contact   `json:"contact" gorm:"serializer:json;type:jsonb"`
	Stats       Stats     `json:"stats" gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Studio) TableName() string { return "studios" }

// Clone returns a deep copy so cache snapshots never alias the slices
// held by the store.
func (s *Studio) Clone() *Studio {
	out := *s
	out.Images = append([]string(nil), s.Images...)
	out.Features = append([]string(nil), s.Features...)
	return &out
}
