package catalog

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// BookingSource is the acquisition channel a booking came through.
type BookingSource string

const (
	SourceDirect      BookingSource = "direct"
	SourcePartner     BookingSource = "partner"
	SourceSocial      BookingSource = "social"
	SourceMarketplace BookingSource = "marketplace"
)

func (bs BookingSource) String() string {
	return string(bs)
}

func (bs BookingSource) IsValid() bool {
	switch bs {
	case SourceDirect, SourcePartner, SourceSocial, SourceMarketplace:
		return true
	default:
		return false
	}
}

// AllBookingSources returns the sources in their fixed presentation order.
// The dashboard pie chart depends on this ordering.
func AllBookingSources() []BookingSource {
	return []BookingSource{SourceDirect, SourcePartner, SourceSocial, SourceMarketplace}
}
