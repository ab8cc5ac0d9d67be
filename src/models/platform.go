package models

// PlatformKey identifies one of the supported third-party sales platforms.
// The set is closed: adding a platform means adding a parser adapter and a
// new constant here.
type PlatformKey string

const (
	PlatformKlook        PlatformKey = "klook"
	PlatformViator       PlatformKey = "viator"
	PlatformGetYourGuide PlatformKey = "getyourguide"
)

// SupportedPlatforms returns the closed set of platforms in display order.
func SupportedPlatforms() []PlatformKey {
	return []PlatformKey{PlatformKlook, PlatformViator, PlatformGetYourGuide}
}

// Valid reports whether p is one of the supported platforms.
func (p PlatformKey) Valid() bool {
	switch p {
	case PlatformKlook, PlatformViator, PlatformGetYourGuide:
		return true
	}
	return false
}

func (p PlatformKey) String() string { return string(p) }
