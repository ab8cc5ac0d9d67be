// backend/src/parsers/factory.go
package parsers

import (
	"fmt"

	"github.com/username/tourdesk/backend/src/models"
	"github.com/username/tourdesk/backend/src/parsers/getyourguide"
	"github.com/username/tourdesk/backend/src/parsers/klook"
	"github.com/username/tourdesk/backend/src/parsers/viator"
)

// GetParser returns the adapter for the declared platform.
func GetParser(platform models.PlatformKey) (Parser, error) {
	switch platform {
	case models.PlatformKlook:
		return klook.NewParser(), nil
	case models.PlatformViator:
		return viator.NewParser(), nil
	case models.PlatformGetYourGuide:
		return getyourguide.NewParser(), nil
	default:
		return nil, fmt.Errorf("no parser available for platform: %s", platform)
	}
}
