// Package clock converts between civil date/time pairs in a fixed named
// timezone and absolute UTC instants.
//
// Offsets are pinned in an explicit table instead of going through the
// platform tz database: string-to-date parsing is locale- and
// environment-dependent, and the round trip ToInstant(ToCivilParts(x)) == x
// must hold regardless of host configuration. The reference deployment zone
// (America/Sao_Paulo) has not observed daylight saving since 2019.
package clock

import (
	"fmt"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/apperrors"
	"github.com/Leandrogm81/Compromissos/internal/constants"
)

// zoneOffsets maps supported IANA zone names to their fixed UTC offset in
// seconds. Only zones without DST belong here.
var zoneOffsets = map[string]int{
	"UTC":               0,
	"America/Sao_Paulo": -3 * 3600,
	"America/Recife":    -3 * 3600,
	"America/Fortaleza": -3 * 3600,
	"America/Manaus":    -4 * 3600,
	"America/Rio_Branco": -5 * 3600,
}

const civilLayout = constants.DateFormat + " " + constants.TimeFormat

// FixedLocation returns a fixed-offset *time.Location for a supported zone.
func FixedLocation(zoneID string) (*time.Location, error) {
	offset, ok := zoneOffsets[zoneID]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported timezone %q", apperrors.ErrInvalidDateTime, zoneID)
	}
	if offset == 0 {
		return time.UTC, nil
	}
	return time.FixedZone(zoneID, offset), nil
}

// Supported reports whether the zone has a pinned offset.
func Supported(zoneID string) bool {
	_, ok := zoneOffsets[zoneID]
	return ok
}

// ToInstant composes a civil date (YYYY-MM-DD) and wall time (HH:MM) in the
// given zone into a UTC instant. Parts that do not form a real calendar
// moment (Feb 31, 25:00) fail with ErrInvalidDateTime.
func ToInstant(date, wallTime, zoneID string) (time.Time, error) {
	loc, err := FixedLocation(zoneID)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.ParseInLocation(civilLayout, date+" "+wallTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q in %s: %v", apperrors.ErrInvalidDateTime, date, wallTime, zoneID, err)
	}

	return t.UTC(), nil
}

// ToCivilParts projects an instant into zone-local date and time strings for
// editing and display.
func ToCivilParts(instant time.Time, zoneID string) (date, wallTime string, err error) {
	loc, err := FixedLocation(zoneID)
	if err != nil {
		return "", "", err
	}

	local := instant.In(loc)
	return local.Format(constants.DateFormat), local.Format(constants.TimeFormat), nil
}
