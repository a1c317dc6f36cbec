// file: internals/features/gym/class_sessions/service/occurrence.go
package service

import (
	"time"

	"gymku_backend/internals/helpers/dbtime"
)

const (
	// Kejadian hari ini masih dihitung sampai start + OccurrenceGrace.
	OccurrenceGrace = 30 * time.Minute
	// Booking ditutup kalau sisa waktu ke start < BookingCutoff.
	BookingCutoff = 30 * time.Minute
)

// NextOccurrenceDate: tanggal terkecil >= hari ini (jam dinding gym) dengan
// weekday = dayOfWeek. Hasil = 00:00 lokal di loc.
func NextOccurrenceDate(now time.Time, loc *time.Location, dayOfWeek int, start dbtime.Tod) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	today := dbtime.StartOfDay(local)

	delta := (dayOfWeek - int(local.Weekday()) + 7) % 7
	d := today.AddDate(0, 0, delta)
	if delta == 0 && local.After(start.OnDate(d).Add(OccurrenceGrace)) {
		d = d.AddDate(0, 0, 7)
	}
	return d
}

// OccurrenceStart: tanggal kejadian + jam mulai, di zona gym.
func OccurrenceStart(date time.Time, loc *time.Location, start dbtime.Tod) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return start.OnDate(date.In(loc))
}

// BookingClosesAt: batas akhir booking untuk kejadian yang mulai pada startsAt.
func BookingClosesAt(startsAt time.Time) time.Time {
	return startsAt.Add(-BookingCutoff)
}

// IsEnrollable: masih ada minimal BookingCutoff sebelum mulai.
func IsEnrollable(now, startsAt time.Time) bool {
	return startsAt.Sub(now) >= BookingCutoff
}

func ValidDayOfWeek(d int) bool { return d >= 0 && d <= 6 }
