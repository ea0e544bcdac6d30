// Package encoding implements the packed date/time codecs of the TDX wire
// format.
//
// The protocol uses three independent packings, selected by the bar category
// or record type of the surrounding message, never by sniffing the data:
//
//   - intraday bars: two 16-bit words, a packed calendar day and
//     minutes-since-midnight (ReadIntradayTime)
//   - daily-or-coarser bars: one 32-bit decimal-packed YYYYMMDD word with the
//     time fixed at the 15:00 market close (ReadDailyTime)
//   - tick records: one 16-bit minutes-since-midnight word (ReadTimeOfDay)
//
// Wire values are exchange-local wall clock with no zone information; decoded
// time.Time values carry time.UTC as a neutral marker.
package encoding

import (
	"fmt"
	"time"

	"github.com/mwquote/tdx/bitstream"
)

// intradayEpochYear is the year encoded as zero in the packed day word.
const intradayEpochYear = 2004

// ReadIntradayTime decodes the two-word intraday bar timestamp.
//
// Word 1 ("zipday") holds the year offset from 2004 in its upper 5 bits and
// month*100+day in the low 11 bits. Word 2 is minutes since midnight.
func ReadIntradayTime(r *bitstream.Reader) (time.Time, error) {
	zipday, err := r.Uint16()
	if err != nil {
		return time.Time{}, err
	}
	tminutes, err := r.Uint16()
	if err != nil {
		return time.Time{}, err
	}

	year := int(zipday>>11) + intradayEpochYear
	monthDay := int(zipday % 2048)

	return time.Date(year, time.Month(monthDay/100), monthDay%100,
		int(tminutes/60), int(tminutes%60), 0, 0, time.UTC), nil
}

// ReadDailyTime decodes the one-word daily bar timestamp: a decimal-packed
// YYYYMMDD with the time of day fixed at the 15:00 close.
func ReadDailyTime(r *bitstream.Reader) (time.Time, error) {
	zipday, err := r.Uint32()
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(int(zipday/10000), time.Month(zipday%10000/100), int(zipday%100),
		15, 0, 0, 0, time.UTC), nil
}

// TimeOfDay is a wall-clock time within a trading day, as carried by tick
// records.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ReadTimeOfDay decodes the one-word minutes-since-midnight tick timestamp.
func ReadTimeOfDay(r *bitstream.Reader) (TimeOfDay, error) {
	tminutes, err := r.Uint16()
	if err != nil {
		return TimeOfDay{}, err
	}

	return TimeOfDay{Hour: int(tminutes / 60), Minute: int(tminutes % 60)}, nil
}
