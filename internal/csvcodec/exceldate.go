package csvcodec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// yearMarker is the kanji year marker of an already-formatted arrival
// period such as "2024年5月".
const yearMarker = "年"

// secondsPerDay in the serial date arithmetic.
const secondsPerDay = 86400

// Excel serial 1 is 1900-01-01, which sits 25567 days before the Unix
// epoch. Serials past 59 carry the phantom 1900-02-29 of the legacy
// spreadsheet format and need a one-day correction.
const (
	epochOffsetDays = 25568
	leapBugSerial   = 59
)

// ConvertExcelSerialDate turns a spreadsheet serial day count into a
// "<year>年<month>月" arrival period. Empty input yields nil, input that
// already carries the year marker is returned as-is, and anything that is
// not a positive integer is returned trimmed but otherwise unchanged so
// free-text periods survive import.
func ConvertExcelSerialDate(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if strings.Contains(value, yearMarker) {
		return &value
	}

	trimmed := strings.TrimSpace(value)
	serial, err := strconv.Atoi(trimmed)
	if err != nil || serial <= 0 {
		return &trimmed
	}

	days := serial
	if serial > leapBugSerial {
		days--
	}

	t := time.Unix(int64(days-epochOffsetDays)*secondsPerDay, 0).UTC()
	formatted := fmt.Sprintf("%d年%d月", t.Year(), int(t.Month()))

	return &formatted
}
