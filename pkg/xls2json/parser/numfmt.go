package parser

import "github.com/TsubasaBE/go-xlsb"

// builtinTimeFormats are the built-in time-of-day formats (h:mm AM/PM,
// h:mm:ss AM/PM, h:mm, h:mm:ss) that xlsb.IsDateFormat leaves out.
var builtinTimeFormats = map[int]bool{18: true, 19: true, 20: true, 21: true}

// isDateFormat reports whether a number format renders its value as a date
// or time. custom is the format code for ids outside the built-in range.
func isDateFormat(numFmtID int, custom string) bool {
	if builtinTimeFormats[numFmtID] {
		return true
	}
	return xlsb.IsDateFormat(numFmtID, custom)
}
