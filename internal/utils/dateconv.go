package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"ژانویه":    time.January,
	"فوریه":     time.February,
	"مارس":      time.March,
	"آوریل":     time.April,
	"مه":        time.May,
	"ژوئن":      time.June,
	"ژوئیه":     time.July,
	"اوت":       time.August,
	"سپتامبر":   time.September,
	"اکتبر":     time.October,
	"نوامبر":    time.November,
	"دسامبر":    time.December,
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

var digitReplacer = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

var (
	namedDatePattern  = regexp.MustCompile(`(\d{1,2})\s+(\S+)\s+(\d{4})`)
	numericStrip      = regexp.MustCompile(`[^\d/.\-]`)
	numericYearFirst  = regexp.MustCompile(`(\d{4})[/.\-](\d{1,2})[/.\-](\d{1,2})`)
	numericYearLast   = regexp.MustCompile(`(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})`)
	englishDateLayout = []string{
		"January 2, 2006",
		"2 January 2006",
		"2/1/2006",
		"1/2/2006",
		"2006-1-2",
		"2-1-2006",
		"1-2-2006",
	}
)

// PersianDigitsToASCII rewrites Persian and Arabic-Indic digits as 0-9.
func PersianDigitsToASCII(s string) string {
	return digitReplacer.Replace(s)
}

// ConvertToStandardDate normalizes a free-form travel date to YYYY/MM/DD.
// Input that cannot be parsed is returned unchanged; blank input yields "".
func ConvertToStandardDate(input string) string {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return ""
	}
	s := PersianDigitsToASCII(raw)

	if t, ok := parseNamedDate(s); ok {
		return t.Format(LayoutTravelDate)
	}
	if t, ok := parseEnglishDate(s); ok {
		return t.Format(LayoutTravelDate)
	}
	if t, ok := parseNumericDate(s); ok {
		return t.Format(LayoutTravelDate)
	}
	return raw
}

// ValidateDate reports whether input converts to a real calendar date.
func ValidateDate(input string) bool {
	converted := ConvertToStandardDate(input)
	if converted == "" || converted == strings.TrimSpace(input) {
		return false
	}
	_, err := time.Parse(LayoutTravelDate, converted)
	return err == nil
}

func parseNamedDate(s string) (time.Time, bool) {
	m := namedDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthNames[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	return makeDate(year, month, day)
}

func parseEnglishDate(s string) (time.Time, bool) {
	for _, layout := range englishDateLayout {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseNumericDate(s string) (time.Time, bool) {
	cleaned := numericStrip.ReplaceAllString(s, "")
	if m := numericYearFirst.FindStringSubmatch(cleaned); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 && year >= 1900 {
			return makeDate(year, time.Month(month), day)
		}
	}
	if m := numericYearLast.FindStringSubmatch(cleaned); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 && year >= 1900 {
			return makeDate(year, time.Month(month), day)
		}
	}
	return time.Time{}, false
}

// makeDate rejects days that time.Date would roll into the next month.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
