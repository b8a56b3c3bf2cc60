package ocr

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"airportbot/internal/domain/models"
)

const mrzLineLen = 44

// ParsePassportText extracts passport fields from OCR output. Free text lines
// give a first guess; a readable TD3 machine readable zone overrides it.
func ParsePassportText(text string) models.PassportData {
	var p models.PassportData
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	for _, line := range lines {
		switch {
		case strings.Contains(line, "PASSPORT"):
			fields := strings.Fields(line)
			if last := fields[len(fields)-1]; hasDigit(last) {
				p.PassportNumber = last
			}
		case strings.Contains(line, "Name"):
			parts := strings.Split(line, "Name")
			name := strings.TrimSpace(parts[len(parts)-1])
			p.FullName = strings.TrimSpace(strings.TrimLeft(name, ":"))
		}
	}

	if l1, l2, ok := findMRZ(lines); ok {
		applyMRZ(&p, l1, l2)
	}
	return p
}

func findMRZ(lines []string) (string, string, bool) {
	var cand []string
	for _, raw := range lines {
		l := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
		if len(l) == mrzLineLen && isMRZ(l) {
			cand = append(cand, l)
		}
	}
	for i := 0; i+1 < len(cand); i++ {
		if strings.HasPrefix(cand[i], "P") {
			return cand[i], cand[i+1], true
		}
	}
	return "", "", false
}

func applyMRZ(p *models.PassportData, l1, l2 string) {
	names := strings.SplitN(l1[5:], "<<", 2)
	surname := mrzWords(names[0])
	given := ""
	if len(names) == 2 {
		given = mrzWords(names[1])
	}
	if full := strings.TrimSpace(given + " " + surname); full != "" {
		p.FullName = full
	}
	if issuer := strings.Trim(l1[2:5], "<"); issuer != "" {
		p.IssuingAuthority = issuer
	}

	number := l2[0:9]
	if checkDigit(number) == l2[9] {
		p.PassportNumber = strings.Trim(number, "<")
	}
	if nat := strings.Trim(l2[10:13], "<"); nat != "" {
		p.Nationality = nat
	}
	if checkDigit(l2[13:19]) == l2[19] {
		p.DateOfBirth = mrzDate(l2[13:19], false)
	}
	if checkDigit(l2[21:27]) == l2[27] {
		p.DateOfExpiry = mrzDate(l2[21:27], true)
	}
}

func mrzWords(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == '<' }), " ")
}

// mrzDate turns YYMMDD into YYYY/MM/DD. Expiry dates are always this century;
// birth years in the future belong to the previous one.
func mrzDate(s string, expiry bool) string {
	t, err := time.Parse("060102", s)
	if err != nil {
		return ""
	}
	y := t.Year()%100 + 2000
	if !expiry && y > time.Now().Year() {
		y -= 100
	}
	return fmt.Sprintf("%04d/%02d/%02d", y, int(t.Month()), t.Day())
}

// checkDigit is the ICAO 9303 7-3-1 weighted checksum.
func checkDigit(s string) byte {
	weights := [3]int{7, 3, 1}
	sum := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c >= 'A' && c <= 'Z':
			v = int(c-'A') + 10
		}
		sum += v * weights[i%3]
	}
	return byte('0' + sum%10)
}

func isMRZ(s string) bool {
	for _, r := range s {
		if !(r == '<' || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
