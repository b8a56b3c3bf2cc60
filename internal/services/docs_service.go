package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/phpdave11/gofpdf"

	"airportbot/internal/domain/models"
	"airportbot/internal/repositories"
	"airportbot/internal/utils"
)

// DocsService renders a trip itinerary PDF. Without a UTF-8 font file,
// characters outside Latin-1 print as '?'.
type DocsService struct {
	Repo      repositories.TripRepository
	FontPath  string
	RequestID string
	Loader    func(ctx context.Context, tripID string) (models.Trip, error)
}

const itineraryFont = "bina"

func (s DocsService) GenerateItinerary(ctx context.Context, tripID string) ([]byte, string, error) {
	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_itinerary", "trip_id="+tripID)
	return buildItineraryPDF(trip, s.FontPath)
}

func (s DocsService) loadTrip(ctx context.Context, tripID string) (models.Trip, error) {
	if s.Loader != nil {
		return s.Loader(ctx, tripID)
	}
	return TripService{Repo: s.Repo, RequestID: s.RequestID}.Get(ctx, tripID)
}

func buildItineraryPDF(t models.Trip, fontPath string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Itinerary", false)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	family, text := "Helvetica", func(s string) string { return tr(latin1(s)) }
	if fontPath != "" {
		pdf.AddUTF8Font(itineraryFont, "", fontPath)
		if pdf.Err() {
			utils.Logger().Sugar().Warnf("pdf font %s unusable: %v", fontPath, pdf.Error())
			pdf.ClearError()
		} else {
			family, text = itineraryFont, func(s string) string { return s }
		}
	}
	bold := "B"
	if family == itineraryFont {
		bold = ""
	}

	pdf.AddPage()
	pdf.SetFont(family, bold, 18)
	pdf.Cell(0, 10, "TRIP ITINERARY")
	pdf.Ln(12)

	pdf.SetFont(family, "", 12)
	lines := []string{
		fmt.Sprintf("Trip ID        : %s", t.ID),
		fmt.Sprintf("Airport        : %s", safe(t.AirportName, "-")),
		fmt.Sprintf("Flight         : %s", safe(t.FlightNumber, "-")),
		fmt.Sprintf("Date           : %s", safe(t.TravelDate, "-")),
		fmt.Sprintf("Direction      : %s", safe(t.TravelType, "-")),
		fmt.Sprintf("Class          : %s", safe(flightClassLabel(t.FlightType), "-")),
		fmt.Sprintf("Passengers     : %d", t.PassengerCount),
	}
	if t.OrderID != "" {
		lines = append(lines, fmt.Sprintf("Order          : %s", t.OrderID))
	}
	if t.BuyerName != "" {
		lines = append(lines, fmt.Sprintf("Booked by      : %s %s", t.BuyerName, t.BuyerPhone))
	}
	for _, l := range lines {
		pdf.Cell(0, 7, text(l))
		pdf.Ln(7)
	}

	if len(t.Passengers) > 0 {
		pdf.Ln(4)
		pdf.SetFont(family, bold, 12)
		pdf.Cell(0, 7, "Passengers:")
		pdf.Ln(8)
		pdf.SetFont(family, "", 11)
		for i, p := range t.Passengers {
			doc := utils.FirstNonEmpty(p.PassportNumber, p.NationalID, "-")
			row := fmt.Sprintf("%d) %s  [%s]  %s  bags: %d", i+1, safe(p.FullName, "-"), p.PassengerType, doc, p.LuggageCount)
			pdf.MultiCell(0, 6, text(row), "", "", false)
		}
	}

	if t.AdditionalInfo != "" {
		pdf.Ln(4)
		pdf.SetFont(family, "", 10)
		pdf.MultiCell(0, 6, text("Notes: "+t.AdditionalInfo), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ITINERARY_%s_%s.pdf", safeFilenamePart(t.FlightNumber), safeFilenamePart(t.TravelDate))
	return buf.Bytes(), filename, nil
}

func flightClassLabel(v string) string {
	switch v {
	case models.FlightTypeClassA:
		return "Class A"
	case models.FlightTypeClassB:
		return "Class B"
	}
	return v
}

func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxLatin1 {
			return '?'
		}
		return r
	}, s)
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

// safeFilenamePart keeps ASCII letters, digits, '-' and '.'; every other rune
// becomes '_' so the result is safe inside a Content-Disposition header.
func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.', r == '_':
			return r
		}
		return '_'
	}, s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
