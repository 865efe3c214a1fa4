package itinerary

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"tripcraft/models"
)

// SharePayload signs the request parameters so a scanned code can rebuild
// the trip: startDate|days|budget|passengers|start|end|unix|signature.
func SharePayload(secret []byte, req models.ItineraryRequest, now time.Time) string {
	data := strings.Join([]string{
		req.StartDate,
		strconv.Itoa(req.Days),
		strconv.Itoa(req.BudgetPerPerson),
		strconv.Itoa(req.PassengerCount()),
		req.StartRegion,
		req.FinalRegion(),
		strconv.FormatInt(now.Unix(), 10),
	}, "|")
	return data + "|" + sign(secret, data)
}

// VerifySharePayload checks the trailing signature.
func VerifySharePayload(secret []byte, payload string) bool {
	i := strings.LastIndex(payload, "|")
	if i < 0 {
		return false
	}
	want := sign(secret, payload[:i])
	return hmac.Equal([]byte(want), []byte(payload[i+1:]))
}

func sign(secret []byte, data string) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// renderPDF lays the itinerary out as a single A4 table. Core PDF fonts are
// Latin-1 only, so it is always rendered from an English itinerary.
func renderPDF(it *models.Itinerary, payload string) ([]byte, error) {
	qrPNG, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Trip: %s to %s", it.StartRegion, it.EndRegion)))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Per person: %d AMD   Group: %d AMD", it.Totals.PerPerson, it.Totals.Group))
	pdf.Ln(8)
	budget := "within budget"
	if !it.Totals.WithinBudget {
		budget = "over budget"
	}
	pdf.Cell(0, 8, budget)
	pdf.Ln(20)

	widths := []float64{12, 26, 30, 70, 26, 26}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range []string{"Day", "Date", "Region", "Plan", "Transport", "Per person"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, d := range it.Items {
		row := []string{
			strconv.Itoa(d.Day),
			d.Date.Format("2006-01-02"),
			d.Region,
			dayPlan(d),
			transportLabel(d.Transport),
			strconv.Itoa(d.CostPerPerson),
		}
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, tr(truncate(v, 48)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func dayPlan(d models.ItineraryDay) string {
	switch {
	case d.Event != nil:
		return d.Event.Title
	case d.Attraction != nil:
		return d.Attraction.Title
	default:
		return "Free day"
	}
}

func transportLabel(t *models.Transport) string {
	if t == nil {
		return ""
	}
	return t.Mode
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
