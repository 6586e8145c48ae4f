package ticket

import (
	"bytes"
	"fmt"

	"github.com/ncastro/riobook/internal/domain"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Render produces a printable A4 ticket for a booking with a QR code
// carrying the booking ID.
func Render(b *domain.Booking, t *domain.Trip, operatorName string) ([]byte, error) {
	qr, err := qrcode.Encode(b.ID, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Boarding Pass")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 12)
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(45, 8, label)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, value)
		pdf.Ln(8)
	}

	line("Booking", b.ID)
	line("Operator", operatorName)
	line("Route", fmt.Sprintf("%s - %s", t.Origin, t.Destination))
	line("Departure", t.Departure.String())
	line("Arrival", t.Arrival.String())
	line("Travel date", b.TravelDate.Format("2006-01-02"))
	line("Passenger", b.PassengerName)
	line("Passengers", fmt.Sprintf("%d", b.Passengers))
	line("Total", fmt.Sprintf("$U %d.%02d", b.TotalPrice/100, b.TotalPrice%100))
	line("Status", string(b.Status))

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qr))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
