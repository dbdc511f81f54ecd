package ticketpdf

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math/rand"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/maritalgrace/tickets-backend/pkg/config"
)

// Page geometry in points: one long rectangular stub, matching the printed
// design. All drawing coordinates below are fixed against this size.
const (
	pageWidth  = 800.0
	pageHeight = 250.0

	imageX, imageY          = 20.0, 25.0
	imageWidth, imageHeight = 180.0, 200.0

	perforationX = 600.0
	stubOriginX  = 750.0
	stubOriginY  = 125.0
	barcodeBars  = 50
)

// TicketData is everything printed on one ticket.
type TicketData struct {
	Reference string
	Email     string
	FirstName string
	LastName  string
	Quantity  int
}

// Renderer draws fixed-layout event tickets.
type Renderer struct {
	event config.EventConfig
}

// NewRenderer builds a renderer for the configured event.
func NewRenderer(event config.EventConfig) *Renderer {
	return &Renderer{event: event}
}

// Render produces the finished PDF as an in-memory buffer. A missing image
// asset degrades to an empty framed box; it never fails the render.
func (r *Renderer) Render(data TicketData) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Cream background.
	pdf.SetFillColor(242, 239, 233)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	r.drawImageBlock(pdf)
	r.drawTitleBlock(pdf)
	r.drawDetailsGrid(pdf)
	r.drawPerforation(pdf)
	r.drawStub(pdf, data)

	if pdf.Err() {
		return nil, fmt.Errorf("rendering ticket: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering ticket: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawImageBlock(pdf *fpdf.Fpdf) {
	path := strings.TrimSpace(r.event.ImagePath)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			pdf.ImageOptions(path, imageX, imageY, imageWidth, 0, false, fpdf.ImageOptions{}, 0, "")
			if !pdf.Err() {
				return
			}
			// An unreadable or malformed asset must not kill the ticket.
			pdf.ClearError()
		}
	}
	pdf.SetDrawColor(204, 204, 204)
	pdf.SetLineWidth(1)
	pdf.Rect(imageX, imageY, imageWidth, imageHeight, "D")
}

func (r *Renderer) drawTitleBlock(pdf *fpdf.Fpdf) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(230, 52, "EVENT TICKET")

	first, rest := splitTitle(r.event.Name)
	pdf.SetTextColor(168, 50, 54)
	pdf.SetFont("Times", "BI", 45)
	pdf.Text(230, 108, first)
	if rest != "" {
		pdf.Text(230, 153, rest)
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(230, 174, r.event.Tagline)
}

func (r *Renderer) drawDetailsGrid(pdf *fpdf.Fpdf) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1)
	pdf.Line(220, 185, 580, 185)
	pdf.Line(220, 215, 580, 215)
	pdf.Line(220, 245, 580, 245)
	pdf.Line(500, 185, 500, 245)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(230, 205, r.event.Venue)
	pdf.Text(510, 205, r.event.Date)
	pdf.Text(230, 235, r.event.Location)
	pdf.Text(510, 235, r.event.Time)
}

func (r *Renderer) drawPerforation(pdf *fpdf.Fpdf) {
	// Cutout half-circles at the page edges.
	pdf.SetFillColor(249, 247, 242)
	pdf.Circle(perforationX, 0, 20, "F")
	pdf.Circle(perforationX, pageHeight, 20, "F")

	pdf.SetFillColor(0, 0, 0)
	for y := 20.0; y < 230; y += 15 {
		pdf.Circle(perforationX, y, 3, "F")
	}
}

func (r *Renderer) drawStub(pdf *fpdf.Fpdf, data TicketData) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.TransformBegin()
	pdf.TransformRotate(90, stubOriginX, stubOriginY)
	pdf.Text(640, 124, fmt.Sprintf("TICKET NUMBER:  %s", data.Reference))
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(640, 142, fmt.Sprintf("ADMIT: %d", data.Quantity))
	pdf.TransformEnd()

	// Simulated barcode. Bar widths are derived from the reference so the
	// same ticket always renders the same bytes.
	rnd := rand.New(rand.NewSource(barcodeSeed(data.Reference)))
	pdf.SetFillColor(0, 0, 0)
	for i := 0; i < barcodeBars; i++ {
		w := rnd.Float64() * 3
		pdf.Rect(660+float64(i)*2.5, 40, w, 140, "F")
	}
}

func splitTitle(name string) (string, string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ""
	}
	parts := strings.SplitN(trimmed, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func barcodeSeed(reference string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(reference))
	return int64(h.Sum64())
}
