package ticketpdf

import (
	"bytes"
	"testing"

	"github.com/maritalgrace/tickets-backend/pkg/config"
)

func testEvent() config.EventConfig {
	return config.EventConfig{
		Name:      "MARITAL GRACE",
		Tagline:   "THE KEY TO 32 YEARS OF MARRIAGE",
		Date:      "14.03.2026",
		Time:      "9:00am",
		Location:  "63 Langrand Road, Vereeniging, 1929",
		Venue:     "The Synagogues JWC",
		ImagePath: "testdata/does-not-exist.png",
	}
}

func TestRenderWithoutImageAsset(t *testing.T) {
	t.Parallel()

	r := NewRenderer(testEvent())
	out, err := r.Render(TicketData{
		Reference: "MG-0A1B2C3D",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Dube",
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("rendered ticket is empty")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header")
	}
}

func TestBarcodeSeedIsStablePerReference(t *testing.T) {
	t.Parallel()

	if barcodeSeed("MG-11223344") != barcodeSeed("MG-11223344") {
		t.Fatalf("seed must be stable for the same reference")
	}
	if barcodeSeed("MG-11223344") == barcodeSeed("MG-AABBCCDD") {
		t.Fatalf("different references should not share a barcode seed")
	}
}

func TestRenderSingleWordTitle(t *testing.T) {
	t.Parallel()

	event := testEvent()
	event.Name = "GRACE"
	r := NewRenderer(event)

	out, err := r.Render(TicketData{Reference: "MG-AAAAAAAA", Email: "a@b.c", Quantity: 1})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("rendered ticket is empty")
	}
}
