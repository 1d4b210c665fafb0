package label

import (
	"fmt"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
)

const (
	// Placeholder replaces any absent value on a label.
	Placeholder = "N/A"
	// NotesPlaceholder replaces absent delivery notes.
	NotesPlaceholder = "None"
	// BarcodePlaceholder is encoded when a stop has no order id.
	BarcodePlaceholder = "STOP"
	// SummaryStopLimit is the number of stops listed on a route summary.
	SummaryStopLimit = 5

	marginX   = 50
	ruleWidth = 700
	lineStep  = 40
)

// PrintJob is the ordered sequence of documents printed for one route.
type PrintJob struct {
	RouteID   string
	Documents []Document
}

// Renderer turns route data into label documents. It is deterministic apart from
// the generation stamp taken from now.
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a Renderer. A nil clock falls back to time.Now.
func NewRenderer(now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}

	return &Renderer{now: now}
}

// BuildPrintJob renders the route summary followed by every stop label,
// each stop label followed by a blank separator label.
func (r *Renderer) BuildPrintJob(detail models.RouteDetail) PrintJob {
	total := len(detail.Stops)
	docs := make([]Document, 0, 1+2*total)
	docs = append(docs, r.RenderRouteSummary(detail.Route, detail.Stops))

	for i, stop := range detail.Stops {
		docs = append(docs, r.RenderStopLabel(stop, i+1, total), Separator())
	}

	return PrintJob{RouteID: detail.Route.ID, Documents: docs}
}

// RenderRouteSummary renders the route overview sheet. Only the first SummaryStopLimit
// stops are listed; the remainder is reported as a count.
func (r *Renderer) RenderRouteSummary(route models.Route, stops []models.Stop) Document {
	doc := Document{Elements: []Element{
		Text{X: marginX, Y: 30, Height: 60, Value: "FLEX ROUTE SUMMARY"},
		Text{X: marginX, Y: 100, Height: 30, Value: "Route ID: " + orNA(route.ID)},
		Text{X: marginX, Y: 140, Height: 30, Value: "Driver: " + orNA(route.DriverName)},
		Text{X: marginX, Y: 180, Height: 30, Value: "Vehicle: " + orNA(route.VehicleType)},
		Text{X: marginX, Y: 220, Height: 30, Value: fmt.Sprintf("Stops: %d", len(stops))},
		Text{X: marginX, Y: 260, Height: 30, Value: "Start: " + formatTime(route.StartTime)},
		Text{X: marginX, Y: 300, Height: 30, Value: "End: " + formatTime(route.EndTime)},
		Rule{X: marginX, Y: 340, Width: ruleWidth, Thickness: 3},
		Text{X: marginX, Y: 360, Height: 25, Value: "Stop Overview:"},
	}}

	y := 400
	for i, stop := range stops {
		if i == SummaryStopLimit {
			break
		}
		doc.Elements = append(doc.Elements, Text{
			X: marginX, Y: y, Height: 25, Value: fmt.Sprintf("%d. %s", i+1, orNA(stop.Address.Line1)),
		})
		y += lineStep
	}

	if len(stops) > SummaryStopLimit {
		doc.Elements = append(doc.Elements, Text{
			X: marginX, Y: y, Height: 25, Value: fmt.Sprintf("... and %d more stops", len(stops)-SummaryStopLimit),
		})
		y += lineStep
	}

	doc.Elements = append(doc.Elements, Text{
		X: marginX, Y: y + lineStep, Height: 20, Value: "Generated: " + r.now().Format("2006-01-02 15:04"),
	})

	return doc
}

// RenderStopLabel renders the label for one stop. stopIndex is 1-based.
func (r *Renderer) RenderStopLabel(stop models.Stop, stopIndex, totalStops int) Document {
	notes := stop.DeliveryNotes
	if notes == "" {
		notes = NotesPlaceholder
	}

	code := stop.OrderID
	if code == "" {
		code = BarcodePlaceholder
	}

	return Document{Elements: []Element{
		Text{X: marginX, Y: 30, Height: 40, Value: "AMAZON FLEX"},
		Text{X: marginX, Y: 80, Height: 30, Value: fmt.Sprintf("Stop: %d/%d", stopIndex, totalStops)},
		Text{X: marginX, Y: 120, Height: 25, Value: "Order: " + orNA(stop.OrderID)},
		Text{X: marginX, Y: 160, Height: 25, Value: "Customer: " + orNA(stop.CustomerName)},
		Text{X: marginX, Y: 200, Height: 25, Value: "Phone: " + orNA(stop.CustomerPhone)},
		Rule{X: marginX, Y: 240, Width: ruleWidth, Thickness: 3},
		Text{X: marginX, Y: 260, Height: 25, Value: "Address:"},
		Text{X: marginX, Y: 300, Height: 25, Value: orNA(stop.Address.Line1)},
		Text{X: marginX, Y: 340, Height: 25, Value: orNA(stop.Address.City) + ", " + orNA(stop.Address.State)},
		Text{X: marginX, Y: 380, Height: 25, Value: orNA(stop.Address.PostalCode)},
		Rule{X: marginX, Y: 420, Width: ruleWidth, Thickness: 3},
		Text{X: marginX, Y: 440, Height: 20, Value: "Notes: " + notes},
		Barcode{X: marginX, Y: 480, Height: 80, Value: code},
	}}
}

// Separator returns the blank label fed between stop labels.
func Separator() Document {
	return Document{}
}

func orNA(value string) string {
	if value == "" {
		return Placeholder
	}

	return value
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}

	return t.Format(time.RFC3339)
}
