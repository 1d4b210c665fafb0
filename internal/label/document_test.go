package label_test

import (
	"testing"

	"github.com/UnknownOlympus/hermes/internal/label"
	"github.com/stretchr/testify/assert"
)

func TestDocument_Bytes(t *testing.T) {
	t.Run("renders elements as ZPL", func(t *testing.T) {
		doc := label.Document{Elements: []label.Element{
			label.Text{X: 50, Y: 30, Height: 40, Value: "AMAZON FLEX"},
			label.Rule{X: 50, Y: 240, Width: 700, Thickness: 3},
			label.Barcode{X: 50, Y: 480, Height: 80, Value: "O-1"},
		}}

		want := "^XA\n" +
			"^FO50,30^A0N,40,40^FH^FDAMAZON FLEX^FS\n" +
			"^FO50,240^GB700,3,3^FS\n" +
			"^FO50,480^B3N,N,80,Y,N^FH^FDO-1^FS\n" +
			"^XZ\n"

		assert.Equal(t, want, string(doc.Bytes()))
	})

	t.Run("separator is a blank label", func(t *testing.T) {
		assert.Equal(t, "^XA^XZ", string(label.Separator().Bytes()))
	})

	t.Run("field data is escaped", func(t *testing.T) {
		doc := label.Document{Elements: []label.Element{
			label.Text{X: 0, Y: 0, Height: 20, Value: "a^XZ~b_c\nd"},
		}}

		assert.Equal(t, "^XA\n^FO0,0^A0N,20,20^FH^FDa_5EXZ_7Eb_5Fc d^FS\n^XZ\n", string(doc.Bytes()))
	})

	t.Run("barcode data is limited to code 39 characters", func(t *testing.T) {
		doc := label.Document{Elements: []label.Element{
			label.Barcode{X: 50, Y: 480, Height: 80, Value: "ord_42a#x.9"},
		}}

		assert.Equal(t, "^XA\n^FO50,480^B3N,N,80,Y,N^FH^FDORD-42A-X.9^FS\n^XZ\n", string(doc.Bytes()))
		assert.Equal(t, []string{"ord_42a#x.9"}, doc.Lines())
	})

	t.Run("lines skip rules", func(t *testing.T) {
		doc := label.Document{Elements: []label.Element{
			label.Text{Value: "one"},
			label.Rule{Width: 10},
			label.Barcode{Value: "two"},
		}}

		assert.Equal(t, []string{"one", "two"}, doc.Lines())
	})
}
