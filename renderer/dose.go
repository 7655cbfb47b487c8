package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/mycarbs"
	md "github.com/nao1215/markdown"
)

// Disclaimer is appended to every computed dose.
const Disclaimer = "Estimates only, not medical advice. Always check a dose against your own treatment plan."

// DoseMarkdown renders the dose computed for a quantity of food.
func DoseMarkdown(f mycarbs.Food, spec mycarbs.QuantitySpec, d mycarbs.Dose) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Dose for %s", f.Name))

	insulin := d.Insulin.String() + " U"
	if !d.Insulin.Defined() {
		insulin = d.Insulin.String()
	}
	doc.Table(md.TableSet{
		Header: []string{"Quantity", "Carbs", "Insulin"},
		Rows: [][]string{
			{quantity(f, spec), strconv.Itoa(d.TotalCarbs) + " g", insulin},
		},
	})
	if !d.Insulin.Defined() {
		doc.PlainText("Insulin dose not configured: set your insulin-to-carb ratio with `mycarbs profile -icr`.")
	}
	doc.PlainText(Disclaimer)
	return doc.String()
}

func quantity(f mycarbs.Food, spec mycarbs.QuantitySpec) string {
	switch s := spec.(type) {
	case mycarbs.Units:
		name := fmt.Sprintf("portion #%d", s.PortionIndex)
		if s.PortionIndex >= 0 && s.PortionIndex < len(f.Portions) {
			name = f.Portions[s.PortionIndex].Name
		}
		return fmt.Sprintf("%s %s", QuantityLabel(s.Multiplier), name)
	case mycarbs.Weight:
		return grams(s.Grams)
	default:
		return "?"
	}
}
