package renderer

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/etnz/mycarbs"
	md "github.com/nao1215/markdown"
)

// ProfileMarkdown renders the profile settings.
func ProfileMarkdown(p mycarbs.Profile) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(p.Name)
	icr := "not configured"
	if p.ICR > 0 {
		icr = "1 U per " + strconv.FormatFloat(p.ICR, 'f', -1, 64) + " g"
	}
	quantities := make([]string, len(p.CustomQuantities))
	for i, q := range p.CustomQuantities {
		quantities[i] = QuantityLabel(q)
	}

	doc.Table(md.TableSet{
		Header: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Email", p.Email},
			{"Insulin-to-carb ratio", icr},
			{"Quantity shortcuts", strings.Join(quantities, " · ")},
			{"Theme", string(p.ThemePreference)},
			{"Accent", string(p.AccentColor)},
			{"View", string(p.ViewMode)},
		},
	})

	doc.H2("Categories")
	if len(p.Categories) == 0 {
		doc.PlainText("No category.")
	} else {
		doc.BulletList(p.Categories...)
	}
	return doc.String()
}
