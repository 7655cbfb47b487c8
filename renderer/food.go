package renderer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/mycarbs"
	md "github.com/nao1215/markdown"
)

func grams(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " g"
}

func favorite(f mycarbs.Food) string {
	if f.IsFavorite {
		return "★"
	}
	return ""
}

// FoodsMarkdown renders a food list as a table.
func FoodsMarkdown(title string, foods []mycarbs.Food) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if len(foods) == 0 {
		doc.PlainText("No foods found. Add one with `mycarbs add` or import a file with `mycarbs import`.")
		return doc.String()
	}

	rows := make([][]string, 0, len(foods))
	for _, f := range foods {
		portions := make([]string, len(f.Portions))
		for i, p := range f.Portions {
			portions[i] = fmt.Sprintf("%s (%s)", p.Name, grams(p.Carbs))
		}
		rows = append(rows, []string{
			favorite(f),
			f.Name,
			grams(f.CarbsPer100g),
			strings.Join(portions, ", "),
			strings.Join(f.Categories, ", "),
			f.ID,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"", "Name", "Carbs/100g", "Portions", "Categories", "ID"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("%d food(s)", len(foods)))
	return doc.String()
}

// FoodMarkdown renders a single food with the quantity shortcuts offered for
// it.
func FoodMarkdown(f mycarbs.Food, shortcuts []float64) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := f.Name
	if f.IsFavorite {
		title += " ★"
	}
	doc.H1(title)
	doc.BulletList(
		"ID: "+f.ID,
		"Carbs per 100g: "+grams(f.CarbsPer100g),
		"Categories: "+strings.Join(f.Categories, ", "),
		"Created: "+f.CreatedAt.Time().Format("2006-01-02 15:04"),
	)
	if f.ImageURL != "" {
		doc.PlainText(fmt.Sprintf("![%s](%s)", f.Name, f.ImageURL))
	}

	doc.H2("Portions")
	rows := make([][]string, len(f.Portions))
	for i, p := range f.Portions {
		rows[i] = []string{strconv.Itoa(i), p.Name, grams(p.Carbs)}
	}
	doc.Table(md.TableSet{Header: []string{"#", "Portion", "Carbs"}, Rows: rows})

	doc.H2("Quantity shortcuts")
	labels := make([]string, len(shortcuts))
	for i, q := range shortcuts {
		labels[i] = QuantityLabel(q)
	}
	doc.PlainText(strings.Join(labels, " · "))
	return doc.String()
}

// QuantityLabel is mycarbs.QuantityLabel followed by "×".
func QuantityLabel(q float64) string {
	return mycarbs.QuantityLabel(q) + "×"
}
