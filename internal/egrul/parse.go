package egrul

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/factmap/pkg/errors"
)

// directorMarker precedes the director's name in a result card's text.
const directorMarker = "ГЕНЕРАЛЬНЫЙ ДИРЕКТОР: "

// ogrnMarker separates the address block from the registration number.
const ogrnMarker = "ОГРН:"

// parseCard extracts the first result card from an EGRUL search result page.
// The page lists results as div.res-row blocks: the company name sits in the
// anchor, the director follows the director marker, and the address is the
// leading text up to the OGRN block.
func parseCard(inn string, body io.Reader) (Card, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return Card{}, errors.WrapParse("html", "egrul search result", err)
	}

	card := Card{INN: inn}

	row := doc.Find("div.res-row").First()
	if row.Length() == 0 {
		return card, nil
	}
	card.Found = true

	card.Name = strings.TrimSpace(row.Find("a").First().Text())

	// The rest of the card is unstructured text; split on the markers.
	text := normalizeSpace(row.Text())

	if i := strings.Index(text, directorMarker); i >= 0 {
		director := text[i+len(directorMarker):]
		if j := strings.Index(director, " "+ogrnMarker); j >= 0 {
			director = director[:j]
		}
		card.Director = strings.TrimSpace(director)
	}

	address := text
	if i := strings.Index(address, ogrnMarker); i >= 0 {
		address = address[:i]
	}
	if i := strings.Index(address, directorMarker); i >= 0 {
		address = address[:i]
	}
	if card.Name != "" {
		address = strings.Replace(address, card.Name, "", 1)
	}
	card.Address = strings.TrimSpace(address)

	return card, nil
}

// normalizeSpace collapses runs of whitespace into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
