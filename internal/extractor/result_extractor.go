package extractor

import (
	"bytes"

	"github.com/aleister1102/dbreewatch/internal/models"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	resultItemSelector  = "ul.list-group li.list-group-item"
	resultBadgeSelector = "span.badge"
	resultLinkSelector  = "a"

	// LinkPrefixLen is the length of the fixed path prefix ("/v/") in front of
	// every file identifier in a result link.
	LinkPrefixLen = 3
)

// ExtractResults parses a search results page into file records, in document order.
// Extraction is all-or-nothing: the first malformed item fails the whole page.
func ExtractResults(htmlContent []byte) ([]models.FileRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlContent))
	if err != nil {
		return nil, &models.ParseError{Item: -1, Missing: "unreadable document", Err: err}
	}
	return ExtractFromDocument(doc)
}

// ExtractFromDocument runs the extraction on an already parsed document.
func ExtractFromDocument(doc *goquery.Document) ([]models.FileRecord, error) {
	items := doc.Find(resultItemSelector)
	records := make([]models.FileRecord, 0, items.Length())

	var extractErr error
	items.EachWithBreak(func(i int, item *goquery.Selection) bool {
		record, err := extractItem(i, item)
		if err != nil {
			extractErr = err
			return false
		}
		records = append(records, record)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	return records, nil
}

func extractItem(index int, item *goquery.Selection) (models.FileRecord, error) {
	badge := item.Find(resultBadgeSelector).First()
	if badge.Length() == 0 {
		return models.FileRecord{}, &models.ParseError{Item: index, Missing: "no badge found"}
	}
	size, ok := firstText(badge.Nodes[0])
	if !ok {
		return models.FileRecord{}, &models.ParseError{Item: index, Missing: "badge has no text"}
	}

	link := item.Find(resultLinkSelector).First()
	if link.Length() == 0 {
		return models.FileRecord{}, &models.ParseError{Item: index, Missing: "search item has no <a>"}
	}
	name, ok := firstText(link.Nodes[0])
	if !ok {
		return models.FileRecord{}, &models.ParseError{Item: index, Missing: "search item's <a> has no text"}
	}
	href, exists := link.Attr("href")
	if !exists {
		return models.FileRecord{}, &models.ParseError{Item: index, Missing: "search item's <a> has no href"}
	}
	id, ok := stripLinkPrefix(href)
	if !ok {
		return models.FileRecord{}, &models.ParseError{Item: index, Missing: "link target too short: " + href}
	}

	return models.FileRecord{ID: id, Name: name, Size: size}, nil
}

// stripLinkPrefix removes the fixed link prefix, refusing targets that are too short.
func stripLinkPrefix(href string) (string, bool) {
	if len(href) < LinkPrefixLen {
		return "", false
	}
	return href[LinkPrefixLen:], true
}

// firstText returns the first text node below n, depth first, exactly as the page has it.
func firstText(n *html.Node) (string, bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c.Data, true
		}
		if text, ok := firstText(c); ok {
			return text, true
		}
	}
	return "", false
}
