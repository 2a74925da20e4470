package models

import "fmt"

// SeenKeyPrefix prefixes every identifier persisted in the seen-set.
const SeenKeyPrefix = "seen:"

// SearchQuery is a single search request against the index site.
// Offset selects the results page; zero is the first page.
type SearchQuery struct {
	Query  string
	Offset uint32
}

// NewSearchQuery returns a query for the first results page.
func NewSearchQuery(query string) SearchQuery {
	return SearchQuery{Query: query}
}

func (q SearchQuery) String() string {
	return fmt.Sprintf("%q (page %d)", q.Query, q.Offset)
}

// FileRecord is one file listed on a results page.
// ID is the natural key; Name and Size are whatever the site showed at extraction time.
type FileRecord struct {
	ID   string
	Name string
	Size string // unparsed, e.g. "1.2 GB"
}

// SeenKey returns the key under which the record is stored in the seen-set.
func (r FileRecord) SeenKey() string {
	return SeenKey(r.ID)
}

// SeenKey builds the seen-set key for an identifier.
func SeenKey(id string) string {
	return SeenKeyPrefix + id
}

// RecordClass is the outcome of filtering a record during a run.
type RecordClass int

const (
	// RecordQualifying is new and will be notified.
	RecordQualifying RecordClass = iota
	// RecordDuplicate was already in the seen-set.
	RecordDuplicate
	// RecordIgnored matched an ignored keyword; it is marked seen but not notified.
	RecordIgnored
)

func (c RecordClass) String() string {
	switch c {
	case RecordQualifying:
		return "qualifying"
	case RecordDuplicate:
		return "duplicate"
	case RecordIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}
