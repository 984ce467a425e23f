package types

// Category is the fixed classification of a venue.
type Category string

const (
	CategoryFood     Category = "Food"
	CategoryCafe     Category = "Cafe"
	CategoryBar      Category = "Bar"
	CategoryActivity Category = "Activity"
	CategoryPark     Category = "Park"
	CategoryShop     Category = "Shop"
)

// PlaceRecord is one candidate venue returned by the search provider.
// Address doubles as the uniqueness key within a CandidateSet; records
// without an address are dropped before dedup.
type PlaceRecord struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Category Category `json:"category"`
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SearchSpec is one derived nearby-search request. Immutable once built.
type SearchSpec struct {
	Location     GeoPoint `json:"location"`
	RadiusMeters int      `json:"radiusMeters"`
	Keyword      string   `json:"keyword"`
}

// CandidateSet is an insertion-ordered, address-keyed collection of
// PlaceRecords. Inserts are first-write-wins: a later record at an address
// already present is discarded so the earlier record's data survives.
type CandidateSet struct {
	order []string
	byKey map[string]PlaceRecord
}

func NewCandidateSet() *CandidateSet {
	return &CandidateSet{byKey: make(map[string]PlaceRecord)}
}

// Add inserts a record keyed by address. Records with an empty address and
// duplicates of an existing address are silently dropped. Returns true when
// the record was actually inserted.
func (cs *CandidateSet) Add(rec PlaceRecord) bool {
	if rec.Address == "" {
		return false
	}
	if _, exists := cs.byKey[rec.Address]; exists {
		return false
	}
	cs.byKey[rec.Address] = rec
	cs.order = append(cs.order, rec.Address)
	return true
}

// AddAll inserts every record in order, preserving first-write-wins.
func (cs *CandidateSet) AddAll(recs []PlaceRecord) {
	for _, rec := range recs {
		cs.Add(rec)
	}
}

func (cs *CandidateSet) Len() int {
	return len(cs.order)
}

// Records returns the records in insertion order.
func (cs *CandidateSet) Records() []PlaceRecord {
	out := make([]PlaceRecord, 0, len(cs.order))
	for _, key := range cs.order {
		out = append(out, cs.byKey[key])
	}
	return out
}

// Truncate drops every record past the first max in insertion order.
func (cs *CandidateSet) Truncate(max int) {
	if max < 0 || len(cs.order) <= max {
		return
	}
	for _, key := range cs.order[max:] {
		delete(cs.byKey, key)
	}
	cs.order = cs.order[:max]
}
