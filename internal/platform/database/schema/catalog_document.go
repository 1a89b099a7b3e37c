package schema

// DocumentTable represents one 'catalog.*' collection table.
//
// Every collection is stored the same way: the record as a JSONB document,
// keyed by its id, with position preserving the backend's original order.
type DocumentTable struct {
	Table     string
	ID        string
	Position  string
	Doc       string
	UpdatedAt string
}

// CatalogEntry is the schema definition for catalog.entry
var CatalogEntry = documentTable("catalog.entry")

// CatalogAuthor is the schema definition for catalog.author
var CatalogAuthor = documentTable("catalog.author")

// CatalogCategory is the schema definition for catalog.category
var CatalogCategory = documentTable("catalog.category")

// CatalogVolume is the schema definition for catalog.volume
var CatalogVolume = documentTable("catalog.volume")

func documentTable(name string) DocumentTable {
	return DocumentTable{
		Table:     name,
		ID:        "id",
		Position:  "position",
		Doc:       "doc",
		UpdatedAt: "updatedat",
	}
}

func (t DocumentTable) Columns() []string {
	return []string{t.ID, t.Position, t.Doc, t.UpdatedAt}
}
