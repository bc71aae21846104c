package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"topup/pkg/schema"
)

// CompanyIndex provides lookup of validated companies by id.
// It is built once per run and read-only afterwards.
type CompanyIndex struct {
	// keyed by the id's decimal text
	byID  map[string]schema.Company
	ids   []decimal.Decimal
	Stats IndexStats `json:"stats"`
}

// IndexStats contains aggregate statistics about the company index.
type IndexStats struct {
	TotalRecords    int `json:"totalRecords"`
	UniqueCompanies int `json:"uniqueCompanies"`
	Duplicates      int `json:"duplicates"`
	EmailEnabled    int `json:"emailEnabled"`
}

// DuplicateCompany describes a company replaced by a later record with the
// same id.
type DuplicateCompany struct {
	ID          decimal.Decimal `json:"id"`
	Replaced    schema.Company  `json:"replaced"`
	Replacement schema.Company  `json:"replacement"`
	Conflicts   []FieldConflict `json:"conflicts"`
}

// IndexOption configures BuildCompanyIndex.
type IndexOption func(*indexOptions)

type indexOptions struct {
	onDuplicate func(DuplicateCompany)
}

// WithDuplicateHook registers fn to be called for every company replaced by a
// later record with the same id. The hook observes; the later record still
// wins.
func WithDuplicateHook(fn func(DuplicateCompany)) IndexOption {
	return func(o *indexOptions) {
		o.onDuplicate = fn
	}
}

// BuildCompanyIndex constructs a CompanyIndex from validated companies.
// Companies are stable-sorted by id before insertion; when ids repeat, the
// last one inserted wins.
func BuildCompanyIndex(companies []schema.Company, opts ...IndexOption) *CompanyIndex {
	var options indexOptions
	for _, opt := range opts {
		opt(&options)
	}

	sorted := make([]schema.Company, len(companies))
	copy(sorted, companies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID.LessThan(sorted[j].ID)
	})

	index := &CompanyIndex{
		byID: make(map[string]schema.Company, len(sorted)),
		ids:  make([]decimal.Decimal, 0, len(sorted)),
	}

	duplicates := 0
	for _, company := range sorted {
		key := company.ID.String()
		if prev, exists := index.byID[key]; exists {
			duplicates++
			if options.onDuplicate != nil {
				options.onDuplicate(DuplicateCompany{
					ID:          company.ID,
					Replaced:    prev,
					Replacement: company,
					Conflicts:   DetectConflicts(prev, company),
				})
			}
		} else {
			index.ids = append(index.ids, company.ID)
		}
		index.byID[key] = company
	}

	emailEnabled := 0
	for _, company := range index.byID {
		if company.EmailStatus {
			emailEnabled++
		}
	}

	index.Stats = IndexStats{
		TotalRecords:    len(companies),
		UniqueCompanies: len(index.byID),
		Duplicates:      duplicates,
		EmailEnabled:    emailEnabled,
	}

	return index
}

// Lookup returns the company stored under id.
func (idx *CompanyIndex) Lookup(id decimal.Decimal) (schema.Company, bool) {
	if idx == nil {
		return schema.Company{}, false
	}
	company, ok := idx.byID[id.String()]
	return company, ok
}

// Has reports whether id resolves to a company.
func (idx *CompanyIndex) Has(id decimal.Decimal) bool {
	_, ok := idx.Lookup(id)
	return ok
}

// IDs returns the indexed company ids in ascending order.
func (idx *CompanyIndex) IDs() []decimal.Decimal {
	if idx == nil {
		return nil
	}
	ids := make([]decimal.Decimal, len(idx.ids))
	copy(ids, idx.ids)
	return ids
}

// Len returns the number of distinct companies.
func (idx *CompanyIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byID)
}
