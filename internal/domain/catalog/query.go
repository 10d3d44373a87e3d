package catalog

// PageSize is the fixed number of products per catalog page.
const PageSize = 9

// Page is one page of the product catalog.
type Page struct {
	Items      []Product
	TotalCount int
	TotalPages int
	Page       int
}

// List returns one page of products in load order, optionally filtered by
// supplier. An unknown supplier id yields an empty result, not an error.
// A page below 1 is clamped to 1; a page beyond the last returns an empty
// item list with TotalPages still computed from the full result set, which
// is never fewer than one page.
func List(idx *Index, supplierID string, page int) Page {
	var products []Product
	if supplierID == "" {
		products = idx.Products()
	} else {
		products = idx.ProductsBySupplier(supplierID)
	}

	if page < 1 {
		page = 1
	}

	total := len(products)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	return Page{
		Items:      products[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
	}
}
