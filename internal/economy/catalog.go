package economy

// Catalog product IDs.
const (
	ProductMilk   ProductID = 1
	ProductEggs   ProductID = 2
	ProductBread  ProductID = 3
	ProductButter ProductID = 4
	ProductCheese ProductID = 5
)

// DefaultCatalog returns the predefined goods every shop and client draws
// from. Quantities are zero; holders set their own stock.
func DefaultCatalog() []*Product {
	return []*Product{
		{ID: ProductMilk, Name: "Milk", Quality: 8, Price: 2.5},
		{ID: ProductEggs, Name: "Eggs", Quality: 7, Price: 3.0},
		{ID: ProductBread, Name: "Bread", Quality: 6, Price: 1.5},
		{ID: ProductButter, Name: "Butter", Quality: 9, Price: 4.0},
		{ID: ProductCheese, Name: "Cheese", Quality: 7, Price: 5.0},
	}
}

// Find returns the product with the given ID from a list, or nil.
func Find(products []*Product, id ProductID) *Product {
	for _, p := range products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// TotalQuantity sums the quantities of all products in a list.
func TotalQuantity(products []*Product) int {
	total := 0
	for _, p := range products {
		total += p.Quantity
	}
	return total
}
