package enums

import "fmt"

// ProductCategory groups catalog listings for the storefront grid.
type ProductCategory string

const (
	ProductCategoryFruits     ProductCategory = "fruits"
	ProductCategoryVegetables ProductCategory = "vegetables"
	ProductCategoryGrains     ProductCategory = "grains"
	ProductCategoryProtein    ProductCategory = "protein"
	ProductCategoryDairy      ProductCategory = "dairy"
	ProductCategoryBeverages  ProductCategory = "beverages"
	ProductCategoryHousehold  ProductCategory = "household"
	ProductCategorySnacks     ProductCategory = "snacks"
)

var validProductCategories = []ProductCategory{
	ProductCategoryFruits,
	ProductCategoryVegetables,
	ProductCategoryGrains,
	ProductCategoryProtein,
	ProductCategoryDairy,
	ProductCategoryBeverages,
	ProductCategoryHousehold,
	ProductCategorySnacks,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
