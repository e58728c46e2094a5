package seed

import (
	"context"
	"fmt"

	"inventory-services/db"
	"inventory-services/types"

	"github.com/ninja-software/terror/v2"
	"github.com/shopspring/decimal"
	"syreclabs.com/go/faker"
)

// Products seeds the catalog with faker-generated products.
func (s *Seeder) Products(ctx context.Context) error {
	productNames := []string{}
	count := 0
	for i := 0; i < 40; i++ {
		// Get unique name
		var productName string
		for {
			productName = faker.Commerce().ProductName()

			exists := false
			for _, name := range productNames {
				if productName == name {
					exists = true
					break
				}
			}
			if !exists {
				break
			}
		}
		productNames = append(productNames, productName)

		product := &types.Product{
			Name:      productName,
			Quantity:  faker.RandomInt(0, 200),
			UnitPrice: decimal.NewFromFloat(float64(faker.Commerce().Price())).Round(2),
		}
		err := db.ProductCreate(ctx, s.Conn, product)
		if err != nil {
			return terror.Error(err)
		}

		count++
	}
	fmt.Printf(" Seeded %d products\n", count)

	return nil
}
