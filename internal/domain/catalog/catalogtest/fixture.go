// Package catalogtest provides catalog fixtures shared by package tests.
package catalogtest

import (
	"github.com/shopspring/decimal"

	"github.com/your-org/store-pilot/internal/domain/catalog"
)

// BlueJacketID is the ID of the jacket every fixture contains
const BlueJacketID = 1

// Products returns the Blue Jacket plus five unrelated products. There are
// no bags in it.
func Products() []catalog.Product {
	return []catalog.Product{
		{
			ID:          BlueJacketID,
			Name:        "Blue Jacket",
			Description: "Warm waterproof jacket for rainy days",
			Category:    "clothing",
			Price:       decimal.NewFromInt(100),
			BottomPrice: decimal.NewFromInt(80),
			Rating:      4.5,
			Colors:      []string{"blue", "navy"},
			Image:       "/images/blue-jacket.jpg",
		},
		{
			ID:          2,
			Name:        "Running Sneakers",
			Description: "Lightweight running shoes with responsive foam",
			Category:    "footwear",
			Price:       decimal.NewFromInt(90),
			BottomPrice: decimal.NewFromInt(70),
			Rating:      4.1,
			Colors:      []string{"white", "grey"},
		},
		{
			ID:          3,
			Name:        "Silk Scarf",
			Description: "Hand rolled silk scarf",
			Category:    "accessories",
			Price:       decimal.NewFromInt(40),
			BottomPrice: decimal.NewFromInt(35),
			Rating:      4.8,
			Colors:      []string{"red"},
		},
		{
			ID:          4,
			Name:        "Ceramic Mug",
			Description: "Stoneware mug for coffee and tea",
			Category:    "home",
			Price:       decimal.NewFromInt(15),
			BottomPrice: decimal.NewFromInt(12),
			Rating:      3.9,
			Colors:      []string{"white"},
		},
		{
			ID:          5,
			Name:        "Desk Lamp",
			Description: "Adjustable LED lamp for the office",
			Category:    "home",
			Price:       decimal.NewFromInt(45),
			BottomPrice: decimal.NewFromInt(38),
			Rating:      4.2,
			Colors:      []string{"black"},
		},
		{
			ID:          6,
			Name:        "Yoga Mat",
			Description: "Non slip mat for daily practice",
			Category:    "fitness",
			Price:       decimal.NewFromInt(30),
			BottomPrice: decimal.NewFromInt(25),
			Rating:      4.0,
			Colors:      []string{"green"},
		},
	}
}

// Catalog builds the fixture catalog, panicking on invalid data.
func Catalog() *catalog.Catalog {
	c, err := catalog.New(Products())
	if err != nil {
		panic(err)
	}
	return c
}

// Many returns n generic clothing products, useful for result caps.
func Many(n int) *catalog.Catalog {
	products := make([]catalog.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, catalog.Product{
			ID:          i,
			Name:        "Cotton Shirt",
			Description: "Plain cotton shirt",
			Category:    "clothing",
			Price:       decimal.NewFromInt(int64(10 + i)),
			BottomPrice: decimal.NewFromInt(10),
			Rating:      3,
			Colors:      []string{"white"},
		})
	}
	c, err := catalog.New(products)
	if err != nil {
		panic(err)
	}
	return c
}
