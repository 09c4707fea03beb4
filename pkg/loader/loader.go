// Package loader supplies price/demand observation sets from CSV files or
// built-in generators. The analysis core never opens files itself.
package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/mathutil"
)

// SampleDataset returns the built-in demonstration observation set.
func SampleDataset() (prices, demands []float64) {
	prices = []float64{5, 10, 15, 20, 25, 30, 35}
	demands = []float64{115, 105, 92, 70, 50, 30, 10}
	return prices, demands
}

// LoadCSV reads an observation set from a CSV file with a header row
// containing "price" and "demand" columns (any order, case-insensitive).
func LoadCSV(path string) (prices, demands []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loader: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("loader: %s has no data rows", path)
	}

	priceCol, demandCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "price":
			priceCol = i
		case "demand":
			demandCol = i
		}
	}
	if priceCol < 0 || demandCol < 0 {
		return nil, nil, fmt.Errorf("loader: %s is missing a price or demand column", path)
	}

	for row, record := range records[1:] {
		price, err := strconv.ParseFloat(strings.TrimSpace(record[priceCol]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("loader: %s row %d: invalid price: %w", path, row+2, err)
		}
		demand, err := strconv.ParseFloat(strings.TrimSpace(record[demandCol]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("loader: %s row %d: invalid demand: %w", path, row+2, err)
		}
		prices = append(prices, price)
		demands = append(demands, demand)
	}

	return prices, demands, nil
}

// Synthetic generates n observations over [minPrice, maxPrice] from the
// linear demand curve alpha - beta*price, optionally distorted by
// amplitude*sin(price). The generator is deterministic so runs can be
// compared.
func Synthetic(alpha, beta float64, n int, minPrice, maxPrice, amplitude float64) (prices, demands []float64) {
	prices = mathutil.Linspace(minPrice, maxPrice, n)
	demands = make([]float64, len(prices))
	for i, p := range prices {
		demands[i] = alpha - beta*p
		if amplitude != 0 && p != 0 {
			// Distort demand so the implied revenue oscillates by
			// amplitude*sin(p).
			demands[i] += amplitude * math.Sin(p) / p
		}
	}
	return prices, demands
}
