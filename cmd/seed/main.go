package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/makeey/notsofluffy.pl-sub000/config"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/service"
	"github.com/makeey/notsofluffy.pl-sub000/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports the product catalog from an XLSX workbook. Expected sheets:
//
//	Categories: name | description
//	Sizes:      name | description | price_modifier
//	Products:   name | category | short_description | description | price
//
// Rows with a missing name or an unknown category are skipped.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX file:", err)
	}
	defer f.Close()

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	sizeRepo := repository.NewSizeRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	categories, err := seedCategories(f, categoryRepo)
	if err != nil {
		log.Fatal("Failed to import categories:", err)
	}
	fmt.Printf("Categories imported: %d\n", len(categories))

	sizeCount, err := seedSizes(f, sizeRepo)
	if err != nil {
		log.Fatal("Failed to import sizes:", err)
	}
	fmt.Printf("Sizes imported: %d\n", sizeCount)

	productCount, skipped, err := seedProducts(f, productRepo, categories)
	if err != nil {
		log.Fatal("Failed to import products:", err)
	}
	fmt.Printf("Products imported: %d (skipped: %d)\n", productCount, skipped)

	fmt.Println("Import completed successfully!")
}

func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}
	// First row is the header
	return rows[1:], nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// seedCategories returns name -> ID so products can reference them
func seedCategories(f *excelize.File, repo repository.CategoryRepository) (map[string]uint, error) {
	rows, err := sheetRows(f, "Categories")
	if err != nil {
		return nil, err
	}

	byName := make(map[string]uint)
	for _, row := range rows {
		name := cell(row, 0)
		if name == "" {
			continue
		}
		category := &model.Category{
			Name:        name,
			Slug:        service.Slugify(name),
			Description: cell(row, 1),
			Active:      true,
		}
		if err := repo.Create(category); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		byName[name] = category.ID
	}
	return byName, nil
}

func seedSizes(f *excelize.File, repo repository.SizeRepository) (int, error) {
	rows, err := sheetRows(f, "Sizes")
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range rows {
		name := cell(row, 0)
		if name == "" {
			continue
		}
		modifier, _ := strconv.ParseFloat(cell(row, 2), 64)
		size := &model.Size{
			Name:          name,
			Description:   cell(row, 1),
			PriceModifier: modifier,
			Available:     true,
		}
		if err := repo.Create(size); err != nil {
			return count, fmt.Errorf("size %q: %w", name, err)
		}
		count++
	}
	return count, nil
}

func seedProducts(f *excelize.File, repo repository.ProductRepository, categories map[string]uint) (int, int, error) {
	rows, err := sheetRows(f, "Products")
	if err != nil {
		return 0, 0, err
	}

	count, skipped := 0, 0
	for _, row := range rows {
		name := cell(row, 0)
		categoryName := cell(row, 1)
		categoryID, ok := categories[categoryName]
		if name == "" || !ok {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(cell(row, 4), 64)
		if err != nil || price <= 0 {
			skipped++
			continue
		}

		product := &model.Product{
			Name:             name,
			CategoryID:       categoryID,
			ShortDescription: cell(row, 2),
			Description:      cell(row, 3),
			Price:            price,
			Active:           true,
		}
		if err := repo.Create(product); err != nil {
			return count, skipped, fmt.Errorf("product %q: %w", name, err)
		}
		count++
	}
	return count, skipped, nil
}
