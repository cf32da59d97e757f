package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/arteliving/arteliving-backend/config"
	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/internal/app/service"
	"github.com/arteliving/arteliving-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Expected columns, first sheet, one variant per row:
// 0 name | 1 brand | 2 category | 3 subcategory | 4 description | 5 sku |
// 6 color | 7 color_code | 8 size | 9 material | 10 finish | 11 price |
// 12 inventory | 13 main_image | 14 images (semicolon separated)
//
// Rows sharing a name are grouped into one product; a single row becomes a
// simple product when it has no size and no finish.

type variantRow struct {
	base    catalog.BaseInput
	variant catalog.Variant
}

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

	productRepo := repository.NewProductRepository(db.GetDB())
	attributeRepo := repository.NewAttributeRepository(db.GetDB())
	productService := service.NewProductService(productRepo, attributeRepo)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	groups, order, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(order))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	failed := 0
	for _, name := range order {
		rows := groups[name]
		if err := importProduct(productService, rows); err != nil {
			fmt.Printf("  FAILED %s: %v\n", name, err)
			failed++
			continue
		}
		imported++
	}

	fmt.Println("Import completed.")
	fmt.Printf("Products imported: %d, failed: %d\n", imported, failed)
}

// readCatalogFromXLSX groups the sheet's rows by product name, preserving the
// order in which products first appear.
func readCatalogFromXLSX(filePath string) (map[string][]variantRow, []string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("no data rows found in XLSX file")
	}

	groups := make(map[string][]variantRow)
	var order []string
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 14 {
			skipped++
			continue
		}

		name := strings.TrimSpace(cell(row, 0))
		if name == "" {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(cell(row, 11)), 64)
		if err != nil {
			fmt.Printf("  row %d: invalid price %q, skipping\n", i+1, cell(row, 11))
			skipped++
			continue
		}
		inventory, _ := strconv.Atoi(strings.TrimSpace(cell(row, 12)))

		vr := variantRow{
			base: catalog.BaseInput{
				SKU:         strings.TrimSpace(cell(row, 5)),
				Name:        name,
				Brand:       strings.TrimSpace(cell(row, 1)),
				Category:    strings.TrimSpace(cell(row, 2)),
				Subcategory: strings.TrimSpace(cell(row, 3)),
				Description: strings.TrimSpace(cell(row, 4)),
			},
			variant: catalog.Variant{
				SKU:       strings.TrimSpace(cell(row, 5)),
				Color:     strings.TrimSpace(cell(row, 6)),
				ColorCode: strings.TrimSpace(cell(row, 7)),
				Size:      strings.TrimSpace(cell(row, 8)),
				Material:  strings.TrimSpace(cell(row, 9)),
				Finish:    strings.TrimSpace(cell(row, 10)),
				Price:     price,
				Inventory: inventory,
				MainImage: strings.TrimSpace(cell(row, 13)),
				Images:    splitImages(cell(row, 14)),
			},
		}

		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], vr)
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d rows\n", skipped)
	}
	return groups, order, nil
}

func importProduct(productService service.ProductService, rows []variantRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows")
	}
	first := rows[0]

	if len(rows) == 1 && first.variant.Size == "" && first.variant.Finish == "" {
		_, err := productService.CreateSimpleProduct(catalog.SimpleInput{
			SKU:         first.variant.SKU,
			Name:        first.base.Name,
			Brand:       first.base.Brand,
			Category:    first.base.Category,
			Subcategory: first.base.Subcategory,
			Description: first.base.Description,
			Price:       first.variant.Price,
			Material:    first.variant.Material,
			Color:       first.variant.Color,
			ColorCode:   first.variant.ColorCode,
			MainImage:   first.variant.MainImage,
			Images:      first.variant.Images,
			Inventory:   first.variant.Inventory,
		})
		return err
	}

	variants := make([]catalog.Variant, 0, len(rows))
	for _, r := range rows {
		variants = append(variants, r.variant)
	}
	_, err := productService.CreateVariantProduct(first.base, variants)
	return err
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func splitImages(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	images := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			images = append(images, p)
		}
	}
	return images
}
