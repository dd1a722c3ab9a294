package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Fury174k/pharmstock/internal/client/models"
)

func (a *App) listProducts(ctx context.Context) error {
	products, err := a.catalog.List(ctx)
	if err != nil {
		showError(err)
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tSKU\tNAME\tCATEGORY\tPRICE\tSTOCK\tREORDER AT")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d\t%d\n",
			p.ID, p.SKU, p.Name, p.Category, p.Price, p.Stock, p.ReorderLevel)
	}
	return w.Flush()
}

func (a *App) addProduct(ctx context.Context) error {
	sku, err := getSimpleText(a.reader, "SKU", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		return err
	}
	priceStr, err := getSimpleText(a.reader, "Price", os.Stdout)
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		fmt.Println("Invalid price:", priceStr)
		return err
	}
	stockStr, err := getSimpleText(a.reader, "Initial stock", os.Stdout)
	if err != nil {
		return err
	}
	stock, err := strconv.Atoi(stockStr)
	if err != nil {
		fmt.Println("Invalid stock:", stockStr)
		return err
	}
	reorderStr, err := getSimpleText(a.reader, "Reorder level", os.Stdout)
	if err != nil {
		return err
	}
	reorder, err := strconv.Atoi(reorderStr)
	if err != nil {
		fmt.Println("Invalid reorder level:", reorderStr)
		return err
	}

	created, err := a.catalog.Create(ctx, &models.Product{
		SKU:          sku,
		Name:         name,
		Category:     category,
		Price:        price,
		Stock:        stock,
		ReorderLevel: reorder,
	})
	if err != nil {
		showError(err)
		return err
	}

	fmt.Printf("Created %s (%s)\n", created.Name, created.ID)
	return nil
}

// editProduct reads a product id and a set of name=value lines and sends
// them as a partial update. Numeric fields are converted so the backend
// receives proper JSON numbers.
func (a *App) editProduct(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Product ID", os.Stdout)
	if err != nil {
		return err
	}
	fields, err := GetFields(a.reader)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fmt.Println("Nothing to update.")
		return nil
	}

	patch := make(map[string]any, len(fields))
	for name, value := range fields {
		switch name {
		case "price":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				fmt.Println("Invalid price:", value)
				return err
			}
			patch[name] = v
		case "stock", "reorder_level":
			v, err := strconv.Atoi(value)
			if err != nil {
				fmt.Printf("Invalid %s: %s\n", name, value)
				return err
			}
			patch[name] = v
		default:
			patch[name] = value
		}
	}

	updated, err := a.catalog.Update(ctx, id, patch)
	if err != nil {
		showError(err)
		return err
	}

	fmt.Printf("Updated %s\n", updated.Name)
	return nil
}

func (a *App) deleteProduct(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Product ID", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.catalog.Delete(ctx, id); err != nil {
		showError(err)
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func (a *App) importCSV(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "CSV file path", os.Stdout)
	if err != nil {
		return err
	}

	summary, err := a.catalog.ImportCSV(ctx, path)
	if err != nil {
		showError(err)
		return err
	}

	fmt.Printf("Imported: %d created, %d updated\n", summary.Created, summary.Updated)
	for _, e := range summary.Errors {
		fmt.Println("  skipped:", e)
	}
	return nil
}

func (a *App) listMovements(ctx context.Context) error {
	movements, err := a.catalog.StockMovements(ctx)
	if err != nil {
		showError(err)
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "WHEN\tPRODUCT\tTYPE\tQTY\tREASON")
	for _, m := range movements {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			formatTime(m.CreatedAt), m.ProductName, m.Type, m.Quantity, m.Reason)
	}
	return w.Flush()
}
