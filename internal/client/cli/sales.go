package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Fury174k/pharmstock/internal/client/models"
)

// recordSale collects sale lines interactively (empty product id finishes)
// and submits them as one transaction.
func (a *App) recordSale(ctx context.Context) error {
	var items []models.SaleItem
	for {
		productID, err := getSimpleText(a.reader, "Product ID (empty line to finish)", os.Stdout)
		if err != nil {
			return err
		}
		if productID == "" {
			break
		}
		qtyStr, err := getSimpleText(a.reader, "Quantity", os.Stdout)
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			fmt.Println("Invalid quantity:", qtyStr)
			continue
		}
		items = append(items, models.SaleItem{ProductID: productID, Quantity: qty})
	}

	if len(items) == 0 {
		fmt.Println("Sale cancelled: no items.")
		return nil
	}

	sale, err := a.sales.Record(ctx, items)
	if err != nil {
		showError(err)
		return err
	}

	fmt.Printf("Sale recorded, total %.2f\n", sale.Total)
	return nil
}

func (a *App) listSales(ctx context.Context) error {
	sales, err := a.sales.List(ctx)
	if err != nil {
		showError(err)
		return err
	}
	return printSales(sales)
}

func (a *App) salesByDate(ctx context.Context) error {
	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	sales, err := a.sales.ByDate(ctx, date)
	if err != nil {
		showError(err)
		return err
	}
	return printSales(sales)
}

func (a *App) salesTrend(ctx context.Context) error {
	period, err := getSimpleText(a.reader, "Period (daily/weekly/monthly)", os.Stdout)
	if err != nil {
		return err
	}
	points, err := a.sales.Trend(ctx, period)
	if err != nil {
		showError(err)
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "PERIOD\tSALES\tTOTAL")
	for _, p := range points {
		fmt.Fprintf(w, "%s\t%d\t%.2f\n", p.Period, p.Count, p.Total)
	}
	return w.Flush()
}

func printSales(sales []models.Sale) error {
	w := newTable()
	fmt.Fprintln(w, "WHEN\tID\tITEMS\tTOTAL")
	for _, s := range sales {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\n", formatTime(s.CreatedAt), s.ID, len(s.Items), s.Total)
	}
	return w.Flush()
}
