package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Fury174k/pharmstock/internal/client/models"
)

func (a *App) listAlerts(ctx context.Context) error {
	alerts, err := a.alerts.LowStock(ctx)
	if err != nil {
		showError(err)
		return err
	}
	if len(alerts) == 0 {
		fmt.Println("No low-stock alerts.")
		return nil
	}
	return printAlerts(alerts)
}

func (a *App) alertHistory(ctx context.Context) error {
	alerts, err := a.alerts.History(ctx)
	if err != nil {
		showError(err)
		return err
	}
	return printAlerts(alerts)
}

func (a *App) acknowledgeAlerts(ctx context.Context, args []string) error {
	ids := args
	if len(ids) == 0 {
		line, err := getSimpleText(a.reader, "Alert IDs (space separated)", os.Stdout)
		if err != nil {
			return err
		}
		ids = strings.Fields(line)
	}
	if len(ids) == 0 {
		fmt.Println("Nothing to acknowledge.")
		return nil
	}

	if err := a.alerts.Acknowledge(ctx, ids...); err != nil {
		showError(err)
		return err
	}
	fmt.Println("Acknowledged.")
	return nil
}

func (a *App) acknowledgeAll(ctx context.Context) error {
	if err := a.alerts.AcknowledgeAll(ctx); err != nil {
		showError(err)
		return err
	}
	fmt.Println("All alerts acknowledged.")
	return nil
}

func printAlerts(alerts []models.Alert) error {
	w := newTable()
	fmt.Fprintln(w, "ID\tPRODUCT\tSKU\tSTOCK\tREORDER AT\tACK\tRAISED")
	for _, al := range alerts {
		ack := "no"
		if al.Acknowledged {
			ack = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			al.ID, al.ProductName, al.SKU, al.Stock, al.ReorderLevel, ack, formatTime(al.CreatedAt))
	}
	return w.Flush()
}
