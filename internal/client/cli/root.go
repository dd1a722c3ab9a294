package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if user := a.session.CurrentUser(); user != nil {
		return fmt.Sprintf("(%s)", user.Username)
	}
	return ""
}

// Root runs the command loop until EOF or an exit command.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to the pharmacy dashboard (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("ph %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Catalog: products, addproduct, editproduct, delproduct, importcsv, movements")
				fmt.Println("Sales:   sell, sales, salesbydate, trend")
				fmt.Println("Alerts:  alerts, alerthistory, ack [id...], ackall")
				fmt.Println("Other:   logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)

		case "products":
			a.listProducts(ctx)
		case "addproduct":
			a.addProduct(ctx)
		case "editproduct":
			a.editProduct(ctx)
		case "delproduct":
			a.deleteProduct(ctx)
		case "importcsv":
			a.importCSV(ctx)
		case "movements":
			a.listMovements(ctx)

		case "sell":
			a.recordSale(ctx)
		case "sales":
			a.listSales(ctx)
		case "salesbydate":
			a.salesByDate(ctx)
		case "trend":
			a.salesTrend(ctx)

		case "alerts":
			a.listAlerts(ctx)
		case "alerthistory":
			a.alertHistory(ctx)
		case "ack":
			a.acknowledgeAlerts(ctx, args)
		case "ackall":
			a.acknowledgeAll(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
