package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/Fury174k/pharmstock/internal/client/api"
)

// showError renders a failure for the user. Normalized API errors are shown
// by message; validation errors additionally list the offending fields.
func showError(err error) {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		fmt.Println("Error:", err.Error())
		return
	}

	fmt.Println("Error:", apiErr.Message)
	if apiErr.Kind != api.KindValidation {
		return
	}

	names := make([]string, 0, len(apiErr.Fields))
	for name := range apiErr.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, msg := range apiErr.Fields[name] {
			fmt.Printf("  %s: %s\n", name, msg)
		}
	}
}

// newTable returns a tabwriter for aligned tabular output on stdout.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
