package display

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrettyPrintJSON writes v as indented JSON
func PrettyPrintJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%sError formatting JSON: %s%s\n", Red, err.Error(), Reset)
		return
	}
	fmt.Fprintln(w, string(data))
}

// Verdict renders a legality answer as a colored word
func Verdict(legal bool) string {
	if legal {
		return Green + "legal" + Reset
	}
	return Red + "illegal" + Reset
}

// Square formats a board square as (row,column)
func Square(row, column int) string {
	return fmt.Sprintf("(%d,%d)", row, column)
}
