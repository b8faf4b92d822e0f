package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/odelab/internal/analysis"
)

func WriteJSON(w io.Writer, report *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func ExportJSON(path string, report *analysis.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, report)
}
