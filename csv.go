package xlgrid

import (
	"encoding/csv"
	"fmt"
	"os"
)

func readCSV(path string, o *Options) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = o.comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

func writeCSVFile(path string, g *Grid, o *Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = o.comma
	if err := w.Write(g.headers); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(g.rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
