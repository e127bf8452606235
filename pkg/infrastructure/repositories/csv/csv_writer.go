package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// Writer persists scenarios in the layout Loader reads
type Writer struct{}

// NewWriter creates a new CSV writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteScenario writes every scenario file into dir, creating it when needed
func (w *Writer) WriteScenario(dir string, scenario *Scenario) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create scenario directory: %w", err)
	}

	if err := writeRecords(filepath.Join(dir, ProductsFile), productsHeader, productRows(scenario.Products)); err != nil {
		return err
	}
	if err := writeRecords(filepath.Join(dir, BOMsFile), bomsHeader, bomRows(scenario.BOMs)); err != nil {
		return err
	}
	if err := writeRecords(filepath.Join(dir, SalesFile), salesHeader, saleRows(scenario.Sales)); err != nil {
		return err
	}
	if err := writeRecords(filepath.Join(dir, QuotationsFile), quotationsHeader, quotationRows(scenario.Quotations)); err != nil {
		return err
	}

	if scenario.HasSelection {
		return w.WriteSelection(filepath.Join(dir, SelectionFile), scenario.Selection)
	}
	return nil
}

// WriteSelection writes a selection file
func (w *Writer) WriteSelection(filename string, selection entities.Selection) error {
	data, err := yaml.Marshal(selectionDocument{
		Mode:       selection.Mode.String(),
		Sales:      selection.SaleIDs,
		Quotations: selection.QuotationIDs,
	})
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write selection file %s: %w", filename, err)
	}
	return nil
}

func writeRecords(filename string, header []string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", filename, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

func productRows(products []*entities.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.ID, p.Code, p.Name, p.Unit, p.Quantity.String(), p.UnitPrice.String(), p.UnitCost.String(),
		})
	}
	return rows
}

func bomRows(boms []*entities.BOMDefinition) [][]string {
	rows := make([][]string, 0)
	for _, bom := range boms {
		if len(bom.Components) == 0 {
			rows = append(rows, []string{bom.ID, bom.ProductName, bom.ProductCode, "", "", ""})
			continue
		}
		for _, c := range bom.Components {
			rows = append(rows, []string{
				bom.ID, bom.ProductName, bom.ProductCode, c.ProductID, c.QuantityPerUnit.String(), c.Unit,
			})
		}
	}
	return rows
}

func saleRows(sales []*entities.Sale) [][]string {
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			s.ID, s.CustomerName, s.ProductID, s.ProductName, s.Quantity.String(), s.UnitPrice.String(),
			strconv.FormatBool(s.IsBOMProduct), s.BOMID, s.Status.String(),
		})
	}
	return rows
}

func quotationRows(quotations []*entities.Quotation) [][]string {
	rows := make([][]string, 0)
	for _, q := range quotations {
		if len(q.Items) == 0 {
			rows = append(rows, []string{q.ID, q.Number, q.CustomerName, q.Status.String(), "", "", "", ""})
			continue
		}
		for _, item := range q.Items {
			rows = append(rows, []string{
				q.ID, q.Number, q.CustomerName, q.Status.String(),
				item.ProductID, item.ProductName, item.Quantity.String(), item.UnitPrice.String(),
			})
		}
	}
	return rows
}
