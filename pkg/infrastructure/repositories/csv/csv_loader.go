package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// Scenario file names inside a scenario directory
const (
	ProductsFile   = "products.csv"
	BOMsFile       = "boms.csv"
	SalesFile      = "sales.csv"
	QuotationsFile = "quotations.csv"
	SelectionFile  = "selection.yaml"
)

var (
	productsHeader   = []string{"id", "code", "name", "unit", "quantity", "price", "cost"}
	bomsHeader       = []string{"bom_id", "product_name", "product_code", "component_id", "quantity_per_unit", "unit"}
	salesHeader      = []string{"id", "customer_name", "product_id", "product_name", "quantity", "unit_price", "is_bom_product", "bom_id", "status"}
	quotationsHeader = []string{"quotation_id", "number", "customer_name", "status", "product_id", "product_name", "quantity", "unit_price"}
)

// Scenario is every collection one analysis reads, as loaded from disk
type Scenario struct {
	Products     []*entities.Product
	BOMs         []*entities.BOMDefinition
	Sales        []*entities.Sale
	Quotations   []*entities.Quotation
	Selection    entities.Selection
	HasSelection bool
}

// Loader handles loading analysis data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadScenario loads a scenario directory. Sales, quotations and BOMs are
// optional files; the selection file is optional too.
func (l *Loader) LoadScenario(dir string) (*Scenario, error) {
	scenario := &Scenario{}
	var err error

	if scenario.Products, err = l.LoadProducts(filepath.Join(dir, ProductsFile)); err != nil {
		return nil, err
	}
	if scenario.BOMs, err = optional(l.LoadBOMs, filepath.Join(dir, BOMsFile)); err != nil {
		return nil, err
	}
	if scenario.Sales, err = optional(l.LoadSales, filepath.Join(dir, SalesFile)); err != nil {
		return nil, err
	}
	if scenario.Quotations, err = optional(l.LoadQuotations, filepath.Join(dir, QuotationsFile)); err != nil {
		return nil, err
	}

	selection, err := l.LoadSelection(filepath.Join(dir, SelectionFile))
	switch {
	case err == nil:
		scenario.Selection = *selection
		scenario.HasSelection = true
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	return scenario, nil
}

func optional[T any](load func(string) ([]T, error), filename string) ([]T, error) {
	records, err := load(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return records, err
}

// LoadProducts loads the product catalog with current stock
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readRecords(filename, "products", productsHeader)
	if err != nil {
		return nil, err
	}

	products := make([]*entities.Product, 0, len(records))
	for i, record := range records {
		product, err := entities.NewProduct(
			strings.TrimSpace(record[0]),
			strings.TrimSpace(record[1]),
			strings.TrimSpace(record[2]),
			strings.TrimSpace(record[3]),
			entities.ParseQuantity(record[4]),
		)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		product.UnitPrice = entities.ParseMoney(record[5])
		product.UnitCost = entities.ParseMoney(record[6])
		products = append(products, product)
	}

	return products, nil
}

// LoadBOMs loads BOM definitions, one row per component. Rows sharing a
// bom_id are grouped in file order; a row with an empty component_id
// declares a BOM without components.
func (l *Loader) LoadBOMs(filename string) ([]*entities.BOMDefinition, error) {
	records, err := readRecords(filename, "BOM", bomsHeader)
	if err != nil {
		return nil, err
	}

	boms := make([]*entities.BOMDefinition, 0)
	index := make(map[string]int)

	for i, record := range records {
		bomID := strings.TrimSpace(record[0])

		pos, exists := index[bomID]
		if !exists {
			bom, err := entities.NewBOMDefinition(bomID, strings.TrimSpace(record[1]), strings.TrimSpace(record[2]), nil)
			if err != nil {
				return nil, fmt.Errorf("BOM CSV row %d: %w", i+2, err)
			}
			pos = len(boms)
			index[bomID] = pos
			boms = append(boms, bom)
		}

		componentID := strings.TrimSpace(record[3])
		if componentID == "" {
			continue
		}
		component, err := entities.NewBOMComponent(componentID, entities.ParseQuantity(record[4]), strings.TrimSpace(record[5]))
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: %w", i+2, err)
		}
		boms[pos].Components = append(boms[pos].Components, *component)
	}

	return boms, nil
}

// LoadSales loads single-line sales orders
func (l *Loader) LoadSales(filename string) ([]*entities.Sale, error) {
	records, err := readRecords(filename, "sales", salesHeader)
	if err != nil {
		return nil, err
	}

	sales := make([]*entities.Sale, 0, len(records))
	for i, record := range records {
		sale, err := parseSale(record)
		if err != nil {
			return nil, fmt.Errorf("sales CSV row %d: %w", i+2, err)
		}
		sales = append(sales, &sale)
	}

	return sales, nil
}

// LoadQuotations loads quotations, one row per line item grouped by quotation_id
func (l *Loader) LoadQuotations(filename string) ([]*entities.Quotation, error) {
	records, err := readRecords(filename, "quotations", quotationsHeader)
	if err != nil {
		return nil, err
	}

	quotations := make([]*entities.Quotation, 0)
	index := make(map[string]int)

	for i, record := range records {
		id := strings.TrimSpace(record[0])
		if id == "" {
			return nil, fmt.Errorf("quotations CSV row %d: quotation_id cannot be empty", i+2)
		}

		pos, exists := index[id]
		if !exists {
			status, err := entities.ParseQuotationStatus(record[3])
			if err != nil {
				return nil, fmt.Errorf("quotations CSV row %d: %w", i+2, err)
			}
			pos = len(quotations)
			index[id] = pos
			quotations = append(quotations, &entities.Quotation{
				ID:           id,
				Number:       strings.TrimSpace(record[1]),
				CustomerName: strings.TrimSpace(record[2]),
				Status:       status,
			})
		}

		productID := strings.TrimSpace(record[4])
		if productID == "" && strings.TrimSpace(record[5]) == "" {
			continue
		}
		quotations[pos].Items = append(quotations[pos].Items, entities.QuotationItem{
			ProductID:   productID,
			ProductName: strings.TrimSpace(record[5]),
			Quantity:    entities.ParseQuantity(record[6]),
			UnitPrice:   entities.ParseMoney(record[7]),
		})
	}

	return quotations, nil
}

type selectionDocument struct {
	Mode       string   `yaml:"mode"`
	Sales      []string `yaml:"sales"`
	Quotations []string `yaml:"quotations"`
}

// LoadSelection reads the analyst's source selection from a YAML file
func (l *Loader) LoadSelection(filename string) (*entities.Selection, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open selection file %s: %w", filename, err)
	}

	var doc selectionDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse selection file %s: %w", filename, err)
	}

	mode, err := entities.ParseSourceMode(doc.Mode)
	if err != nil {
		return nil, fmt.Errorf("selection file %s: %w", filename, err)
	}

	return &entities.Selection{
		SaleIDs:      doc.Sales,
		QuotationIDs: doc.Quotations,
		Mode:         mode,
	}, nil
}

// Helper functions for parsing CSV records

func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s CSV must have a header row", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	for i, record := range records {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}

	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range actual {
		if strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")) != expected[i] {
			return false
		}
	}

	return true
}

func parseSale(record []string) (entities.Sale, error) {
	id := strings.TrimSpace(record[0])
	if id == "" {
		return entities.Sale{}, fmt.Errorf("id cannot be empty")
	}

	status, err := entities.ParseSaleStatus(record[8])
	if err != nil {
		return entities.Sale{}, err
	}

	return entities.Sale{
		ID:           id,
		CustomerName: strings.TrimSpace(record[1]),
		ProductID:    strings.TrimSpace(record[2]),
		ProductName:  strings.TrimSpace(record[3]),
		Quantity:     entities.ParseQuantity(record[4]),
		UnitPrice:    entities.ParseMoney(record[5]),
		IsBOMProduct: parseFlag(record[6]),
		BOMID:        strings.TrimSpace(record[7]),
		Status:       status,
	}, nil
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
