package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimLeft(content, "\n")), 0644))
	return path
}

func TestLoader_LoadScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ProductsFile, `
id,code,name,unit,quantity,price,cost
A,A-01,Assembly,EA,0,120.50,80
C,C-01,Component,KG,"4,5",abc,
`)
	writeFile(t, dir, BOMsFile, `
bom_id,product_name,product_code,component_id,quantity_per_unit,unit
BOM-A,Assembly,A-01,C,0.25,KG
BOM-A,Assembly,A-01,D,2,EA
BOM-E,Empty kit,,,,
`)
	writeFile(t, dir, SalesFile, `
id,customer_name,product_id,product_name,quantity,unit_price,is_bom_product,bom_id,status
S1,Acme,A,Assembly,2,100,true,BOM-A,pending
S2,Globex,C,Component,not-a-number,,false,,shipped
`)
	writeFile(t, dir, QuotationsFile, `
quotation_id,number,customer_name,status,product_id,product_name,quantity,unit_price
Q1,TKL-1,Acme,draft,C,Component,3,10
Q1,TKL-1,Acme,draft,A,Assembly,1,100
Q2,TKL-2,Hooli,approved,,,,
`)
	writeFile(t, dir, SelectionFile, `
mode: sales-only
sales: [S1]
quotations:
  - Q1
`)

	scenario, err := NewLoader().LoadScenario(dir)
	require.NoError(t, err)

	require.Len(t, scenario.Products, 2)
	assert.True(t, scenario.Products[1].Quantity.Equal(entities.ParseQuantity("4.5")), "comma decimal separator")
	assert.True(t, scenario.Products[1].UnitPrice.IsZero(), "malformed price parses to zero")
	assert.Equal(t, "120.5", scenario.Products[0].UnitPrice.String())

	require.Len(t, scenario.BOMs, 2)
	assert.Len(t, scenario.BOMs[0].Components, 2)
	assert.Equal(t, "KG", scenario.BOMs[0].Components[0].Unit)
	assert.Empty(t, scenario.BOMs[1].Components)

	require.Len(t, scenario.Sales, 2)
	assert.True(t, scenario.Sales[0].IsBOMBacked())
	assert.True(t, scenario.Sales[1].Quantity.IsZero(), "malformed quantity parses to zero")
	assert.Equal(t, entities.SaleShipped, scenario.Sales[1].Status)

	require.Len(t, scenario.Quotations, 2)
	assert.Len(t, scenario.Quotations[0].Items, 2)
	assert.Empty(t, scenario.Quotations[1].Items)
	assert.Equal(t, entities.QuotationApproved, scenario.Quotations[1].Status)

	require.True(t, scenario.HasSelection)
	assert.Equal(t, entities.ModeSalesOnly, scenario.Selection.Mode)
	assert.Equal(t, []string{"S1"}, scenario.Selection.SaleIDs)
	assert.Equal(t, []string{"Q1"}, scenario.Selection.QuotationIDs)
}

func TestLoader_OptionalFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ProductsFile, "id,code,name,unit,quantity,price,cost\n")

	scenario, err := NewLoader().LoadScenario(dir)
	require.NoError(t, err)
	assert.Empty(t, scenario.Products)
	assert.Nil(t, scenario.Sales)
	assert.False(t, scenario.HasSelection)

	_, err = NewLoader().LoadScenario(t.TempDir())
	assert.Error(t, err, "products file is required")
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader()

	testCases := []struct {
		name     string
		load     func(string) error
		file     string
		content  string
		contains string
	}{
		{
			name:     "header mismatch",
			load:     func(p string) error { _, err := loader.LoadProducts(p); return err },
			file:     "bad_header.csv",
			content:  "id,name\nP1,Bolt\n",
			contains: "header mismatch",
		},
		{
			name:     "column count",
			load:     func(p string) error { _, err := loader.LoadSales(p); return err },
			file:     "short_row.csv",
			content:  strings.Join(salesHeader, ",") + "\nS1,Acme\n",
			contains: "expected 9 columns",
		},
		{
			name:     "invalid sale status",
			load:     func(p string) error { _, err := loader.LoadSales(p); return err },
			file:     "status.csv",
			content:  strings.Join(salesHeader, ",") + "\nS1,Acme,P1,,1,,false,,lost\n",
			contains: "invalid sale status",
		},
		{
			name:     "non-positive component",
			load:     func(p string) error { _, err := loader.LoadBOMs(p); return err },
			file:     "bom.csv",
			content:  strings.Join(bomsHeader, ",") + "\nBOM-1,Kit,,C,0,EA\n",
			contains: "row 2",
		},
		{
			name:     "empty file",
			load:     func(p string) error { _, err := loader.LoadQuotations(p); return err },
			file:     "empty.csv",
			content:  "",
			contains: "header row",
		},
		{
			name:     "invalid mode",
			load:     func(p string) error { _, err := loader.LoadSelection(p); return err },
			file:     "selection.yaml",
			content:  "mode: everything\n",
			contains: "selection file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			err := tc.load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := &Scenario{
		Products: []*entities.Product{
			{ID: "A", Code: "A-01", Name: "Assembly", Unit: "EA", Quantity: entities.NewQuantity(1)},
			{ID: "C", Code: "C-01", Name: "Component", Unit: "KG", Quantity: entities.ParseQuantity("2.75")},
		},
		BOMs: []*entities.BOMDefinition{
			{ID: "BOM-A", ProductName: "Assembly", ProductCode: "A-01", Components: []entities.BOMComponent{
				{ProductID: "C", QuantityPerUnit: entities.ParseQuantity("0.5"), Unit: "KG"},
			}},
			{ID: "BOM-E", ProductName: "Empty"},
		},
		Sales: []*entities.Sale{
			{ID: "S1", CustomerName: "Acme, Inc.", ProductID: "A", Quantity: entities.NewQuantity(3), IsBOMProduct: true, BOMID: "BOM-A"},
		},
		Quotations: []*entities.Quotation{
			{ID: "Q1", Number: "TKL-1", CustomerName: "Hooli", Status: entities.QuotationSent, Items: []entities.QuotationItem{
				{ProductID: "C", Quantity: entities.NewQuantity(4)},
			}},
		},
		Selection:    entities.Selection{SaleIDs: []string{"S1"}, QuotationIDs: []string{"Q1"}, Mode: entities.ModeQuotesOnly},
		HasSelection: true,
	}

	require.NoError(t, NewWriter().WriteScenario(dir, original))
	loaded, err := NewLoader().LoadScenario(dir)
	require.NoError(t, err)

	require.Len(t, loaded.Products, 2)
	assert.True(t, loaded.Products[1].Quantity.Equal(original.Products[1].Quantity))
	require.Len(t, loaded.BOMs, 2)
	assert.True(t, loaded.BOMs[0].Components[0].QuantityPerUnit.Equal(entities.ParseQuantity("0.5")))
	assert.Empty(t, loaded.BOMs[1].Components)
	assert.Equal(t, "Acme, Inc.", loaded.Sales[0].CustomerName)
	assert.True(t, loaded.Sales[0].IsBOMBacked())
	assert.Equal(t, entities.QuotationSent, loaded.Quotations[0].Status)
	assert.Equal(t, original.Selection, loaded.Selection)
}
