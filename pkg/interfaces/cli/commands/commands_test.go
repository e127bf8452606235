package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/mrpanalysis/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/mrpanalysis/pkg/interfaces/cli/output"
)

func generateScenario(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "scenario")
	cmd := NewGenerateCommand(GenerateConfig{
		Materials:     15,
		Assemblies:    3,
		MaxComponents: 3,
		Sales:         12,
		Quotations:    6,
		BOMSaleRatio:  0.5,
		Stock:         0.8,
		OutputDir:     dir,
		Seed:          42,
	})
	require.NoError(t, cmd.Execute(context.Background()))
	return dir
}

func TestGenerateCommand_WritesLoadableScenario(t *testing.T) {
	dir := generateScenario(t)

	scenario, err := csv.NewLoader().LoadScenario(dir)
	require.NoError(t, err)

	assert.Len(t, scenario.Products, 18)
	assert.Len(t, scenario.BOMs, 3)
	assert.Len(t, scenario.Sales, 12)
	assert.Len(t, scenario.Quotations, 6)
	assert.True(t, scenario.HasSelection)

	for _, bom := range scenario.BOMs {
		assert.NotEmpty(t, bom.Components)
		assert.LessOrEqual(t, len(bom.Components), 3)
	}
	for _, sale := range scenario.Sales {
		if sale.IsBOMProduct {
			assert.NotEmpty(t, sale.BOMID)
		}
	}
}

func TestGenerateCommand_SameSeedSameScenario(t *testing.T) {
	first := generateScenario(t)
	second := generateScenario(t)

	for _, name := range []string{csv.ProductsFile, csv.BOMsFile, csv.QuotationsFile} {
		a, err := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), name)
	}
}

func TestGenerateCommand_Validation(t *testing.T) {
	err := NewGenerateCommand(GenerateConfig{Materials: 5}).Execute(context.Background())
	assert.ErrorContains(t, err, "--output is required")

	err = NewGenerateCommand(GenerateConfig{OutputDir: t.TempDir()}).Execute(context.Background())
	assert.ErrorContains(t, err, "--materials must be positive")

	err = NewGenerateCommand(GenerateConfig{Materials: 1, BOMSaleRatio: 2, OutputDir: t.TempDir()}).Execute(context.Background())
	assert.ErrorContains(t, err, "--bom-ratio")
}

func TestAnalyzeCommand_JSONOutput(t *testing.T) {
	dir := generateScenario(t)
	out := t.TempDir()

	cmd := NewAnalyzeCommand(Config{ScenarioDir: dir, Format: "json", OutputDir: out})
	require.NoError(t, cmd.Execute(context.Background()))

	data, err := os.ReadFile(filepath.Join(out, output.JSONFile))
	require.NoError(t, err)

	var run struct {
		ID     string `json:"id"`
		Result struct {
			Summary struct {
				Total int `json:"total"`
			} `json:"summary"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(data, &run))
	assert.NotEmpty(t, run.ID)
	assert.Positive(t, run.Result.Summary.Total)
}

func TestAnalyzeCommand_ExplicitIDs(t *testing.T) {
	dir := writeScenario(t)
	out := t.TempDir()

	cmd := NewAnalyzeCommand(Config{ScenarioDir: dir, SaleIDs: "S-1", Format: "csv", OutputDir: out})
	require.NoError(t, cmd.Execute(context.Background()))

	data, err := os.ReadFile(filepath.Join(out, output.RowsCSVFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "P-1,Shaft,SH-01,EA,4,1,-3,SHORTAGE")
	assert.NotContains(t, string(data), "P-2")
}

func TestAnalyzeCommand_EmptySelection(t *testing.T) {
	dir := writeScenario(t)

	err := NewAnalyzeCommand(Config{ScenarioDir: dir, Format: "json", OutputDir: t.TempDir()}).Execute(context.Background())
	assert.ErrorContains(t, err, "no sales orders or quotations selected")
}

func TestAnalyzeCommand_AllActiveSources(t *testing.T) {
	dir := writeScenario(t)
	out := t.TempDir()

	cmd := NewAnalyzeCommand(Config{ScenarioDir: dir, All: true, Format: "csv", OutputDir: out})
	require.NoError(t, cmd.Execute(context.Background()))

	data, err := os.ReadFile(filepath.Join(out, output.RowsCSVFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "P-1,Shaft")
	assert.Contains(t, string(data), "P-2,Bearing")
}

func TestAnalyzeCommand_InvalidInputs(t *testing.T) {
	err := NewAnalyzeCommand(Config{}).Execute(context.Background())
	assert.ErrorContains(t, err, "must specify -scenario")

	err = NewAnalyzeCommand(Config{ScenarioDir: filepath.Join(t.TempDir(), "missing")}).Execute(context.Background())
	assert.ErrorContains(t, err, "scenario directory not found")

	err = NewAnalyzeCommand(Config{ScenarioDir: t.TempDir(), Mode: "weekly"}).Execute(context.Background())
	assert.ErrorContains(t, err, "invalid source mode")
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"S-1", "S-2"}, splitIDs(" S-1, ,S-2,"))
	assert.Nil(t, splitIDs(""))
}

func writeScenario(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		csv.ProductsFile: "id,code,name,unit,quantity,price,cost\n" +
			"P-1,SH-01,Shaft,EA,1,10,5\n" +
			"P-2,BR-01,Bearing,EA,0,4,2\n",
		csv.SalesFile: "id,customer_name,product_id,product_name,quantity,unit_price,is_bom_product,bom_id,status\n" +
			"S-1,Acme,P-1,Shaft,4,10,false,,PENDING\n",
		csv.QuotationsFile: "quotation_id,number,customer_name,status,product_id,product_name,quantity,unit_price\n" +
			"Q-1,TKL-1,Globex,SENT,P-2,Bearing,2,4\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}
