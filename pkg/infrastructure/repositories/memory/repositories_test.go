package memory

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

func TestProductRepository_LoadAndGet(t *testing.T) {
	repo := NewProductRepository(2)

	err := repo.LoadProducts([]*entities.Product{
		{ID: "P1", Code: "GB-01", Name: "Gearbox", Quantity: entities.NewQuantity(4)},
		{ID: "P1", Code: "DUP", Name: "Duplicate"},
		nil,
		{ID: "P2", Code: "SH-01", Name: "Shaft"},
	})
	if err != nil {
		t.Fatalf("Failed to load products: %v", err)
	}

	product, err := repo.GetProduct("P1")
	if err != nil {
		t.Fatalf("Failed to get product: %v", err)
	}
	if product.Name != "Gearbox" {
		t.Errorf("Expected first product to win, got %s", product.Name)
	}

	product.Name = "mutated"
	again, _ := repo.GetProduct("P1")
	if again.Name != "Gearbox" {
		t.Error("Expected repository to return copies")
	}

	all, _ := repo.GetAllProducts()
	if len(all) != 2 {
		t.Errorf("Expected 2 products, got %d", len(all))
	}

	if _, err := repo.GetProduct("missing"); !errors.Is(err, entities.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestBOMRepository_LoadAndGet(t *testing.T) {
	repo := NewBOMRepository(1)
	components := []entities.BOMComponent{{ProductID: "C", QuantityPerUnit: entities.NewQuantity(3)}}

	if err := repo.LoadBOMs([]*entities.BOMDefinition{{ID: "BOM-A", ProductName: "Assembly", Components: components}}); err != nil {
		t.Fatalf("Failed to load BOMs: %v", err)
	}
	components[0].ProductID = "changed"

	bom, err := repo.GetBOM("BOM-A")
	if err != nil {
		t.Fatalf("Failed to get BOM: %v", err)
	}
	if bom.Components[0].ProductID != "C" {
		t.Errorf("Expected stored components to be isolated from caller, got %s", bom.Components[0].ProductID)
	}

	if _, err := repo.GetBOM("BOM-X"); !errors.Is(err, entities.ErrBOMNotFound) {
		t.Errorf("Expected ErrBOMNotFound, got %v", err)
	}
}

func TestSalesAndQuotationRepositories(t *testing.T) {
	sales := NewSalesRepository(2)
	_ = sales.LoadSales([]*entities.Sale{
		{ID: "S1", ProductID: "P1", Quantity: entities.NewQuantity(1)},
		{ID: "S2", ProductID: "P2", Quantity: entities.NewQuantity(2)},
	})

	all, _ := sales.GetSales()
	if len(all) != 2 || all[0].ID != "S1" || all[1].ID != "S2" {
		t.Errorf("Expected sales in load order, got %+v", all)
	}
	if _, err := sales.GetSale("S3"); err == nil {
		t.Error("Expected error for unknown sale")
	}

	quotations := NewQuotationRepository(1)
	_ = quotations.LoadQuotations([]*entities.Quotation{
		{ID: "Q1", Items: []entities.QuotationItem{{ProductID: "P1", Quantity: entities.NewQuantity(5)}}},
	})
	quotation, err := quotations.GetQuotation("Q1")
	if err != nil {
		t.Fatalf("Failed to get quotation: %v", err)
	}
	if len(quotation.Items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(quotation.Items))
	}
}

func TestWorkOrderRepository_ConcurrentSaves(t *testing.T) {
	repo := NewWorkOrderRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order := &entities.WorkOrder{BOMID: "BOM-A", Quantity: entities.NewQuantity(1), CreatedAt: time.Now()}
			if err := repo.SaveWorkOrder(order); err != nil {
				t.Errorf("Failed to save work order: %v", err)
			}
		}()
	}
	wg.Wait()

	orders, _ := repo.GetAllWorkOrders()
	if len(orders) != 50 {
		t.Fatalf("Expected 50 work orders, got %d", len(orders))
	}
	if _, err := uuid.Parse(orders[0].ID); err != nil {
		t.Errorf("Expected generated UUID, got %q", orders[0].ID)
	}

	orders[0].Status = entities.WorkOrderCompleted
	if err := repo.SaveWorkOrder(orders[0]); err != nil {
		t.Fatalf("Failed to update work order: %v", err)
	}
	updated, _ := repo.GetWorkOrder(orders[0].ID)
	if updated.Status != entities.WorkOrderCompleted {
		t.Errorf("Expected updated status, got %s", updated.Status)
	}

	if _, err := repo.GetWorkOrder("missing"); !errors.Is(err, entities.ErrWorkOrderNotFound) {
		t.Errorf("Expected ErrWorkOrderNotFound, got %v", err)
	}
	if err := repo.SaveWorkOrder(nil); err == nil {
		t.Error("Expected error for nil work order")
	}
}
