package services

import (
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

func TestPDFInvoiceGenerator(t *testing.T) {
	order := &models.Order{
		UserId:      primitive.NewObjectID(),
		OrderNumber: "PAAN-26-07",
		Items: []models.OrderItem{
			{Name: "Silver Paan Tray", Quantity: 1, UnitPrice: 150, TotalPrice: 150},
			{Name: "Betel Leaf Box", Size: "L", Quantity: 2, UnitPrice: 150, TotalPrice: 300},
		},
		BillingAddress:  models.AddressSnapshot{FullName: "Asha Rao", StreetAddress: "12 MG Road", City: "Pune", State: "MH", ZipCode: "411001", Phone: "9000000001"},
		ShippingAddress: models.AddressSnapshot{FullName: "Asha Rao", StreetAddress: "8 Marine Drive", City: "Mumbai", State: "MH", ZipCode: "400001", Phone: "9000000001"},
		Subtotal:        450,
		Discount:        50,
		Total:           400,
		CreatedAt:       time.Now(),
	}

	g := &PDFInvoiceGenerator{OutDir: t.TempDir()}
	path, err := g.GenerateInvoice(order)
	if err != nil {
		t.Fatalf("GenerateInvoice: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("invoice file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("invoice file is empty")
	}
}
