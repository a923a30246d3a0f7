package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seovista/crm-backend/internal/mapper"
)

var (
	testCompany = Party{Name: "SeoVista SL", TaxID: "B12345678", Address: "C/ Colón 5", City: "46004 Valencia", Email: "hola@seovista.es"}
	testClient  = Party{Name: "Panadería Sol", City: "Valencia", Email: "sol@example.com"}
)

func testInvoice() mapper.Invoice {
	return mapper.Invoice{
		InvoiceNumber: "2026-0042",
		BaseAmount:    decimal.NewFromInt(350),
		TaxRate:       decimal.NewFromInt(21),
		TaxAmount:     decimal.RequireFromString("73.5"),
		TotalAmount:   decimal.RequireFromString("423.5"),
		Status:        "pending",
		IssueDate:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestInvoiceRendersPDF(t *testing.T) {
	data, err := Invoice(InvoiceData{
		Invoice: testInvoice(),
		Concept: "SEO Local",
		Client:  testClient,
		Company: testCompany,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", data[:8])
	}
}

func TestInvoiceRequiresBothParties(t *testing.T) {
	if _, err := Invoice(InvoiceData{Invoice: testInvoice(), Client: testClient}); err != ErrMissingData {
		t.Fatalf("expected ErrMissingData without company, got %v", err)
	}
	if _, err := Invoice(InvoiceData{Invoice: testInvoice(), Company: testCompany}); err != ErrMissingData {
		t.Fatalf("expected ErrMissingData without client, got %v", err)
	}
}

func TestProposalRendersPDF(t *testing.T) {
	exp := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	data, err := Proposal(ProposalData{
		Proposal: mapper.Proposal{
			Title:       "Posicionamiento local",
			Description: "Plan SEO para la zona de Valencia.",
			AIContent:   "Primer párrafo.\n\nSegundo párrafo.",
			ExpiresAt:   &exp,
		},
		Price:    decimal.NewFromInt(350),
		Features: []string{"Ficha de Google Business", "Informe mensual"},
		Client:   testClient,
		Company:  testCompany,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestContractRendersPDF(t *testing.T) {
	signed := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	data, err := Contract(ContractData{
		Contract: mapper.Contract{
			Title:      "Contrato de servicios SEO",
			StartDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			SetupFee:   decimal.NewFromInt(200),
			MonthlyFee: decimal.NewFromInt(350),
			Sections: []mapper.ContractSection{
				{Position: 0, Title: "Objeto", Content: "Prestación de servicios de posicionamiento."},
				{Position: 1, Title: "Duración", Content: "Doce meses prorrogables."},
			},
			SignedByClient:       true,
			SignedByProfessional: true,
			SignedAt:             &signed,
		},
		Client:  testClient,
		Company: testCompany,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestReportRendersPDF(t *testing.T) {
	pos := 3
	data, err := Report(ReportData{
		Client:  testClient,
		Company: testCompany,
		Period:  "Agosto 2026",
		Keywords: []mapper.Keyword{
			{Keyword: "panadería valencia", Position: &pos},
			{Keyword: "pan artesano"},
		},
		Metrics: []ReportMetric{
			{Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), OrganicTraffic: 1200, KeywordsTop10: 4, DomainAuthority: 23},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestStatusColor(t *testing.T) {
	if StatusColor("paid") != colorPaid {
		t.Fatal("paid color wrong")
	}
	if StatusColor("cancelled") != colorCancelled {
		t.Fatal("cancelled color wrong")
	}
	// unknown statuses render as pending, never blank
	for _, s := range []string{"pending", "draft", "", "weird"} {
		if StatusColor(s) != colorPending {
			t.Fatalf("status %q should use the pending color", s)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	cases := map[string]string{
		"draft":     "BORRADOR",
		"pending":   "PENDIENTE",
		"paid":      "PAGADA",
		"cancelled": "ANULADA",
		"unknown":   "PENDIENTE",
	}
	for status, want := range cases {
		if got := StatusLabel(status); got != want {
			t.Fatalf("StatusLabel(%s) = %s, want %s", status, got, want)
		}
	}
}

func TestLongDate(t *testing.T) {
	got := LongDate(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	if got != "2 de enero de 2026" {
		t.Fatalf("got %q", got)
	}
}

func TestMonthYear(t *testing.T) {
	got := MonthYear(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	if got != "Agosto 2026" {
		t.Fatalf("got %q", got)
	}
}

func TestMoneyUsesSpanishFormat(t *testing.T) {
	got := Money(decimal.RequireFromString("1234.5"))
	if got != "1.234,50 €" {
		t.Fatalf("got %q", got)
	}
}
