package domain

import "testing"

func TestInvoiceValidate(t *testing.T) {
	tests := []struct {
		name    string
		invoice *Invoice
		wantErr bool
	}{
		{"valid", NewInvoice("Rent", 1, 1200, "u1"), false},
		{"zero amount and price allowed", NewInvoice("Rent", 0, 0, "u1"), false},
		{"empty description", NewInvoice("", 1, 10, "u1"), true},
		{"whitespace description", NewInvoice("   ", 1, 10, "u1"), true},
		{"negative amount", NewInvoice("Rent", -1, 10, "u1"), true},
		{"negative price", NewInvoice("Rent", 1, -10, "u1"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.invoice.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewInvoiceTrimsDescription(t *testing.T) {
	invoice := NewInvoice("  Rent  ", 1, 1200, "u1")
	if invoice.Description != "Rent" {
		t.Fatalf("expected trimmed description, got %q", invoice.Description)
	}
}

func TestInvoicePatch(t *testing.T) {
	if !(InvoicePatch{}).IsEmpty() {
		t.Fatalf("zero patch should be empty")
	}

	description := "Rent"
	if (InvoicePatch{Description: &description}).IsEmpty() {
		t.Fatalf("patch with a field should not be empty")
	}

	empty := ""
	if err := (InvoicePatch{Description: &empty}).Validate(); err == nil {
		t.Fatalf("expected error for blank description")
	}

	negative := -1.0
	if err := (InvoicePatch{Price: &negative}).Validate(); err == nil {
		t.Fatalf("expected error for negative price")
	}

	amount := 2.0
	if err := (InvoicePatch{Amount: &amount}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCredentialsValidate(t *testing.T) {
	valid := Credentials{Email: "a@b.c", Password: "pw"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range []Credentials{
		{Email: "", Password: "pw"},
		{Email: "not-an-email", Password: "pw"},
		{Email: "a@b.c", Password: ""},
	} {
		if err := c.Validate(); err == nil {
			t.Fatalf("expected error for %+v", c)
		}
	}
}
