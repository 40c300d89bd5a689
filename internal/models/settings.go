package models

import (
	"fmt"
	"time"
)

// BusinessSettings is the singleton record holding the issuer's identity,
// bank details and invoicing preferences. Mutated wholesale.
type BusinessSettings struct {
	Name             string      `json:"name"`
	Street           string      `json:"street"`
	PostalCode       string      `json:"postalCode"`
	City             string      `json:"city"`
	TaxNumber        string      `json:"taxNumber,omitempty"`
	TaxNumberPending bool        `json:"taxNumberPending"`
	Email            string      `json:"email,omitempty"`
	Phone            string      `json:"phone,omitempty"`
	BankDetails      BankDetails `json:"bankDetails"`
	Preferences      Preferences `json:"preferences"`
}

type BankDetails struct {
	AccountHolder string `json:"accountHolder"`
	IBAN          string `json:"iban"`
	BIC           string `json:"bic"`
	BankName      string `json:"bankName"`
}

type Preferences struct {
	DefaultPaymentTerms   int    `json:"defaultPaymentTerms"`
	IsKleinunternehmer    bool   `json:"isKleinunternehmer"`
	InvoicePrefix         string `json:"invoicePrefix"`
	StartingInvoiceNumber int    `json:"startingInvoiceNumber"`
	Currency              string `json:"currency"`
}

// DefaultSettings returns the built-in settings record: empty issuer
// identity, Kleinunternehmer on, 14-day payment terms, invoice prefix
// derived from the current year.
func DefaultSettings() BusinessSettings {
	return BusinessSettings{
		TaxNumberPending: false,
		BankDetails:      BankDetails{},
		Preferences: Preferences{
			DefaultPaymentTerms:   14,
			IsKleinunternehmer:    true,
			InvoicePrefix:         fmt.Sprintf("%d-", time.Now().Year()),
			StartingInvoiceNumber: 1,
			Currency:              "EUR",
		},
	}
}
