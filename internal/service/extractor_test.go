package service

import (
	"reflect"
	"testing"
)

func TestExtractUPIHandles(t *testing.T) {
	extractor := IntelligenceExtractor{}

	intel := extractor.Extract("transfer everything to alice@paytm right now")
	if !reflect.DeepEqual(intel.UPIHandles, []string{"alice@paytm"}) {
		t.Fatalf("expected [alice@paytm], got %v", intel.UPIHandles)
	}

	intel = extractor.Extract("use 9876543210@ybl or scammer@okaxis")
	if len(intel.UPIHandles) != 2 {
		t.Fatalf("expected two handles, got %v", intel.UPIHandles)
	}
	if intel.UPIHandles[0] != "9876543210@ybl" || intel.UPIHandles[1] != "scammer@okaxis" {
		t.Fatalf("unexpected handles %v", intel.UPIHandles)
	}
}

func TestExtractBankAccounts(t *testing.T) {
	extractor := IntelligenceExtractor{}

	intel := extractor.Extract("deposit to 123456789012 today")
	if !reflect.DeepEqual(intel.BankAccounts, []string{"123456789012"}) {
		t.Fatalf("expected [123456789012], got %v", intel.BankAccounts)
	}

	// Corridas de digitos pegadas a otros caracteres de palabra no cuentan.
	intel = extractor.Extract("ref x1234567890x is not an account")
	if len(intel.BankAccounts) != 0 {
		t.Fatalf("expected no accounts for embedded digits, got %v", intel.BankAccounts)
	}

	// Muy corta (8 digitos) y muy larga (19 digitos) quedan fuera.
	intel = extractor.Extract("codes 12345678 and 1234567890123456789")
	if len(intel.BankAccounts) != 0 {
		t.Fatalf("expected no accounts outside 9-18 digits, got %v", intel.BankAccounts)
	}
}

func TestExtractPhishingLinks(t *testing.T) {
	extractor := IntelligenceExtractor{}

	intel := extractor.Extract("verify here https://secure-bank.example.com and http://bit.ly%2Fabc")
	if len(intel.PhishingLinks) != 2 {
		t.Fatalf("expected two links, got %v", intel.PhishingLinks)
	}
	if intel.PhishingLinks[0] != "https://secure-bank.example.com" {
		t.Fatalf("unexpected first link %q", intel.PhishingLinks[0])
	}
}

func TestExtractDeduplicatesWithinCall(t *testing.T) {
	extractor := IntelligenceExtractor{}

	intel := extractor.Extract("pay alice@paytm, I repeat, alice@paytm, account 445566778899 or 445566778899")
	if len(intel.UPIHandles) != 1 {
		t.Fatalf("expected deduplicated handles, got %v", intel.UPIHandles)
	}
	if len(intel.BankAccounts) != 1 {
		t.Fatalf("expected deduplicated accounts, got %v", intel.BankAccounts)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	extractor := IntelligenceExtractor{}
	text := "send to 9876543210@ybl account 445566778899 via http://phish.example"

	first := extractor.Extract(text)
	second := extractor.Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %v vs %v", first, second)
	}
}

func TestExtractEmptyTextYieldsEmptyCollections(t *testing.T) {
	extractor := IntelligenceExtractor{}

	intel := extractor.Extract("nothing suspicious here")
	if intel.HasFindings() {
		t.Fatalf("expected no findings, got %+v", intel)
	}
	if intel.BankAccounts == nil || intel.UPIHandles == nil || intel.PhishingLinks == nil {
		t.Fatalf("expected initialized empty collections, got %+v", intel)
	}
}
