package invest

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeTransactions_Canonical(t *testing.T) {
	ledger, err := ParseTransactions([]byte(sectionedFile))
	if err != nil {
		t.Fatalf("ParseTransactions() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, ledger); err != nil {
		t.Fatalf("EncodeTransactions() failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "transactions:") {
		t.Errorf("canonical output does not start with a transactions list:\n%s", out)
	}
	// the sections fold into the flat list
	if strings.Contains(out, "investments:") || strings.Contains(out, "dividends:") {
		t.Errorf("canonical output still has sectioned shape:\n%s", out)
	}
	if !strings.Contains(out, "investment_type: fund") {
		t.Errorf("canonical output lost the fund type:\n%s", out)
	}
}

func TestEncodeTransactions_Idempotent(t *testing.T) {
	ledger, err := ParseTransactions([]byte(sectionedFile))
	if err != nil {
		t.Fatalf("ParseTransactions() failed: %v", err)
	}

	var first bytes.Buffer
	if err := EncodeTransactions(&first, ledger); err != nil {
		t.Fatalf("EncodeTransactions() failed: %v", err)
	}

	reparsed, err := ParseTransactions(first.Bytes())
	if err != nil {
		t.Fatalf("ParseTransactions() of canonical output failed: %v", err)
	}
	if reparsed.Len() != ledger.Len() {
		t.Fatalf("reparsed ledger has %d transactions, want %d", reparsed.Len(), ledger.Len())
	}

	var second bytes.Buffer
	if err := EncodeTransactions(&second, reparsed); err != nil {
		t.Fatalf("EncodeTransactions() failed: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("formatting is not idempotent:\nfirst:\n%s\nsecond:\n%s", first.String(), second.String())
	}
}
