package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crossfleet/rds-inventory/internal/aws"
)

func TestParseAccounts(t *testing.T) {
	t.Run("order preserved, blank name defaults to id", func(t *testing.T) {
		input := "account_id,name\n222222222222,staging\n111111111111,\n333333333333,prod\n"
		accounts, err := ParseAccounts(strings.NewReader(input))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		want := []aws.Account{
			{ID: "222222222222", Name: "staging"},
			{ID: "111111111111", Name: "111111111111"},
			{ID: "333333333333", Name: "prod"},
		}
		if len(accounts) != len(want) {
			t.Fatalf("expected %d accounts, got %d", len(want), len(accounts))
		}
		for i := range want {
			if accounts[i] != want[i] {
				t.Fatalf("account %d: expected %v, got %v", i, want[i], accounts[i])
			}
		}
	})

	t.Run("name column optional", func(t *testing.T) {
		accounts, err := ParseAccounts(strings.NewReader("account_id\n111111111111\n"))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if len(accounts) != 1 || accounts[0].Name != "111111111111" {
			t.Fatalf("expected id as name, got %v", accounts)
		}
	})

	t.Run("header case insensitive", func(t *testing.T) {
		accounts, err := ParseAccounts(strings.NewReader("Account_ID,Name\n111111111111,prod\n"))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if len(accounts) != 1 || accounts[0].Name != "prod" {
			t.Fatalf("expected one named account, got %v", accounts)
		}
	})

	t.Run("zero accounts tolerated", func(t *testing.T) {
		accounts, err := ParseAccounts(strings.NewReader("account_id,name\n"))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if len(accounts) != 0 {
			t.Fatalf("expected empty sequence, got %v", accounts)
		}
	})

	t.Run("missing account_id column is fatal", func(t *testing.T) {
		_, err := ParseAccounts(strings.NewReader("id,name\n111111111111,prod\n"))
		if err == nil || !strings.Contains(err.Error(), "account_id") {
			t.Fatalf("expected missing-column error, got %v", err)
		}
	})

	t.Run("blank id is fatal", func(t *testing.T) {
		_, err := ParseAccounts(strings.NewReader("account_id,name\n,prod\n"))
		if err == nil {
			t.Fatal("expected error for blank account id")
		}
	})

	t.Run("malformed id is fatal", func(t *testing.T) {
		_, err := ParseAccounts(strings.NewReader("account_id\n12345\n"))
		if err == nil {
			t.Fatal("expected error for malformed account id")
		}
	})

	t.Run("duplicate id is fatal", func(t *testing.T) {
		_, err := ParseAccounts(strings.NewReader("account_id\n111111111111\n111111111111\n"))
		if err == nil {
			t.Fatal("expected error for duplicate account id")
		}
	})
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.csv")
	if err := os.WriteFile(path, []byte("account_id,name\n111111111111,prod\n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	accounts, err := NewFileSource(path).Accounts(context.Background())
	if err != nil {
		t.Fatalf("reading accounts file: %v", err)
	}
	if len(accounts) != 1 || accounts[0].ID != "111111111111" {
		t.Fatalf("unexpected accounts %v", accounts)
	}

	if _, err := NewFileSource(filepath.Join(t.TempDir(), "missing.csv")).Accounts(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOrgSourceDefaultsNames(t *testing.T) {
	client := &fakeClient{accounts: []aws.Account{
		{ID: "111111111111", Name: "prod"},
		{ID: "222222222222"},
	}}

	accounts, err := NewOrgSource(client).Accounts(context.Background())
	if err != nil {
		t.Fatalf("listing accounts: %v", err)
	}
	if accounts[0].Name != "prod" {
		t.Fatalf("expected directory name kept, got %q", accounts[0].Name)
	}
	if accounts[1].Name != "222222222222" {
		t.Fatalf("expected id fallback, got %q", accounts[1].Name)
	}
}
