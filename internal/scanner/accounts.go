package scanner

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/crossfleet/rds-inventory/internal/aws"
)

var accountIDPattern = regexp.MustCompile(`^\d{12}$`)

// AccountSource yields the target accounts, in scan order.
type AccountSource interface {
	Accounts(ctx context.Context) ([]aws.Account, error)
}

// OrgSource lists the accounts of the organization the base identity
// belongs to.
type OrgSource struct {
	client aws.Client
}

// NewOrgSource creates an AccountSource backed by AWS Organizations.
func NewOrgSource(client aws.Client) *OrgSource {
	return &OrgSource{client: client}
}

// Accounts pages through the organization directory. Accounts without a
// name fall back to their ID.
func (s *OrgSource) Accounts(ctx context.Context) ([]aws.Account, error) {
	accounts, err := s.client.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i, a := range accounts {
		if a.Name == "" {
			accounts[i].Name = a.ID
		}
	}
	return accounts, nil
}

// FileSource reads accounts from a CSV file with a header row. The
// account_id column is required; the name column is optional.
type FileSource struct {
	path string
}

// NewFileSource creates an AccountSource backed by a CSV file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Accounts parses the file, preserving row order.
func (s *FileSource) Accounts(_ context.Context) ([]aws.Account, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening accounts file: %w", err)
	}
	defer f.Close()

	accounts, err := ParseAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("parsing accounts file %s: %w", s.path, err)
	}
	return accounts, nil
}

// ParseAccounts reads CSV account rows. The header row must contain an
// account_id column; a name column is optional and blank names default to
// the account ID.
func ParseAccounts(r io.Reader) ([]aws.Account, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header row")
	}

	colIndex := make(map[string]int)
	for i, col := range records[0] {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	idCol, ok := colIndex["account_id"]
	if !ok {
		return nil, fmt.Errorf("missing required column account_id")
	}
	nameCol, hasName := colIndex["name"]

	seen := make(map[string]bool)
	accounts := make([]aws.Account, 0, len(records)-1)
	for n, row := range records[1:] {
		if idCol >= len(row) || strings.TrimSpace(row[idCol]) == "" {
			return nil, fmt.Errorf("row %d: missing account id", n+2)
		}
		id := strings.TrimSpace(row[idCol])
		if !accountIDPattern.MatchString(id) {
			return nil, fmt.Errorf("row %d: malformed account id %q", n+2, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("row %d: duplicate account id %s", n+2, id)
		}
		seen[id] = true

		name := ""
		if hasName && nameCol < len(row) {
			name = strings.TrimSpace(row[nameCol])
		}
		if name == "" {
			name = id
		}
		accounts = append(accounts, aws.Account{ID: id, Name: name})
	}
	return accounts, nil
}
