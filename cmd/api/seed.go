package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
)

type seedCompany struct {
	Key string `json:"key"`
	company.SaveCompanyRequest
}

// seedCompanies saves every company listed in the JSON file at path.
func seedCompanies(ctx context.Context, svc company.CompanyService, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return decodeSeed(ctx, svc, f)
}

func decodeSeed(ctx context.Context, svc company.CompanyService, r io.Reader) (int, error) {
	var seeds []seedCompany
	if err := json.NewDecoder(r).Decode(&seeds); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	for i, sc := range seeds {
		req := sc.SaveCompanyRequest
		req.Key = sc.Key
		if _, err := svc.Save(ctx, req); err != nil {
			return i, fmt.Errorf("seed company %q: %w", sc.Key, err)
		}
		slog.Debug("Seeded company", "company_key", sc.Key, "employees", len(req.Employees))
	}
	return len(seeds), nil
}
