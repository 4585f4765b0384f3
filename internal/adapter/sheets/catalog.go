// Package sheets reads the municipal street and neighborhood reference lists
// from a Google Sheets spreadsheet maintained by the city hall.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/viamunicipal/potholes-backend/internal/config"
)

// Client fetches reference rows from the configured spreadsheet. Callers are
// expected to cache results; every Fetch hits the Sheets API.
type Client struct {
	svc *sheetsapi.Service
	cfg config.CatalogConfig
}

func New(ctx context.Context, cfg config.CatalogConfig, credentialsJSON string) (*Client, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{svc: svc, cfg: cfg}, nil
}

// FetchStreets returns the distinct street names whose municipality column
// matches the configured filter, in sheet order.
func (c *Client) FetchStreets(ctx context.Context) ([]string, error) {
	rows, err := c.fetchTab(ctx, c.cfg.StreetsTab)
	if err != nil {
		return nil, fmt.Errorf("fetch streets tab: %w", err)
	}

	return ExtractColumn(rows, c.cfg.StreetColumn, ColumnFilter{
		Column: c.cfg.MunicipalityColumn,
		Equals: c.cfg.MunicipalityFilter,
	})
}

// FetchNeighborhoods returns the distinct neighborhood names in sheet order.
func (c *Client) FetchNeighborhoods(ctx context.Context) ([]string, error) {
	rows, err := c.fetchTab(ctx, c.cfg.NeighborhoodsTab)
	if err != nil {
		return nil, fmt.Errorf("fetch neighborhoods tab: %w", err)
	}

	return ExtractColumn(rows, c.cfg.NeighborhoodColumn, ColumnFilter{})
}

func (c *Client) fetchTab(ctx context.Context, tab string) ([][]interface{}, error) {
	readRange := fmt.Sprintf("'%s'!A:Z", tab)

	resp, err := c.svc.Spreadsheets.Values.Get(c.cfg.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// ColumnFilter restricts ExtractColumn to rows whose Column cell equals
// Equals. A zero filter matches every row.
type ColumnFilter struct {
	Column string
	Equals string
}

// ExtractColumn pulls the named column from a header-plus-data value grid,
// trimming cells, dropping blanks and deduplicating while preserving order.
func ExtractColumn(rows [][]interface{}, column string, filter ColumnFilter) ([]string, error) {
	if len(rows) < 2 {
		return []string{}, nil
	}

	header := rows[0]
	colIdx := headerIndex(header, column)
	if colIdx == -1 {
		return nil, fmt.Errorf("column %q not found in header", column)
	}

	filterIdx := -1
	if filter.Column != "" {
		filterIdx = headerIndex(header, filter.Column)
		if filterIdx == -1 {
			return nil, fmt.Errorf("filter column %q not found in header", filter.Column)
		}
	}

	seen := make(map[string]struct{})
	values := make([]string, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if filterIdx >= 0 && cellString(row, filterIdx) != filter.Equals {
			continue
		}

		v := cellString(row, colIdx)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	return values, nil
}

func headerIndex(header []interface{}, name string) int {
	for i, cell := range header {
		if strings.TrimSpace(fmt.Sprint(cell)) == name {
			return i
		}
	}
	return -1
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}
