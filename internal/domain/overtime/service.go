package overtime

import "context"

// Service defines the overtime operations exposed to handlers
type Service interface {
	// Calculate runs the overtime engine without persisting anything
	Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error)

	// Entries
	CreateEntry(ctx context.Context, req CreateEntryRequest) (SaveEntryResponse, error)
	GetEntry(ctx context.Context, id string) (EntryResponse, error)
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (SaveEntryResponse, error)
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context, req ListEntriesRequest) ([]EntryResponse, error)

	// Reports
	EmployeeMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)
	ProjectMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)
}
