package sheets

import "context"

// MockExporter is a test double for ReportExporter.
type MockExporter struct {
	ExportFn    func(ctx context.Context, rep *Report) error
	ExportCalls []*Report
}

var _ ReportExporter = (*MockExporter)(nil)

// Export implements ReportExporter.
func (m *MockExporter) Export(ctx context.Context, rep *Report) error {
	m.ExportCalls = append(m.ExportCalls, rep)
	if m.ExportFn != nil {
		return m.ExportFn(ctx, rep)
	}
	return nil
}
