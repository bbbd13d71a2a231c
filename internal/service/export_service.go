package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"

	"mobilis/backend/internal/policy"
	"mobilis/backend/internal/repository"
)

// ErrExportEmpty is returned when there is nothing to export.
var ErrExportEmpty = errors.New("no missions to export")

// ExportService produces the operator spreadsheet report and the per-user
// calendar feed.
type ExportService struct {
	repo    *repository.Repository
	baseURL string
}

// NewExportService creates the export service.
func NewExportService(repo *repository.Repository, baseURL string) *ExportService {
	return &ExportService{repo: repo, baseURL: baseURL}
}

// MissionsReport builds an xlsx workbook of every mission for operators.
// It returns the file content and a suggested filename.
func (s *ExportService) MissionsReport(ctx context.Context, actor policy.Actor) (*bytes.Buffer, string, error) {
	if !actor.IsOperator() {
		return nil, "", ErrForbidden
	}

	missions, err := s.repo.Mission.ListAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list missions: %w", err)
	}
	if len(missions) == 0 {
		return nil, "", ErrExportEmpty
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Missions"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "D", 20)
	f.SetColWidth(sheet, "E", "E", 12)
	f.SetColWidth(sheet, "F", "G", 12)
	f.SetColWidth(sheet, "H", "I", 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"ID", "Title", "From", "To", "Date", "Distance", "Status", "Creator", "Assignee"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"1", h)
		f.SetCellStyle(sheet, col+"1", col+"1", headerStyle)
	}

	for i := range missions {
		m := &missions[i]
		row := i + 2
		creator := m.CreatedByID
		if m.CreatedBy != nil {
			creator = m.CreatedBy.Name
		}
		assignee := ""
		if m.AssignedTo != nil {
			assignee = m.AssignedTo.Name
		} else if m.AssignedToID != nil {
			assignee = *m.AssignedToID
		}

		values := []interface{}{
			m.ID, m.Title, m.From, m.To,
			m.When.Format("2006-01-02"), m.Distance,
			string(m.Status), creator, assignee,
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	filename := fmt.Sprintf("missions_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// Calendar renders the actor's missions (created or assigned) as an iCalendar
// feed so movers can subscribe from their calendar app.
func (s *ExportService) Calendar(ctx context.Context, actor policy.Actor) (string, error) {
	missions, err := s.repo.Mission.ListByUser(ctx, actor.ID)
	if err != nil {
		return "", fmt.Errorf("list missions of %s: %w", actor.ID, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Mobilis Bourse//Missions//EN")

	for i := range missions {
		m := &missions[i]
		evt := cal.AddEvent(fmt.Sprintf("mission-%s@mobilis-bourse", m.ID))
		evt.SetSummary(m.Title)
		evt.SetLocation(fmt.Sprintf("%s -> %s", m.From, m.To))
		evt.SetDescription(fmt.Sprintf("%s (%.0f km, %s)", m.Description, m.Distance, m.Status))
		evt.SetAllDayStartAt(m.When)
		evt.SetAllDayEndAt(m.When.AddDate(0, 0, 1))
		evt.SetDtStampTime(m.UpdatedAt)
		evt.SetURL(fmt.Sprintf("%s/dashboard/missions/%s", s.baseURL, m.ID))
	}

	return cal.Serialize(), nil
}
