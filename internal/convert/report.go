package convert

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Report action tags.
const (
	ActionCreateGroup     = "create-group"
	ActionAddMember       = "add-member"
	ActionAddMemberFailed = "add-member-failed"
)

// reportStamp is the compact timestamp layout used in report file names.
const reportStamp = "20060102-150405"

// ReportRow records one attempted mutation.
type ReportRow struct {
	Action      string
	GroupName   string
	PrincipalID string
}

// Report collects the mutations of one conversion run for a flat CSV
// file written at the end of the run.
type Report struct {
	rows []ReportRow
}

// Add appends one row.
func (r *Report) Add(action, groupName, principalID string) {
	r.rows = append(r.rows, ReportRow{Action: action, GroupName: groupName, PrincipalID: principalID})
}

// Len returns the number of recorded rows.
func (r *Report) Len() int { return len(r.rows) }

// Rows returns the recorded rows in append order.
func (r *Report) Rows() []ReportRow { return r.rows }

// WriteFile flushes the report to dir as
// convert-<key>-<yyyyMMdd-HHmmss>.csv and returns the file path.
func (r *Report) WriteFile(dir, key string, now time.Time) (string, error) {
	name := fmt.Sprintf("convert-%s-%s.csv", key, now.Format(reportStamp))
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"action", "group", "principal_id"}); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	for _, row := range r.rows {
		if err := w.Write([]string{row.Action, row.GroupName, row.PrincipalID}); err != nil {
			return "", fmt.Errorf("write report: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
