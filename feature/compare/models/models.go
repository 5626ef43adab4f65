package models

import "report-compare/core/reconcile"

// CompareRequest asks for a comparison of two objects stored under the inputs folder.
type CompareRequest struct {
	// Left and Right are object names relative to the inputs folder.
	Left  string `json:"left" example:"before_csv.csv"`
	Right string `json:"right" example:"after_csv.csv"`
	// Key is the key column; empty uses the configured default.
	Key string `json:"key" example:"eid"`
	// LeftName and RightName override the labels used in the report.
	LeftName  string `json:"left_name,omitempty"`
	RightName string `json:"right_name,omitempty"`
	// Sheet selects the worksheet of spreadsheet inputs.
	Sheet string `json:"sheet,omitempty"`
	// Save uploads the result workbook to the results folder.
	Save bool `json:"save"`
}

// TablesRequest asks for a comparison of two database tables.
type TablesRequest struct {
	Left  string `json:"left" example:"employees_2023"`
	Right string `json:"right" example:"employees_2024"`
	Key   string `json:"key" example:"eid"`
	Save  bool   `json:"save"`
}

// CompareResponse is the outcome of a comparison.
type CompareResponse struct {
	ID           string                 `json:"id"`
	Left         string                 `json:"left"`
	Right        string                 `json:"right"`
	Key          string                 `json:"key"`
	Cached       bool                   `json:"cached"`
	Summary      []reconcile.SummaryRow `json:"summary"`
	ExtraColumns int                    `json:"extra_columns"`
	Duplicates   int                    `json:"duplicates"`
	Missing      int                    `json:"missing"`
	Mismatches   int                    `json:"mismatches"`
	ResultObject string                 `json:"result_object,omitempty"`
}

// ResultEntry is a stored result workbook.
type ResultEntry struct {
	ID     string `json:"id"`
	Object string `json:"object"`
}

// NewCompareResponse summarizes report under id.
func NewCompareResponse(id, key string, report *reconcile.Report, cached bool) *CompareResponse {
	return &CompareResponse{
		ID:           id,
		Left:         report.Left,
		Right:        report.Right,
		Key:          key,
		Cached:       cached,
		Summary:      report.Summary,
		ExtraColumns: len(report.ExtraColumns),
		Duplicates:   len(report.Duplicates),
		Missing:      len(report.Missing),
		Mismatches:   len(report.Mismatches),
	}
}
