package models

// AttendanceReportRow is one roster line on the printed attendance sheet.
type AttendanceReportRow struct {
	VIN    string
	Name   string
	Branch string
	Year   int
	Status string
}

type AttendanceReportData struct {
	ClubName    string
	Date        string
	GeneratedAt string
	Rows        []AttendanceReportRow
	Counts      map[string]int
	Total       int
}
