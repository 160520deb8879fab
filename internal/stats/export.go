package stats

import "github.com/robalobadob/scorekeeper/apps/go-server/internal/game"

// ExportRow is one history line handed to the CSV exporter.
// Quoting and escaping are the exporter's job.
type ExportRow struct {
	Time   string `json:"time"`
	Player string `json:"player"`
	Word   string `json:"word"`
	Points int    `json:"points"`
}

// ExportRows lists the full history, summaries included, in play order.
func ExportRows(s game.State) []ExportRow {
	rows := make([]ExportRow, 0, len(s.History))
	for _, h := range s.History {
		rows = append(rows, ExportRow{
			Time:   h.Timestamp,
			Player: s.Names.Of(h.Player),
			Word:   h.Word,
			Points: h.Points,
		})
	}
	return rows
}
