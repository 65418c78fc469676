package ingest

import (
	"io"
	"log/slog"
)

const sampleDay = `{
  "date": "2024-01-02",
  "generated_at": "2024-01-03 06:00",
  "summary": {"total": 2, "new_lead": 2, "mql": 1, "sql": 0, "won": 0,
    "lost_before_mql": 0, "sales_lost": 0, "lost_total": 0,
    "lead_mql": "1/2 (50%)", "mql_sql": "0/1 (0%)", "lead_sql": "0/2 (0%)",
    "lead_mql_num": 1, "mql_sql_num": 0, "lead_sql_num": 0},
  "active_sdrs": 1,
  "sdr_data": [{
    "name": "Anna",
    "stats": {"total": 2, "new_lead": 2, "mql": 1},
    "deals": [
      {"name": "Acme", "current_stage": "MQL", "stage_changes": ["New Lead", "MQL"]},
      {"name": "Globex", "current_stage": "New Lead", "stage_changes": ["New Lead"]}
    ],
    "lost_deals": []
  }],
  "lost_reasons": []
}`

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }
