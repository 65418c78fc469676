package models

// Metrics are the integer funnel counters of one day, one SDR, or an aggregate.
// The *Count fields are conversion numerators; older snapshots may omit them.
type Metrics struct {
	Total          int `json:"total"`
	NewLead        int `json:"new_lead"`
	MQL            int `json:"mql"`
	SQL            int `json:"sql"`
	Won            int `json:"won"`
	LostBeforeMQL  int `json:"lost_before_mql"`
	SalesLost      int `json:"sales_lost"`
	LostTotal      int `json:"lost_total"`
	LeadToMQLCount int `json:"lead_mql_num"`
	MQLToSQLCount  int `json:"mql_sql_num"`
	LeadToSQLCount int `json:"lead_sql_num"`
}

// Add sums o into m field by field.
func (m *Metrics) Add(o Metrics) {
	m.Total += o.Total
	m.NewLead += o.NewLead
	m.MQL += o.MQL
	m.SQL += o.SQL
	m.Won += o.Won
	m.LostBeforeMQL += o.LostBeforeMQL
	m.SalesLost += o.SalesLost
	m.LostTotal += o.LostTotal
	m.LeadToMQLCount += o.LeadToMQLCount
	m.MQLToSQLCount += o.MQLToSQLCount
	m.LeadToSQLCount += o.LeadToSQLCount
}

// Conversions holds the display strings, e.g. "3/4 (75%)" or "-".
type Conversions struct {
	LeadToMQL string `json:"lead_mql"`
	MQLToSQL  string `json:"mql_sql"`
	LeadToSQL string `json:"lead_sql"`
}

type Stats struct {
	Metrics
	Conversions
}

type Deal struct {
	Name         string   `json:"name"`
	CurrentStage string   `json:"current_stage"`
	StageChanges []string `json:"stage_changes"`
}

type LostDeal struct {
	Name            string `json:"name"`
	LostType        string `json:"lost_type"`
	LostReason      string `json:"lost_reason"`
	LostDescription string `json:"lost_description,omitempty"`
}

type SdrRecord struct {
	Name      string     `json:"name"`
	Stats     Stats      `json:"stats"`
	Deals     []Deal     `json:"deals"`
	LostDeals []LostDeal `json:"lost_deals"`
}

type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// DailyRecord is one day's snapshot as written by the pipeline.
type DailyRecord struct {
	Date        string        `json:"date"`
	GeneratedAt string        `json:"generated_at"`
	Summary     Stats         `json:"summary"`
	ActiveSdrs  int           `json:"active_sdrs,omitempty"`
	SdrRecords  []SdrRecord   `json:"sdr_data"`
	LostReasons []ReasonCount `json:"lost_reasons"`
}

// AggregatedView is the merge of one or more DailyRecords. Date is empty
// unless exactly one record was merged.
type AggregatedView struct {
	Date        string        `json:"date,omitempty"`
	GeneratedAt string        `json:"generated_at"`
	Summary     Stats         `json:"summary"`
	ActiveSdrs  int           `json:"active_sdrs"`
	SdrRecords  []SdrRecord   `json:"sdr_data"`
	LostReasons []ReasonCount `json:"lost_reasons"`
}

// DealRef is a drill-down row: a deal plus the SDR that owns it.
type DealRef struct {
	Deal
	SdrName string `json:"sdr_name"`
}

// DateIndex is the wire shape of the available-dates index.
type DateIndex struct {
	Dates []string `json:"dates"`
}
