package metrics

import "github.com/AngelCh415/sdr-funnel/internal/models"

func deal(name, current string, changes ...string) models.Deal {
	return models.Deal{Name: name, CurrentStage: current, StageChanges: changes}
}

func dayOne() models.DailyRecord {
	return models.DailyRecord{
		Date:        "2024-01-01",
		GeneratedAt: "2024-01-02 06:00",
		Summary: models.Stats{Metrics: models.Metrics{
			Total: 5, NewLead: 4, MQL: 2, SQL: 1, Won: 0,
			LostBeforeMQL: 1, SalesLost: 1, LostTotal: 2,
			LeadToMQLCount: 2, MQLToSQLCount: 1, LeadToSQLCount: 1,
		}},
		SdrRecords: []models.SdrRecord{
			{
				Name: "Anna",
				Stats: models.Stats{Metrics: models.Metrics{
					Total: 3, NewLead: 3, MQL: 2, SQL: 1, LostBeforeMQL: 1, LostTotal: 1,
					LeadToMQLCount: 2, MQLToSQLCount: 1, LeadToSQLCount: 1,
				}},
				Deals: []models.Deal{
					deal("Acme", "Kwalka (SQL)", "New Lead", "MQL", "Kwalka (SQL)"),
					deal("Globex", "MQL", "New Lead", "MQL"),
					deal("Initech", "Lost Before MQL", "New Lead", "Lost Before MQL"),
				},
				LostDeals: []models.LostDeal{{Name: "Initech", LostType: "Lost Before MQL", LostReason: "No budget"}},
			},
			{
				Name: "Bartek",
				Stats: models.Stats{Metrics: models.Metrics{
					Total: 2, NewLead: 1, SalesLost: 1, LostTotal: 1,
				}},
				Deals: []models.Deal{
					deal("Hooli", "Sales Lost", "Sales Lost"),
					deal("Umbrella", "New Lead", "New Lead"),
				},
				LostDeals: []models.LostDeal{{Name: "Hooli", LostType: "Sales Lost", LostReason: "Competitor", LostDescription: "went with a cheaper vendor"}},
			},
		},
		LostReasons: []models.ReasonCount{{Reason: "No budget", Count: 1}, {Reason: "Competitor", Count: 1}},
	}
}

func dayTwo() models.DailyRecord {
	return models.DailyRecord{
		Date:        "2024-01-02",
		GeneratedAt: "2024-01-03 06:00",
		Summary: models.Stats{Metrics: models.Metrics{
			Total: 4, NewLead: 2, MQL: 1, SQL: 1, Won: 1,
			SalesLost: 2, LostTotal: 2,
			LeadToMQLCount: 1, MQLToSQLCount: 0,
		}},
		SdrRecords: []models.SdrRecord{
			{
				Name: "Bartek",
				Stats: models.Stats{Metrics: models.Metrics{
					Total: 3, NewLead: 1, MQL: 1, Won: 1, SalesLost: 1, LostTotal: 1,
					LeadToMQLCount: 1,
				}},
				Deals: []models.Deal{
					deal("Stark", "Sales Won", "Sales Won"),
					deal("Wayne", "MQL", "New Lead", "MQL"),
					deal("Tyrell", "Sales Lost", "Sales Lost"),
				},
				LostDeals: []models.LostDeal{{Name: "Tyrell", LostType: "Sales Lost", LostReason: "Competitor"}},
			},
			{
				Name: "Celina",
				Stats: models.Stats{Metrics: models.Metrics{
					Total: 1, NewLead: 1, SQL: 1, SalesLost: 1, LostTotal: 1,
				}},
				Deals: []models.Deal{
					deal("Cyberdyne", "Sales Lost", "New Lead", "Kwalka (SQL)", "Sales Lost"),
				},
				LostDeals: []models.LostDeal{{Name: "Cyberdyne", LostType: "Sales Lost", LostReason: "Timing"}},
			},
		},
		LostReasons: []models.ReasonCount{{Reason: "Competitor", Count: 1}, {Reason: "Timing", Count: 1}},
	}
}
