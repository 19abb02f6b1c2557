package seeder

import (
	"math/rand"
	"strconv"

	"github.com/okian/scoutbase/internal/domain/model"
)

// recordPayload mirrors the POST /records request body.
type recordPayload struct {
	MatchNumber  string                 `json:"matchNumber"`
	TeamNumber   string                 `json:"teamNumber"`
	Alliance     string                 `json:"alliance"`
	ObserverName string                 `json:"observerName"`
	Values       map[string]model.Value `json:"values"`
}

const teamNumberBase = 100

// generateRecords fabricates records against the given schema: every team
// plays every match in rotation until NumRecords is reached, with values
// drawn per field kind.
func generateRecords(cfg *Config, schema []model.FieldDef, rng *rand.Rand) []recordPayload {
	teams := make([]string, cfg.NumTeams)
	for i := range teams {
		teams[i] = strconv.Itoa(teamNumberBase + rng.Intn(9000))
	}

	out := make([]recordPayload, cfg.NumRecords)
	for i := range out {
		alliance := "A"
		if i%2 == 1 {
			alliance = "B"
		}
		out[i] = recordPayload{
			MatchNumber:  strconv.Itoa(i/cfg.NumTeams + 1),
			TeamNumber:   teams[i%len(teams)],
			Alliance:     alliance,
			ObserverName: cfg.Observer,
			Values:       randomValues(schema, rng),
		}
	}
	return out
}

func randomValues(schema []model.FieldDef, rng *rand.Rand) map[string]model.Value {
	values := make(map[string]model.Value, len(schema))
	for _, d := range schema {
		switch d.Kind {
		case model.KindCounter, model.KindDirect:
			lo, hi := 0.0, 10.0
			if d.Min != nil {
				lo = *d.Min
			}
			if d.Max != nil {
				hi = *d.Max
			}
			values[d.ID] = model.Number(lo + float64(rng.Intn(int(hi-lo)+1)))
		case model.KindGrade:
			values[d.ID] = model.Grade(model.GradeScale[rng.Intn(len(model.GradeScale))])
		case model.KindFlag:
			values[d.ID] = model.Bool(rng.Intn(2) == 0)
		case model.KindText:
			values[d.ID] = model.Text("seeded observation")
		}
	}
	return values
}
