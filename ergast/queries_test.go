package ergast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

var allRoutes = map[string]string{
	"drivers.json":                                   "drivers.json",
	"2016/drivers.json":                              "drivers.json",
	"2016/3/drivers.json":                            "drivers.json",
	"constructors.json":                              "constructors.json",
	"circuits.json":                                  "circuits.json",
	"2014/4/results.json":                            "results_2014_4.json",
	"current/last/results.json":                      "results_2014_4.json",
	"2014/4/qualifying.json":                         "qualifying_2014_4.json",
	"2003/1/qualifying.json":                         "qualifying_2003_1.json",
	"2021/10/sprint.json":                            "sprint_2021_10.json",
	"current.json":                                   "schedule_2020.json",
	"2020.json":                                      "schedule_2020.json",
	"1950/driverStandings.json":                      "driver_standings_1950.json",
	"current/driverStandings.json":                   "driver_standings_1950.json",
	"1985/constructorStandings.json":                 "constructor_standings_1985.json",
	"1985/16/constructorStandings.json":              "constructor_standings_1985.json",
	"drivers/aitken/driverStandings.json":            "driver_history_aitken.json",
	"constructors/ferrari/constructorStandings.json": "constructor_history_ferrari.json",
}

func TestDrivers_AllTime(t *testing.T) {
	c, rec := newFixtureClient(t, allRoutes)

	drivers, err := c.Drivers(context.Background(), AllTime)
	if err != nil {
		t.Fatalf("Drivers returned error: %v", err)
	}
	if drivers.Len() != 24 {
		t.Fatalf("rows = %d, want 24", drivers.Len())
	}
	wantCols := []string{"driverId", "permanentNumber", "code", "url", "givenName", "familyName", "dateOfBirth", "nationality"}
	if !reflect.DeepEqual(drivers.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", drivers.Columns, wantCols)
	}
	if got := rec.requests(); !reflect.DeepEqual(got, []string{"drivers.json"}) {
		t.Fatalf("requests = %v, want [drivers.json]", got)
	}

	var senna Row
	for _, row := range drivers.Rows {
		if row["driverId"] == "senna" {
			senna = row
		}
	}
	if senna == nil {
		t.Fatalf("senna missing from drivers")
	}
	if senna["permanentNumber"] != nil || senna["code"] != nil {
		t.Fatalf("senna optional fields = %v/%v, want nil", senna["permanentNumber"], senna["code"])
	}
	if _, ok := senna["permanentNumber"]; !ok {
		t.Fatalf("row lacks declared column permanentNumber")
	}
}

func TestReferenceLists_ScopedPaths(t *testing.T) {
	c, rec := newFixtureClient(t, allRoutes)
	ctx := context.Background()

	if _, err := c.Drivers(ctx, Season(2016)); err != nil {
		t.Fatalf("Drivers(2016) returned error: %v", err)
	}
	if _, err := c.Drivers(ctx, Round(2016, 3)); err != nil {
		t.Fatalf("Drivers(2016, 3) returned error: %v", err)
	}
	want := []string{"2016/drivers.json", "2016/3/drivers.json"}
	if got := rec.requests(); !reflect.DeepEqual(got, want) {
		t.Fatalf("requests = %v, want %v", got, want)
	}
}

func TestScopePreconditions(t *testing.T) {
	c, rec := newFixtureClient(t, allRoutes)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() (Table, error)
	}{
		{"drivers round without season", func() (Table, error) { return c.Drivers(ctx, Scope{Round: 3}) }},
		{"constructors negative season", func() (Table, error) { return c.Constructors(ctx, Season(-1)) }},
		{"circuits round without season", func() (Table, error) { return c.Circuits(ctx, Scope{Round: 1}) }},
		{"race result season only", func() (Table, error) { return c.RaceResult(ctx, Season(2014)) }},
		{"race result round only", func() (Table, error) { return c.RaceResult(ctx, Scope{Round: 4}) }},
		{"qualifying season only", func() (Table, error) { return c.QualifyingResult(ctx, Season(2014)) }},
		{"qualifying round only", func() (Table, error) { return c.QualifyingResult(ctx, Scope{Round: 4}) }},
		{"qualifying before 1996", func() (Table, error) { return c.QualifyingResult(ctx, Round(1950, 1)) }},
		{"sprint before 2021", func() (Table, error) { return c.SprintResult(ctx, Round(2019, 1)) }},
		{"schedule negative season", func() (Table, error) { return c.Schedule(ctx, -2020) }},
		{"driver standings round without season", func() (Table, error) { return c.DriverStandings(ctx, Scope{Round: 5}) }},
		{"constructor standings before 1958", func() (Table, error) { return c.ConstructorStandings(ctx, Season(1957)) }},
		{"constructor standings round before 1958", func() (Table, error) { return c.ConstructorStandings(ctx, Round(1950, 2)) }},
		{"driver history empty id", func() (Table, error) { return c.DriverHistory(ctx, "  ") }},
		{"constructor history path id", func() (Table, error) { return c.ConstructorHistory(ctx, "ferrari/../x") }},
		{"driver history dot-dot id", func() (Table, error) { return c.DriverHistory(ctx, "..") }},
		{"driver history dot id", func() (Table, error) { return c.DriverHistory(ctx, ".") }},
		{"constructor history dot-dot id", func() (Table, error) { return c.ConstructorHistory(ctx, "..") }},
		{"constructor history dot id", func() (Table, error) { return c.ConstructorHistory(ctx, ".") }},
		{"driver history query id", func() (Table, error) { return c.DriverHistory(ctx, "alonso?limit=1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.call(); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
	if got := rec.requests(); len(got) != 0 {
		t.Fatalf("requests = %v, want none before preconditions pass", got)
	}
}

func TestCircuits_FlattensLocation(t *testing.T) {
	c, _ := newFixtureClient(t, allRoutes)

	circuits, err := c.Circuits(context.Background(), AllTime)
	if err != nil {
		t.Fatalf("Circuits returned error: %v", err)
	}
	if circuits.Len() != 13 {
		t.Fatalf("rows = %d, want 13", circuits.Len())
	}
	wantCols := []string{"circuitId", "url", "circuitName", "Latitude", "Longtitude", "Locality", "Country"}
	if !reflect.DeepEqual(circuits.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", circuits.Columns, wantCols)
	}
	first := circuits.Rows[0]
	if first["circuitId"] != "albert_park" || first["Latitude"] != "-37.8497" || first["Longtitude"] != "144.968" ||
		first["Locality"] != "Melbourne" || first["Country"] != "Australia" {
		t.Fatalf("first circuit = %v", first)
	}
	if _, ok := first["Location"]; ok {
		t.Fatalf("Location survived flattening: %v", first)
	}
}

func TestRaceResult_2014Round4(t *testing.T) {
	c, _ := newFixtureClient(t, allRoutes)

	result, err := c.RaceResult(context.Background(), Round(2014, 4))
	if err != nil {
		t.Fatalf("RaceResult returned error: %v", err)
	}
	if got := result.Cell(0, "number"); got != "44" {
		t.Fatalf("first row number = %q, want 44", got)
	}
	wantCols := []string{"number", "position", "positionText", "grid", "points", "driverID", "driver",
		"nationality", "constructorID", "constructor", "laps", "status", "Time"}
	if !reflect.DeepEqual(result.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", result.Columns, wantCols)
	}

	first := result.Rows[0]
	if first["driver"] != "Lewis Hamilton" || first["driverID"] != "hamilton" || first["constructor"] != "Mercedes" {
		t.Fatalf("first row = %v", first)
	}
	if got, want := first["Time"], (RaceTime{Millis: "5993335", Time: "1:33:28.338"}); got != want {
		t.Fatalf("Time = %#v, want %#v", got, want)
	}
	last := result.Rows[result.Len()-1]
	if last["Time"] != nil || last["positionText"] != "R" || last["status"] != "Engine" {
		t.Fatalf("retired row = %v, want nil Time and positionText R", last)
	}
	if _, ok := first["FastestLap"]; ok {
		t.Fatalf("undeclared FastestLap column present")
	}
}

func TestRaceResult_DefaultsToLastRace(t *testing.T) {
	c, rec := newFixtureClient(t, allRoutes)

	if _, err := c.RaceResult(context.Background(), AllTime); err != nil {
		t.Fatalf("RaceResult returned error: %v", err)
	}
	if got := rec.requests(); !reflect.DeepEqual(got, []string{"current/last/results.json"}) {
		t.Fatalf("requests = %v, want [current/last/results.json]", got)
	}
}

func TestQualifyingResult_ColumnsFollowFirstRecord(t *testing.T) {
	c, _ := newFixtureClient(t, allRoutes)
	ctx := context.Background()

	modern, err := c.QualifyingResult(ctx, Round(2014, 4))
	if err != nil {
		t.Fatalf("QualifyingResult(2014, 4) returned error: %v", err)
	}
	if modern.Cell(0, "number") != "44" {
		t.Fatalf("pole number = %q, want 44", modern.Cell(0, "number"))
	}
	if !modern.HasColumn("Q2") || !modern.HasColumn("Q3") {
		t.Fatalf("columns = %v, want Q2 and Q3", modern.Columns)
	}
	// Later rows without Q3 keep the column with a nil value.
	last := modern.Rows[modern.Len()-1]
	if v, ok := last["Q3"]; !ok || v != nil {
		t.Fatalf("eliminated row Q3 = %v (present %v), want nil", v, ok)
	}

	single, err := c.QualifyingResult(ctx, Round(2003, 1))
	if err != nil {
		t.Fatalf("QualifyingResult(2003, 1) returned error: %v", err)
	}
	wantCols := []string{"number", "position", "driverID", "driver", "nationality", "constructorID", "constructor", "Q1"}
	if !reflect.DeepEqual(single.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", single.Columns, wantCols)
	}
	if single.HasColumn("Q3") {
		t.Fatalf("Q3 column present for single-session qualifying")
	}
}

func TestSprintResult(t *testing.T) {
	c, _ := newFixtureClient(t, allRoutes)

	sprint, err := c.SprintResult(context.Background(), Round(2021, 10))
	if err != nil {
		t.Fatalf("SprintResult returned error: %v", err)
	}
	if sprint.Len() != 3 || sprint.Cell(0, "driver") != "Max Verstappen" {
		t.Fatalf("sprint = %d rows, winner %q; want 3 rows won by Max Verstappen", sprint.Len(), sprint.Cell(0, "driver"))
	}
	if sprint.Cell(1, "Time") != "+1.430" {
		t.Fatalf("second Time = %q, want +1.430", sprint.Cell(1, "Time"))
	}
}

func TestSchedule(t *testing.T) {
	c, rec := newFixtureClient(t, allRoutes)
	ctx := context.Background()

	current, err := c.Schedule(ctx, 0)
	if err != nil {
		t.Fatalf("Schedule returned error: %v", err)
	}
	if current.Len() != 17 {
		t.Fatalf("rows = %d, want 17", current.Len())
	}
	wantCols := []string{"season", "round", "url", "raceName", "date", "circuitID", "circuitName", "locality", "country"}
	if !reflect.DeepEqual(current.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", current.Columns, wantCols)
	}
	portugal := current.Rows[11]
	if portugal["raceName"] != "Portuguese Grand Prix" || portugal["circuitID"] != "portimao" ||
		portugal["locality"] != "Portimão" || portugal["country"] != "Portugal" {
		t.Fatalf("round 12 = %v", portugal)
	}

	if _, err := c.Schedule(ctx, 2020); err != nil {
		t.Fatalf("Schedule(2020) returned error: %v", err)
	}
	want := []string{"current.json", "2020.json"}
	if got := rec.requests(); !reflect.DeepEqual(got, want) {
		t.Fatalf("requests = %v, want %v", got, want)
	}
}

func TestDriverStandings(t *testing.T) {
	c, rec := newFixtureClient(t, allRoutes)
	ctx := context.Background()

	standings, err := c.DriverStandings(ctx, Season(1950))
	if err != nil {
		t.Fatalf("DriverStandings returned error: %v", err)
	}
	if standings.Len() != 6 {
		t.Fatalf("rows = %d, want 6", standings.Len())
	}
	wantCols := []string{"position", "positionText", "points", "wins", "driverID", "driver", "nationality", "constructorID", "constructor"}
	if !reflect.DeepEqual(standings.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", standings.Columns, wantCols)
	}
	if standings.Cell(0, "driver") != "Nino Farina" || standings.Cell(0, "points") != "30" {
		t.Fatalf("leader = %v", standings.Rows[0])
	}
	// Parnell drove for two teams; the first listed is used.
	if standings.Cell(5, "constructorID") != "alfa" {
		t.Fatalf("parnell constructor = %q, want alfa", standings.Cell(5, "constructorID"))
	}

	if _, err := c.DriverStandings(ctx, AllTime); err != nil {
		t.Fatalf("DriverStandings(current) returned error: %v", err)
	}
	want := []string{"1950/driverStandings.json", "current/driverStandings.json"}
	if got := rec.requests(); !reflect.DeepEqual(got, want) {
		t.Fatalf("requests = %v, want %v", got, want)
	}
}

func TestConstructorStandings(t *testing.T) {
	c, rec := newFixtureClient(t, allRoutes)
	ctx := context.Background()

	standings, err := c.ConstructorStandings(ctx, Season(1985))
	if err != nil {
		t.Fatalf("ConstructorStandings returned error: %v", err)
	}
	if standings.Len() != 9 {
		t.Fatalf("rows = %d, want 9", standings.Len())
	}
	wantCols := []string{"position", "positionText", "points", "wins", "constructorID", "name", "nationality"}
	if !reflect.DeepEqual(standings.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", standings.Columns, wantCols)
	}
	if standings.Cell(0, "name") != "McLaren" {
		t.Fatalf("champion = %q, want McLaren", standings.Cell(0, "name"))
	}

	if _, err := c.ConstructorStandings(ctx, Round(1985, 16)); err != nil {
		t.Fatalf("ConstructorStandings(1985, 16) returned error: %v", err)
	}
	want := []string{"1985/constructorStandings.json", "1985/16/constructorStandings.json"}
	if got := rec.requests(); !reflect.DeepEqual(got, want) {
		t.Fatalf("requests = %v, want %v", got, want)
	}
}

func TestDriverHistory(t *testing.T) {
	c, _ := newFixtureClient(t, allRoutes)

	history, err := c.DriverHistory(context.Background(), "aitken")
	if err != nil {
		t.Fatalf("DriverHistory returned error: %v", err)
	}
	if history.Len() != 1 || len(history.Columns) != 10 {
		t.Fatalf("shape = (%d, %d), want (1, 10)", history.Len(), len(history.Columns))
	}
	row := history.Rows[0]
	if row["season"] != "2020" || row["position"] != "22" || row["driver"] != "Jack Aitken" || row["constructor"] != "Williams" {
		t.Fatalf("row = %v", row)
	}
}

func TestConstructorHistory(t *testing.T) {
	c, _ := newFixtureClient(t, allRoutes)

	history, err := c.ConstructorHistory(context.Background(), "ferrari")
	if err != nil {
		t.Fatalf("ConstructorHistory returned error: %v", err)
	}
	if history.Len() != 5 || len(history.Columns) != 9 {
		t.Fatalf("shape = (%d, %d), want (5, 9)", history.Len(), len(history.Columns))
	}
	var seasons []string
	for _, v := range history.Column("season") {
		seasons = append(seasons, Text(v))
	}
	if want := []string{"1958", "1959", "1960", "1961", "1962"}; !reflect.DeepEqual(seasons, want) {
		t.Fatalf("seasons = %v, want %v in response order", seasons, want)
	}
	if history.Cell(3, "position") != "1" || history.Cell(3, "constructor") != "Ferrari" {
		t.Fatalf("1961 row = %v", history.Rows[3])
	}
}

func TestFlattenedRowsHoldNoNestedValues(t *testing.T) {
	c, _ := newFixtureClient(t, allRoutes)
	ctx := context.Background()

	calls := map[string]func() (Table, error){
		"results":               func() (Table, error) { return c.RaceResult(ctx, Round(2014, 4)) },
		"qualifying":            func() (Table, error) { return c.QualifyingResult(ctx, Round(2014, 4)) },
		"sprint":                func() (Table, error) { return c.SprintResult(ctx, Round(2021, 10)) },
		"schedule":              func() (Table, error) { return c.Schedule(ctx, 2020) },
		"driver standings":      func() (Table, error) { return c.DriverStandings(ctx, Season(1950)) },
		"constructor standings": func() (Table, error) { return c.ConstructorStandings(ctx, Season(1985)) },
		"driver history":        func() (Table, error) { return c.DriverHistory(ctx, "aitken") },
		"constructor history":   func() (Table, error) { return c.ConstructorHistory(ctx, "ferrari") },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			table, err := call()
			if err != nil {
				t.Fatalf("call returned error: %v", err)
			}
			for i, row := range table.Rows {
				if len(row) != len(table.Columns) {
					t.Fatalf("row %d has %d values, want %d", i, len(row), len(table.Columns))
				}
				for col, v := range row {
					switch v.(type) {
					case nil, string, RaceTime:
					default:
						t.Fatalf("row %d column %s = %T, want scalar", i, col, v)
					}
					if _, ok := v.(RaceTime); ok && col != "Time" {
						t.Fatalf("row %d column %s holds a RaceTime", i, col)
					}
				}
			}
		})
	}
}

func TestEmptyRaceTableIsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"MRData":{"RaceTable":{"season":"2030","round":"1","Races":[]}}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.RaceResult(context.Background(), Round(2030, 1))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("RaceResult error = %v, want ErrParse", err)
	}
}
