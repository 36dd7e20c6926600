package ergast

// Declarative flattening rules, one per endpoint. Column order is the output order.

var driverFields = []field{
	{to: "driverID", from: key("driverId")},
	{to: "driver", from: displayName},
	{to: "nationality", from: key("nationality")},
}

var constructorFields = []field{
	{to: "constructorID", from: key("constructorId")},
	{to: "constructor", from: key("name")},
}

var driversRule = rule{
	path:    []any{"MRData", "DriverTable", "Drivers"},
	columns: []string{"driverId", "permanentNumber", "code", "url", "givenName", "familyName", "dateOfBirth", "nationality"},
}

var constructorsRule = rule{
	path:    []any{"MRData", "ConstructorTable", "Constructors"},
	columns: []string{"constructorId", "url", "name", "nationality"},
}

var circuitsRule = rule{
	path: []any{"MRData", "CircuitTable", "Circuits"},
	pulls: []pull{{key: "Location", index: -1, fields: []field{
		{to: "Latitude", from: key("lat")},
		{to: "Longtitude", from: key("long")},
		{to: "Locality", from: key("locality")},
		{to: "Country", from: key("country")},
	}}},
	columns: []string{"circuitId", "url", "circuitName", "Latitude", "Longtitude", "Locality", "Country"},
}

var resultColumns = []string{"number", "position", "positionText", "grid", "points", "driverID", "driver", "nationality", "constructorID", "constructor", "laps", "status", "Time"}

var raceResultRule = rule{
	path: []any{"MRData", "RaceTable", "Races", 0, "Results"},
	pulls: []pull{
		{key: "Driver", index: -1, fields: driverFields},
		{key: "Constructor", index: -1, fields: constructorFields},
	},
	columns: resultColumns,
	convert: map[string]func(any) any{"Time": raceTime},
}

var sprintResultRule = rule{
	path:    []any{"MRData", "RaceTable", "Races", 0, "SprintResults"},
	pulls:   raceResultRule.pulls,
	columns: resultColumns,
	convert: raceResultRule.convert,
}

var qualifyingRule = rule{
	path: []any{"MRData", "RaceTable", "Races", 0, "QualifyingResults"},
	pulls: []pull{
		{key: "Driver", index: -1, fields: driverFields},
		{key: "Constructor", index: -1, fields: constructorFields},
	},
	columns:  []string{"number", "position", "driverID", "driver", "nationality", "constructorID", "constructor", "Q1"},
	optional: []string{"Q2", "Q3"},
}

var scheduleRule = rule{
	path: []any{"MRData", "RaceTable", "Races"},
	pulls: []pull{{key: "Circuit", index: -1, fields: []field{
		{to: "circuitID", from: key("circuitId")},
		{to: "circuitName", from: key("circuitName")},
		{to: "locality", from: key("Location", "locality")},
		{to: "country", from: key("Location", "country")},
	}}},
	columns: []string{"season", "round", "url", "raceName", "date", "circuitID", "circuitName", "locality", "country"},
}

var driverStandingsRule = rule{
	path: []any{"MRData", "StandingsTable", "StandingsLists", 0, "DriverStandings"},
	pulls: []pull{
		{key: "Driver", index: -1, fields: driverFields},
		{key: "Constructors", index: 0, fields: constructorFields},
	},
	columns: []string{"position", "positionText", "points", "wins", "driverID", "driver", "nationality", "constructorID", "constructor"},
}

var constructorStandingsRule = rule{
	path: []any{"MRData", "StandingsTable", "StandingsLists", 0, "ConstructorStandings"},
	pulls: []pull{{key: "Constructor", index: -1, fields: []field{
		{to: "constructorID", from: key("constructorId")},
		{to: "name", from: key("name")},
		{to: "nationality", from: key("nationality")},
	}}},
	columns: []string{"position", "positionText", "points", "wins", "constructorID", "name", "nationality"},
}

var driverHistoryRule = rule{
	path: []any{"MRData", "StandingsTable", "StandingsLists"},
	pulls: []pull{
		{key: "DriverStandings", index: 0},
		{key: "Driver", index: -1, fields: []field{
			{to: "driver", from: displayName},
			{to: "nationality", from: key("nationality")},
		}},
		{key: "Constructors", index: 0, fields: constructorFields},
	},
	columns: []string{"season", "round", "position", "positionText", "points", "wins", "driver", "nationality", "constructorID", "constructor"},
}

var constructorHistoryRule = rule{
	path: []any{"MRData", "StandingsTable", "StandingsLists"},
	pulls: []pull{
		{key: "ConstructorStandings", index: 0},
		{key: "Constructor", index: -1, fields: []field{
			{to: "constructorID", from: key("constructorId")},
			{to: "constructor", from: key("name")},
			{to: "nationality", from: key("nationality")},
		}},
	},
	columns: []string{"season", "round", "position", "positionText", "points", "wins", "constructorID", "constructor", "nationality"},
}
