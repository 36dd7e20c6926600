// Package ergast provides a client for the Ergast motorsport statistics API.
//
// # Overview
//
// Every query follows the same shape: build an endpoint URL from a resource and
// an optional season and round, perform one GET, require HTTP 200, walk a fixed
// JSON path to the list of records, lift nested objects into flat columns, and
// return a Table.
//
// # Architecture
//
//   - client.go: Client construction, options, URL building and fetching
//   - scope.go: Season/round scopes and their preconditions
//   - flatten.go: The generic nested-object flattener
//   - rules.go: Declarative per-endpoint flattening rules
//   - queries.go: Public query methods
//   - find.go: Substring finders over the reference lists
//   - table.go: The Table result type
//
// # Client Usage
//
//	client, err := ergast.NewClient("")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	// Race classification of the 2014 Chinese Grand Prix
//	result, err := client.RaceResult(ctx, ergast.Round(2014, 4))
//	if err != nil {
//		log.Printf("race result failed: %v", err)
//	}
//	fmt.Println(result.Cell(0, "driver"))
//
// # Endpoints
//
// All requests are GET {base}/{scope}/{resource}.json?limit=1000, where scope is
// empty, {season}, {season}/{round}, current, current/last, drivers/{id} or
// constructors/{id}:
//
//   - Drivers, Constructors, Circuits: all-time, season or race reference lists
//   - RaceResult, QualifyingResult, SprintResult: one race, or the last race
//   - Schedule: one season's calendar, or the current one
//   - DriverStandings, ConstructorStandings: after a season or round, or current
//   - DriverHistory, ConstructorHistory: one row per season for an identifier
//   - FindDriver, FindConstructor, FindCircuit: filters over the reference lists
//
// # Error Handling
//
// Errors wrap one of three sentinels, checked with errors.Is:
//
//   - ErrInvalidArgument: a scope was rejected before any request (one of
//     season/round missing on race endpoints, a round without a season, a season
//     before an endpoint's first year, an empty identifier)
//   - ErrConnection: the transport failed or the status was not 200
//   - ErrParse: the body was not JSON or lacked the expected structure
//
// There are no partial results: any failure discards the whole call.
//
// # Tables
//
// A Table holds ordered columns and rows keyed by column name. Only the
// endpoint's declared columns appear. Values are strings, or nil when the source
// record omits an optional field (permanentNumber, code, a DNF's Time). The Time
// column of race results holds a RaceTime, the one structured value.
//
// # Thread Safety
//
// The Client is safe for concurrent use. It keeps no state between calls.
//
// # Design Rationale
//
// The client is intentionally minimal:
//   - No retries (callers decide)
//   - No timeout unless WithTimeout is given
//   - No caching unless WithCache is given
package ergast
