package ergast

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	firstQualifyingSeason  = 1996
	firstSprintSeason      = 2021
	firstConstructorSeason = 1958
)

// validID matches Ergast driver and constructor identifiers such as
// "max_verstappen" or "red-bull".
var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Drivers lists drivers of all time, of a season, or of a single race.
func (c *Client) Drivers(ctx context.Context, scope Scope) (Table, error) {
	return c.reference(ctx, "drivers", scope, driversRule)
}

// Constructors lists constructors of all time, of a season, or of a single race.
func (c *Client) Constructors(ctx context.Context, scope Scope) (Table, error) {
	return c.reference(ctx, "constructors", scope, constructorsRule)
}

// Circuits lists circuits of all time, of a season, or of a single race.
func (c *Client) Circuits(ctx context.Context, scope Scope) (Table, error) {
	return c.reference(ctx, "circuits", scope, circuitsRule)
}

func (c *Client) reference(ctx context.Context, resource string, scope Scope, r rule) (Table, error) {
	if err := scope.validate(); err != nil {
		return Table{}, err
	}
	return c.query(ctx, c.endpoint(resource, scope.segments()...), r)
}

// RaceResult returns the classification of one race. The zero scope means the
// most recent completed race.
func (c *Client) RaceResult(ctx context.Context, scope Scope) (Table, error) {
	return c.raceLevel(ctx, "results", scope, raceResultRule)
}

// QualifyingResult returns qualifying times of one race. Q2 and Q3 columns are
// present only when the session format produced them.
func (c *Client) QualifyingResult(ctx context.Context, scope Scope) (Table, error) {
	if err := scope.requireFrom(firstQualifyingSeason, "qualifying data"); err != nil {
		return Table{}, err
	}
	return c.raceLevel(ctx, "qualifying", scope, qualifyingRule)
}

// SprintResult returns the classification of one sprint race.
func (c *Client) SprintResult(ctx context.Context, scope Scope) (Table, error) {
	if err := scope.requireFrom(firstSprintSeason, "sprint results"); err != nil {
		return Table{}, err
	}
	return c.raceLevel(ctx, "sprint", scope, sprintResultRule)
}

func (c *Client) raceLevel(ctx context.Context, resource string, scope Scope, r rule) (Table, error) {
	if err := scope.validate(); err != nil {
		return Table{}, err
	}
	if err := scope.requireBoth(); err != nil {
		return Table{}, err
	}
	segments := scope.segments()
	if scope.IsZero() {
		segments = []string{"current", "last"}
	}
	return c.query(ctx, c.endpoint(resource, segments...), r)
}

// Schedule returns the race calendar of season, or of the current season when zero.
func (c *Client) Schedule(ctx context.Context, season int) (Table, error) {
	scope := Season(season)
	if err := scope.validate(); err != nil {
		return Table{}, err
	}
	segment := "current"
	if season > 0 {
		segment = strconv.Itoa(season)
	}
	// The schedule resource is the season itself: /{season}.json.
	return c.query(ctx, c.endpoint(segment), scheduleRule)
}

// DriverStandings returns the drivers' championship after a season or a round.
// The zero scope means the current standings.
func (c *Client) DriverStandings(ctx context.Context, scope Scope) (Table, error) {
	return c.standings(ctx, "driverStandings", scope, driverStandingsRule)
}

// ConstructorStandings returns the constructors' championship after a season or a round.
func (c *Client) ConstructorStandings(ctx context.Context, scope Scope) (Table, error) {
	if err := scope.requireFrom(firstConstructorSeason, "constructor standings"); err != nil {
		return Table{}, err
	}
	return c.standings(ctx, "constructorStandings", scope, constructorStandingsRule)
}

func (c *Client) standings(ctx context.Context, resource string, scope Scope, r rule) (Table, error) {
	if err := scope.validate(); err != nil {
		return Table{}, err
	}
	segments := scope.segments()
	if scope.IsZero() {
		segments = []string{"current"}
	}
	return c.query(ctx, c.endpoint(resource, segments...), r)
}

// DriverHistory returns one row per season the driver was classified in, oldest first.
func (c *Client) DriverHistory(ctx context.Context, driverID string) (Table, error) {
	id, err := identifier("driver", driverID)
	if err != nil {
		return Table{}, err
	}
	return c.query(ctx, c.endpoint("driverStandings", "drivers", id), driverHistoryRule)
}

// ConstructorHistory returns one row per season the constructor was classified in, oldest first.
func (c *Client) ConstructorHistory(ctx context.Context, constructorID string) (Table, error) {
	id, err := identifier("constructor", constructorID)
	if err != nil {
		return Table{}, err
	}
	return c.query(ctx, c.endpoint("constructorStandings", "constructors", id), constructorHistoryRule)
}

func identifier(kind, raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: %s id is required", ErrInvalidArgument, kind)
	}
	if !validID.MatchString(id) {
		return "", fmt.Errorf("%w: %s id %q may only contain letters, digits, '_' and '-'", ErrInvalidArgument, kind, id)
	}
	return id, nil
}

func (c *Client) query(ctx context.Context, reqURL *url.URL, r rule) (Table, error) {
	doc, err := c.fetch(ctx, reqURL)
	if err != nil {
		return Table{}, err
	}
	return flatten(doc, r)
}
