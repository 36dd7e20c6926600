package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/paddock/ergast"
)

// View names one query the front-ends can run.
type View string

const (
	Drivers              View = "drivers"
	Constructors         View = "constructors"
	Circuits             View = "circuits"
	FindDriver           View = "find-driver"
	FindConstructor      View = "find-constructor"
	FindCircuit          View = "find-circuit"
	Results              View = "results"
	Qualifying           View = "qualifying"
	Sprint               View = "sprint"
	Schedule             View = "schedule"
	DriverStandings      View = "driver-standings"
	ConstructorStandings View = "constructor-standings"
	DriverHistory        View = "driver-history"
	ConstructorHistory   View = "constructor-history"
)

// ErrUnknownView is returned for view names outside Views.
var ErrUnknownView = errors.New("unknown view")

type viewSpec struct {
	usage   string
	scoped  bool // accepts a season and round
	minArgs int
	maxArgs int // negative means unbounded
}

var views = map[View]viewSpec{
	Drivers:              {usage: "drivers", scoped: true},
	Constructors:         {usage: "constructors", scoped: true},
	Circuits:             {usage: "circuits", scoped: true},
	FindDriver:           {usage: "find-driver <first> [last]", minArgs: 1, maxArgs: 2},
	FindConstructor:      {usage: "find-constructor <name>", minArgs: 1, maxArgs: 1},
	FindCircuit:          {usage: "find-circuit <text...>", minArgs: 1, maxArgs: -1},
	Results:              {usage: "results", scoped: true},
	Qualifying:           {usage: "qualifying", scoped: true},
	Sprint:               {usage: "sprint", scoped: true},
	Schedule:             {usage: "schedule", scoped: true},
	DriverStandings:      {usage: "driver-standings", scoped: true},
	ConstructorStandings: {usage: "constructor-standings", scoped: true},
	DriverHistory:        {usage: "driver-history <driverId>", minArgs: 1, maxArgs: 1},
	ConstructorHistory:   {usage: "constructor-history <constructorId>", minArgs: 1, maxArgs: 1},
}

var order = []View{
	Results, Qualifying, Sprint, Schedule,
	DriverStandings, ConstructorStandings,
	Drivers, Constructors, Circuits,
	FindDriver, FindConstructor, FindCircuit,
	DriverHistory, ConstructorHistory,
}

// Views lists every view in display order.
func Views() []View {
	return append([]View(nil), order...)
}

// Usage returns the argument synopsis of v.
func Usage(v View) string {
	return views[v].usage
}

// Scoped reports whether v takes a season and round.
func Scoped(v View) bool {
	return views[v].scoped
}

// Query is one request against the Ergast API.
type Query struct {
	View   View
	Season int
	Round  int
	Args   []string
}

// Parse resolves a view name and its positional arguments.
func Parse(view string, args []string) (Query, error) {
	v := View(strings.ToLower(strings.TrimSpace(view)))
	if _, ok := views[v]; !ok {
		return Query{}, fmt.Errorf("%w %q", ErrUnknownView, view)
	}
	q := Query{View: v}
	for _, arg := range args {
		if arg = strings.TrimSpace(arg); arg != "" {
			q.Args = append(q.Args, arg)
		}
	}
	return q, q.Validate()
}

// Validate checks argument counts and that only scoped views carry a season
// or round. Range checks on the scope itself are left to the client.
func (q Query) Validate() error {
	spec, ok := views[q.View]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownView, q.View)
	}
	n := len(q.Args)
	if n < spec.minArgs || (spec.maxArgs >= 0 && n > spec.maxArgs) {
		return fmt.Errorf("%w: usage: %s", ergast.ErrInvalidArgument, spec.usage)
	}
	if !spec.scoped && (q.Season != 0 || q.Round != 0) {
		return fmt.Errorf("%w: %s does not take a season or round", ergast.ErrInvalidArgument, q.View)
	}
	if q.View == Schedule && q.Round != 0 {
		return fmt.Errorf("%w: schedule does not take a round", ergast.ErrInvalidArgument)
	}
	return nil
}

// Scope returns the season and round as a client scope.
func (q Query) Scope() ergast.Scope {
	return ergast.Scope{Season: q.Season, Round: q.Round}
}

// String renders the query the way a user would type it.
func (q Query) String() string {
	parts := []string{string(q.View)}
	if q.Season != 0 {
		parts = append(parts, strconv.Itoa(q.Season))
		if q.Round != 0 {
			parts[len(parts)-1] += "/" + strconv.Itoa(q.Round)
		}
	} else if q.Round != 0 {
		parts = append(parts, "round "+strconv.Itoa(q.Round))
	}
	return strings.Join(append(parts, q.Args...), " ")
}

// Execute runs q against src.
func Execute(ctx context.Context, src ergast.Source, q Query) (ergast.Table, error) {
	if err := q.Validate(); err != nil {
		return ergast.Table{}, err
	}
	scope := q.Scope()
	switch q.View {
	case Drivers:
		return src.Drivers(ctx, scope)
	case Constructors:
		return src.Constructors(ctx, scope)
	case Circuits:
		return src.Circuits(ctx, scope)
	case FindDriver:
		first, last := q.Args[0], q.Args[0]
		if len(q.Args) > 1 {
			last = q.Args[1]
		}
		return src.FindDriver(ctx, first, last)
	case FindConstructor:
		return src.FindConstructor(ctx, q.Args[0])
	case FindCircuit:
		return src.FindCircuit(ctx, strings.Join(q.Args, " "))
	case Results:
		return src.RaceResult(ctx, scope)
	case Qualifying:
		return src.QualifyingResult(ctx, scope)
	case Sprint:
		return src.SprintResult(ctx, scope)
	case Schedule:
		return src.Schedule(ctx, q.Season)
	case DriverStandings:
		return src.DriverStandings(ctx, scope)
	case ConstructorStandings:
		return src.ConstructorStandings(ctx, scope)
	case DriverHistory:
		return src.DriverHistory(ctx, q.Args[0])
	case ConstructorHistory:
		return src.ConstructorHistory(ctx, q.Args[0])
	}
	return ergast.Table{}, fmt.Errorf("%w %q", ErrUnknownView, q.View)
}
