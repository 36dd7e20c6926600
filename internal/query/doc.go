// Package query maps view names typed on the command line or picked in the
// browser onto ergast client calls.
//
// A Query names a View, an optional season and round, and positional
// arguments. Parse checks the view and argument count; Execute dispatches to
// the matching ergast.Source method. Finders and histories take arguments and
// no scope; every other view takes a scope and no arguments.
//
//	q, err := query.Parse("find-circuit", []string{"Portugal"})
//	if err != nil {
//		return err
//	}
//	table, err := query.Execute(ctx, client, q)
package query
