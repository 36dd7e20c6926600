package ergast

import (
	"context"
	"strings"
)

// FindDriver returns all-time drivers whose id contains the first or the last
// name, case-insensitively. An empty name matches every driver.
func (c *Client) FindDriver(ctx context.Context, first, last string) (Table, error) {
	drivers, err := c.Drivers(ctx, AllTime)
	if err != nil {
		return Table{}, err
	}
	first, last = strings.ToLower(first), strings.ToLower(last)
	return drivers.Filter(func(row Row) bool {
		id := strings.ToLower(Text(row["driverId"]))
		return strings.Contains(id, first) || strings.Contains(id, last)
	}), nil
}

// FindConstructor returns all-time constructors whose id contains name.
func (c *Client) FindConstructor(ctx context.Context, name string) (Table, error) {
	constructors, err := c.Constructors(ctx, AllTime)
	if err != nil {
		return Table{}, err
	}
	return constructors.Filter(containsAny(strings.ToLower(name), "constructorId")), nil
}

// FindCircuit returns all-time circuits whose id, name, locality or country contains text.
func (c *Client) FindCircuit(ctx context.Context, text string) (Table, error) {
	circuits, err := c.Circuits(ctx, AllTime)
	if err != nil {
		return Table{}, err
	}
	return circuits.Filter(containsAny(strings.ToLower(text), "circuitId", "circuitName", "Locality", "Country")), nil
}

func containsAny(needle string, columns ...string) func(Row) bool {
	return func(row Row) bool {
		for _, col := range columns {
			if strings.Contains(strings.ToLower(Text(row[col])), needle) {
				return true
			}
		}
		return false
	}
}
