package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/paddock/internal/query"
)

// parseScope reads "", "2014", "2014 4" or "2014/4" into a season and round.
func parseScope(input string) (season, round int, err error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ' ' || r == '/' || r == ','
	})
	if len(fields) > 2 {
		return 0, 0, fmt.Errorf("expected season and optional round, got %q", input)
	}
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			return 0, 0, fmt.Errorf("%q is not a season or round number", f)
		}
		nums[i] = n
	}
	switch len(nums) {
	case 2:
		return nums[0], nums[1], nil
	case 1:
		return nums[0], 0, nil
	}
	return 0, 0, nil
}

// formatScope is the inverse of parseScope.
func formatScope(season, round int) string {
	switch {
	case season > 0 && round > 0:
		return fmt.Sprintf("%d %d", season, round)
	case season > 0:
		return strconv.Itoa(season)
	}
	return ""
}

// editPrompt describes what the input line expects for v.
func editPrompt(v query.View) string {
	if query.Scoped(v) {
		if v == query.Schedule {
			return "season> "
		}
		return "season [round]> "
	}
	usage := query.Usage(v)
	if i := strings.IndexByte(usage, ' '); i >= 0 {
		usage = usage[i+1:]
	}
	return usage + "> "
}

// applyInput returns q updated from the edit line.
func applyInput(q query.Query, input string) (query.Query, error) {
	if query.Scoped(q.View) {
		season, round, err := parseScope(input)
		if err != nil {
			return q, err
		}
		q.Season, q.Round = season, round
		q.Args = nil
	} else {
		q.Args = strings.Fields(input)
		q.Season, q.Round = 0, 0
	}
	return q, q.Validate()
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
