package telegram

import (
	"errors"
	"strconv"
	"strings"
)

var errBadArgs = errors.New("bad command arguments")

// parseNumber parses a decimal number, accepting a comma as decimal separator.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, errBadArgs
	}
	return strconv.ParseFloat(s, 64)
}

// parseBMIArgs parses "<weight> <height> [age]".
func parseBMIArgs(args string) (weight, height float64, age int, err error) {
	fields := strings.Fields(args)
	if len(fields) < 2 || len(fields) > 3 {
		return 0, 0, 0, errBadArgs
	}

	if weight, err = parseNumber(fields[0]); err != nil {
		return 0, 0, 0, err
	}
	if height, err = parseNumber(fields[1]); err != nil {
		return 0, 0, 0, err
	}
	if len(fields) == 3 {
		if age, err = strconv.Atoi(fields[2]); err != nil || age < 1 || age > 150 {
			return 0, 0, 0, errBadArgs
		}
	}

	return weight, height, age, nil
}

// parseTimerArgs parses "<task words...> <seconds>".
func parseTimerArgs(args string) (task string, seconds int, err error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return "", 0, errBadArgs
	}

	seconds, err = strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return "", 0, errBadArgs
	}

	return strings.Join(fields[:len(fields)-1], " "), seconds, nil
}

// displayName picks the name shown on the leaderboard and in greetings.
func displayName(username, firstName string) string {
	switch {
	case username != "":
		return username
	case firstName != "":
		return firstName
	default:
		return "Hunter"
	}
}
