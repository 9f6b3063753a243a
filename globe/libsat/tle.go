package libsat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// TLE is a two line element set with an optional name line.
type TLE struct {
	Name  string
	Line1 string
	Line2 string
}

// Validate checks the layout and every numeric field the propagator reads.
// go-satellite terminates the process on malformed numbers, so input has to be
// checked before it gets there.
func (t TLE) Validate() error {
	l1, l2 := t.Line1, t.Line2
	if len(l1) < 69 || len(l2) < 69 {
		return fmt.Errorf("tle lines must be 69 characters, got %d and %d", len(l1), len(l2))
	}
	if l1[0] != '1' || l2[0] != '2' {
		return fmt.Errorf("tle lines must start with 1 and 2")
	}
	if strings.TrimSpace(l1[2:7]) != strings.TrimSpace(l2[2:7]) {
		return fmt.Errorf("tle lines belong to different satellites %q and %q", l1[2:7], l2[2:7])
	}

	ints := []struct{ name, value string }{
		{"catalog number", strings.Trim(l1[2:7], " ")},
		{"epoch year", l1[18:20]},
	}
	for _, f := range ints {
		if _, err := strconv.ParseInt(f.value, 10, 0); err != nil {
			return fmt.Errorf("invalid tle %s %q: %w", f.name, f.value, err)
		}
	}

	floats := []struct{ name, value string }{
		{"epoch day", l1[20:32]},
		{"mean motion derivative", strings.Replace(l1[33:43], " ", "", 2)},
		{"mean motion second derivative", strings.Replace(l1[44:45]+"."+l1[45:50]+"e"+l1[50:52], " ", "", 2)},
		{"drag term", strings.Replace(l1[53:54]+"."+l1[54:59]+"e"+l1[59:61], " ", "", 2)},
		{"inclination", strings.Replace(l2[8:16], " ", "", 2)},
		{"right ascension", strings.Replace(l2[17:25], " ", "", 2)},
		{"eccentricity", "." + l2[26:33]},
		{"argument of perigee", strings.Replace(l2[34:42], " ", "", 2)},
		{"mean anomaly", strings.Replace(l2[43:51], " ", "", 2)},
		{"mean motion", strings.Replace(l2[52:63], " ", "", 2)},
	}
	for _, f := range floats {
		if _, err := strconv.ParseFloat(f.value, 64); err != nil {
			return fmt.Errorf("invalid tle %s %q: %w", f.name, f.value, err)
		}
	}
	return nil
}

// ReadTLE reads element sets in two or three line format. Blank lines are skipped.
func ReadTLE(r io.Reader) ([]TLE, error) {
	var (
		sets []TLE
		name string
		l1   string
	)
	scanner := bufio.NewScanner(r)
	lineNr := 0
	for scanner.Scan() {
		lineNr++
		line := strings.TrimRight(scanner.Text(), " \r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "1 ") && l1 == "":
			l1 = line
		case strings.HasPrefix(line, "2 ") && l1 != "":
			tle := TLE{Name: name, Line1: l1, Line2: line}
			if err := tle.Validate(); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNr, err)
			}
			if tle.Name == "" {
				tle.Name = strings.TrimSpace(l1[2:7])
			}
			sets = append(sets, tle)
			name, l1 = "", ""
		case l1 == "":
			name = strings.TrimSpace(strings.TrimPrefix(line, "0 "))
		default:
			return nil, fmt.Errorf("line %d: expected tle line 2", lineNr)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if l1 != "" {
		return nil, fmt.Errorf("line %d: tle line 2 is missing", lineNr)
	}
	return sets, nil
}

func ReadTLEFile(filename string) ([]TLE, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open tle file %q: %w", filename, err)
	}
	defer f.Close()

	sets, err := ReadTLE(f)
	if err != nil {
		return nil, fmt.Errorf("could not read tle file %q: %w", filename, err)
	}
	return sets, nil
}
