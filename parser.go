package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	errNotDeclaration  = errors.New("not a waypoint declaration")
	errUnexpectedToken = errors.New("unexpected token")
)

// declarationToken is waypointDeclaration as it looks once spaces are gone.
var declarationToken = stripSpace(waypointDeclaration)

var waypointFields = [...]string{"x", "y", "orientation", "heading"}

// LineError records why one input line was skipped.
type LineError struct {
	Line  int
	Field string
	Text  string
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s %q: %v", e.Line, e.Field, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseReport is the outcome of a text import.
type ParseReport struct {
	Poses   []Pose
	Skipped []*LineError
	Blank   int
}

// ParseWaypoints reads one waypoint declaration per line and returns the
// poses in input order. Lines that do not parse are dropped.
func ParseWaypoints(text string) []Pose {
	return ParseWaypointsReport(text).Poses
}

// ParseWaypointsReport is ParseWaypoints with the skipped lines kept.
func ParseWaypointsReport(text string) ParseReport {
	report := ParseReport{Poses: []Pose{}}
	for i, raw := range splitLines(text) {
		line := normalizeLine(raw)
		if line == "" {
			report.Blank++
			continue
		}
		pose, err := parseWaypointLine(line)
		if err != nil {
			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				lineErr = &LineError{Field: "line", Text: line, Err: err}
			}
			lineErr.Line = i + 1
			report.Skipped = append(report.Skipped, lineErr)
			continue
		}
		report.Poses = append(report.Poses, pose)
	}
	return report
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// normalizeLine drops whitespace and one trailing comma.
func normalizeLine(line string) string {
	line = stripSpace(line)
	return strings.TrimSuffix(line, ",")
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

type tokenKind int

const (
	tokWord tokenKind = iota
	tokLParen
	tokRParen
	tokComma
	tokEOF
)

func (k tokenKind) String() string {
	switch k {
	case tokWord:
		return "value"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	default:
		return "end of line"
	}
}

type token struct {
	kind tokenKind
	text string
}

// tokenize splits a normalized line into punctuation and words. Anything
// between punctuation is one word.
func tokenize(line string) []token {
	var tokens []token
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, token{kind: tokWord, text: line[start:end]})
			start = -1
		}
	}
	for i, r := range line {
		kind := tokWord
		switch r {
		case '(':
			kind = tokLParen
		case ')':
			kind = tokRParen
		case ',':
			kind = tokComma
		}
		if kind == tokWord {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		tokens = append(tokens, token{kind: kind, text: string(r)})
	}
	flush(len(line))
	return append(tokens, token{kind: tokEOF})
}

type lineParser struct {
	tokens []token
	pos    int
}

func (p *lineParser) peek() token {
	return p.tokens[p.pos]
}

func (p *lineParser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *lineParser) expect(kind tokenKind, field string) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, &LineError{
			Field: field,
			Text:  tok.text,
			Err:   fmt.Errorf("expected %s: %w", kind, errUnexpectedToken),
		}
	}
	return tok, nil
}

// field parses a number with at most one layer of parentheses around it.
func (p *lineParser) field(name string) (float64, error) {
	wrapped := p.peek().kind == tokLParen
	if wrapped {
		p.next()
	}
	tok, err := p.expect(tokWord, name)
	if err != nil {
		return 0, err
	}
	v, err := parseNumber(tok.text)
	if err != nil {
		return 0, &LineError{Field: name, Text: tok.text, Err: err}
	}
	if wrapped {
		if _, err := p.expect(tokRParen, name); err != nil {
			return 0, err
		}
	}
	return v, nil
}

// parseWaypointLine reads
//
//	newSwerveTrajectoryWaypoint(x,y,orientation,heading)
//
// from a normalized line. Orientation must parse but is not kept.
func parseWaypointLine(line string) (Pose, error) {
	p := &lineParser{tokens: tokenize(line)}

	decl := p.next()
	if decl.kind != tokWord || !strings.EqualFold(decl.text, declarationToken) {
		return Pose{}, &LineError{Field: "declaration", Text: decl.text, Err: errNotDeclaration}
	}
	if _, err := p.expect(tokLParen, "declaration"); err != nil {
		return Pose{}, err
	}

	var values [len(waypointFields)]float64
	for i, name := range waypointFields {
		if i > 0 {
			if _, err := p.expect(tokComma, name); err != nil {
				return Pose{}, err
			}
		}
		v, err := p.field(name)
		if err != nil {
			return Pose{}, err
		}
		values[i] = v
	}

	if _, err := p.expect(tokRParen, "heading"); err != nil {
		return Pose{}, err
	}
	if _, err := p.expect(tokEOF, "heading"); err != nil {
		return Pose{}, err
	}
	return NewPose(values[0], values[1], values[3]), nil
}

// parseNumber accepts strconv float syntax and Java's d/f literal suffixes.
// Non-finite results are rejected.
func parseNumber(text string) (float64, error) {
	if n := len(text); n > 1 && strings.ContainsRune("dDfF", rune(text[n-1])) {
		if c := text[n-2]; c == '.' || (c >= '0' && c <= '9') {
			text = text[:n-1]
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if !isFinite(v) {
		return 0, ErrNonFiniteValue
	}
	return v, nil
}
