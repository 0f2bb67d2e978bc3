package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"git.lost.host/meutraa/tapbeat/internal/game"
)

type DefaultParser struct{}

// weight
// weight(short,...)
// weight[long,...]
// weight(short,...)[long,...]
var patterns = [...]*regexp.Regexp{
	regexp.MustCompile(`^(?P<weight>\d+)$`),
	regexp.MustCompile(`^(?P<weight>\d+)\((?P<short>-?\d+(,-?\d+)*)\)$`),
	regexp.MustCompile(`^(?P<weight>\d+)\[(?P<long>-?\d+(,-?\d+)*)\]$`),
	regexp.MustCompile(`^(?P<weight>\d+)\((?P<short>-?\d+(,-?\d+)*)\)\[(?P<long>-?\d+(,-?\d+)*)\]$`),
}

const headerLines = 2

// stripComment drops everything from the first space on
func stripComment(line string) string {
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return line[:i]
	}
	return line
}

// parseIntegerList parses "-3,4,200". An empty list is nil, never empty.
func parseIntegerList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	list := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if nil != err {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

func (p *DefaultParser) parseLine(name string, index int, line string) (*game.BeatGroup, error) {
	var match []string
	var re *regexp.Regexp
	for _, exp := range patterns {
		if m := exp.FindStringSubmatch(line); nil != m {
			match, re = m, exp
			break
		}
	}
	if nil == match {
		if line == "" {
			return nil, nil
		}
		return nil, &SyntaxError{Chart: name, Line: index, Text: line}
	}

	group := func(g string) string {
		if i := re.SubexpIndex(g); i >= 0 {
			return match[i]
		}
		return ""
	}

	weight, err := strconv.Atoi(group("weight"))
	if nil != err {
		return nil, &SyntaxError{Chart: name, Line: index, Text: line, Err: err}
	}
	if weight < 1 {
		return nil, &SyntaxError{Chart: name, Line: index, Text: line, Err: errors.New("weight must be positive")}
	}
	short, err := parseIntegerList(group("short"))
	if nil != err {
		return nil, &SyntaxError{Chart: name, Line: index, Text: line, Err: err}
	}
	long, err := parseIntegerList(group("long"))
	if nil != err {
		return nil, &SyntaxError{Chart: name, Line: index, Text: line, Err: err}
	}

	return &game.BeatGroup{
		Line:   index,
		Weight: weight,
		Short:  short,
		Long:   long,
	}, nil
}

func (p *DefaultParser) Parse(name string, r io.Reader) (*game.Chart, error) {
	data, err := io.ReadAll(r)
	if nil != err {
		return nil, fmt.Errorf("unable to read chart %v: %w", name, err)
	}

	text := string(data)
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) < headerLines {
		return nil, fmt.Errorf("chart %v is missing its tempo and audio header", name)
	}

	tempo, err := strconv.ParseFloat(strings.TrimSpace(lines[0]), 64)
	if nil != err {
		return nil, &SyntaxError{Chart: name, Line: 0, Text: lines[0], Err: err}
	}
	if tempo <= 0 {
		return nil, &SyntaxError{Chart: name, Line: 0, Text: lines[0], Err: errors.New("tempo must be positive")}
	}

	chart := &game.Chart{
		Name:  name,
		Text:  text,
		Tempo: tempo,
		Audio: strings.TrimSpace(lines[1]),
	}

	for i := headerLines; i < len(lines); i++ {
		g, err := p.parseLine(name, i, stripComment(lines[i]))
		if nil != err {
			return nil, err
		}
		if nil != g {
			chart.Groups = append(chart.Groups, *g)
		}
	}

	return chart, nil
}

// ParseFile parses a chart file, the chart is named after the file
func (p *DefaultParser) ParseFile(file string) (*game.Chart, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return p.Parse(name, f)
}
