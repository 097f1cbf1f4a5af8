package tape

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	shlex "github.com/anmitsu/go-shlex"
)

// ParseError reports a script line that could not be parsed
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse reads a script. Blank lines and lines starting with # are skipped;
// arguments are split shell style so templates can be quoted.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := parseLine(text, line)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

// ParseString is Parse for an in-memory script
func ParseString(script string) ([]Command, error) {
	return Parse(strings.NewReader(script))
}

func parseLine(text string, line int) (Command, error) {
	words, err := shlex.Split(text, true)
	if err != nil {
		return Command{}, &ParseError{Line: line, Msg: err.Error()}
	}
	if len(words) == 0 {
		return Command{}, &ParseError{Line: line, Msg: "empty command"}
	}
	name := strings.ToLower(words[0])
	ct, ok := commandNames[name]
	if !ok {
		return Command{}, &ParseError{Line: line, Msg: fmt.Sprintf("unknown command %q", words[0])}
	}
	args := words[1:]
	if n := minArgs[ct]; len(args) < n {
		return Command{}, &ParseError{Line: line, Msg: fmt.Sprintf("%s needs %d argument(s), got %d", name, n, len(args))}
	}
	return Command{Type: ct, Args: args, Line: line}, nil
}
