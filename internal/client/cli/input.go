package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

// GetWithDefault is GetSimpleText with a preset value shown in brackets.
// An empty answer keeps the preset.
func GetWithDefault(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	v, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
//
// A non-empty current value is kept when the first line is empty.
func GetMultiline(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	hint := "(press Enter on an empty line to finish)"
	if current != "" {
		hint = "(press Enter on an empty line to finish, or straight away to keep the current text)"
	}
	if _, err := fmt.Fprint(w, prompt+"\n"+hint+"\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && len(lines) == 0 && current == "" {
				return "", err
			}
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	if len(lines) == 0 {
		return current, nil
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetChoice lists options numbered from 1 and reads the user's pick, either
// by number or by its exact label (case-insensitive). An empty answer picks
// current when it is one of the options.
func GetChoice(reader *bufio.Reader, prompt string, options []string, current string, w io.Writer) (string, error) {
	var b strings.Builder
	b.WriteString(prompt)
	for i, o := range options {
		mark := " "
		if o == current {
			mark = "*"
		}
		fmt.Fprintf(&b, "\n %s%2d) %s", mark, i+1, o)
	}

	v, err := GetSimpleText(reader, b.String(), w)
	if err != nil {
		return "", err
	}
	if v == "" && current != "" {
		v = current
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return o, nil
		}
	}
	return "", &choiceError{input: v}
}

// GetConfirm asks a yes/no question. Anything but y or yes means no.
func GetConfirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	v, err := GetSimpleText(reader, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(v) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

var errInvalidChoice = errors.New("invalid choice")

// choiceError carries the rejected answer so callers can still act on
// keywords that are not options.
type choiceError struct {
	input string
}

func (e *choiceError) Error() string        { return fmt.Sprintf("invalid choice %q", e.input) }
func (e *choiceError) Is(target error) bool { return target == errInvalidChoice }

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
