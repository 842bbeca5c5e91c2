package menu

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/eiannone/keyboard"
)

// KeyEscape is returned by Input.Key for Esc and Ctrl+C.
const KeyEscape rune = 0x1b

// Input reads single key presses for menu choices and whole lines for
// values.
type Input interface {
	Key() (rune, error)
	Line() (string, error)
}

// LineInput reads everything line by line, taking the first character of
// a line as the key. Used when stdin is not a terminal.
type LineInput struct {
	r *bufio.Reader
}

func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{r: bufio.NewReader(r)}
}

func (in *LineInput) Key() (rune, error) {
	line, err := in.Line()
	if err != nil {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}
	r, _ := utf8.DecodeRuneInString(line)
	return r, nil
}

func (in *LineInput) Line() (string, error) {
	line, err := in.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// KeyboardInput puts the terminal in raw mode for each key press and
// echoes the key to out. Lines are read from the cooked terminal.
type KeyboardInput struct {
	out   io.Writer
	lines *LineInput
}

func NewKeyboardInput(stdin io.Reader, out io.Writer) *KeyboardInput {
	return &KeyboardInput{out: out, lines: NewLineInput(stdin)}
}

func (in *KeyboardInput) Key() (rune, error) {
	ch, key, err := keyboard.GetSingleKey()
	if err != nil {
		return 0, fmt.Errorf("read key: %w", err)
	}
	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		fmt.Fprintln(in.out)
		return KeyEscape, nil
	case keyboard.KeyEnter:
		return 0, nil
	}
	fmt.Fprintln(in.out, string(ch))
	return ch, nil
}

func (in *KeyboardInput) Line() (string, error) {
	return in.lines.Line()
}
