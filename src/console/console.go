// Interactive console: reads raw key presses, edits one command line at a
// time and prints the reply of each command.
package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/eiannone/keyboard"
)

const prompt = "elevsim> "

type Executor interface {
	Execute(line string) (string, error)
}

type keyAction int

const (
	actNone keyAction = iota
	actEcho
	actErase
	actSubmit
	actQuit
)

// lineBuffer holds the command line being typed.
type lineBuffer struct {
	runes []rune
}

func (b *lineBuffer) feed(ev keyboard.KeyEvent) keyAction {
	switch ev.Key {
	case keyboard.KeyCtrlC, keyboard.KeyEsc:
		return actQuit
	case keyboard.KeyEnter:
		return actSubmit
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		if len(b.runes) == 0 {
			return actNone
		}
		b.runes = b.runes[:len(b.runes)-1]
		return actErase
	case keyboard.KeySpace:
		b.runes = append(b.runes, ' ')
		return actEcho
	}
	if ev.Rune >= ' ' {
		b.runes = append(b.runes, ev.Rune)
		return actEcho
	}
	return actNone
}

// take returns the line typed so far and empties the buffer.
func (b *lineBuffer) take() string {
	line := string(b.runes)
	b.runes = b.runes[:0]
	return line
}

func (b *lineBuffer) last() rune {
	return b.runes[len(b.runes)-1]
}

// Run puts the terminal in raw mode and serves commands until ctx is done or
// the user presses Esc or Ctrl-C.
func Run(ctx context.Context, exec Executor, out io.Writer) error {
	keys, err := keyboard.GetKeys(16)
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); err != nil {
			slog.Warn("Closing keyboard failed", "err", err)
		}
	}()
	return serve(ctx, keys, exec, out)
}

func serve(ctx context.Context, keys <-chan keyboard.KeyEvent, exec Executor, out io.Writer) error {
	var line lineBuffer
	fmt.Fprint(out, prompt)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprint(out, "\r\n")
			return nil
		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				return fmt.Errorf("read key: %w", ev.Err)
			}
			switch line.feed(ev) {
			case actEcho:
				fmt.Fprint(out, string(line.last()))
			case actErase:
				fmt.Fprint(out, "\b \b")
			case actSubmit:
				fmt.Fprint(out, "\r\n")
				respond(exec, line.take(), out)
				fmt.Fprint(out, prompt)
			case actQuit:
				fmt.Fprint(out, "\r\n")
				slog.Info("Console closed by user")
				return nil
			}
		}
	}
}

// The terminal is in raw mode, so every line break needs a carriage return.
func respond(exec Executor, line string, out io.Writer) {
	if strings.TrimSpace(line) == "" {
		return
	}
	reply, err := exec.Execute(line)
	if err != nil {
		reply = "error: " + err.Error()
	}
	fmt.Fprint(out, strings.ReplaceAll(reply, "\n", "\r\n"), "\r\n")
}
