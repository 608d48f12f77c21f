// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package shell is a line-oriented operator console over an editor
// session. Each input line is one command; destructive commands ask for
// a y/N confirmation on the next line.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"

	"linkpage/internal/editor"
	"linkpage/internal/models"
)

// maxLoginAttempts bounds interactive password prompts.
const maxLoginAttempts = 3

// Shell reads commands from in and writes results to out.
type Shell struct {
	sess  *editor.Session
	in    *bufio.Scanner
	out   io.Writer
	plain bool
}

// New creates a console over sess. plain disables ANSI colors.
func New(sess *editor.Session, in io.Reader, out io.Writer, plain bool) *Shell {
	return &Shell{sess: sess, in: bufio.NewScanner(in), out: out, plain: plain}
}

// Run logs in and then processes commands until quit or end of input. An
// empty password is prompted for.
func (sh *Shell) Run(ctx context.Context, password string) error {
	if err := sh.login(ctx, password); err != nil {
		return err
	}
	sh.printToast()
	if sh.sess.Working() != nil {
		sh.printf("%s\n", sh.paint(color.Cyan, "Wczytano treść. Wpisz 'help', aby zobaczyć komendy."))
	}

	for {
		sh.printf("%s ", sh.prompt())
		line, ok := sh.readLine()
		if !ok {
			if msg, warn := sh.sess.ExitWarning(); warn {
				sh.printf("\n%s\n", sh.paint(color.Yellow, msg+" (koniec wejścia, zmiany utracone)"))
			}
			return nil
		}
		quit, err := sh.Exec(ctx, line)
		if err != nil {
			sh.printf("%s\n", sh.paint(color.Red, "błąd: "+err.Error()))
		}
		if quit {
			return nil
		}
	}
}

func (sh *Shell) login(ctx context.Context, password string) error {
	prompted := password == ""
	for attempt := 1; ; attempt++ {
		if prompted {
			sh.printf("Hasło: ")
			line, ok := sh.readLine()
			if !ok {
				return io.EOF
			}
			password = line
		}
		err := sh.sess.Login(ctx, password)
		if err == nil {
			return nil
		}
		sh.printf("%s\n", sh.paint(color.Red, "Nieprawidłowe hasło"))
		if !prompted || attempt >= maxLoginAttempts {
			return err
		}
	}
}

// Exec runs a single command line. It reports whether the console should
// exit.
func (sh *Shell) Exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help", "?":
		sh.printf("%s", helpText)
	case "show":
		sh.show()
	case "status":
		sh.status()
	case "set":
		return false, sh.apply(parseSet(args, line))
	case "link":
		return false, sh.apply(parseLink(args, line))
	case "notif":
		return false, sh.apply(parseNotif(args, line))
	case "save":
		err := sh.sess.Save(ctx)
		sh.printToast()
		return false, err
	case "reload":
		if _, warn := sh.sess.ExitWarning(); warn && !sh.confirm("Odrzucić niezapisane zmiany i wczytać ponownie?") {
			return false, nil
		}
		err := sh.sess.Load(ctx)
		sh.printToast()
		return false, err
	case "reset":
		err := sh.sess.Reset(func() bool { return sh.confirm("Odrzucić wszystkie niezapisane zmiany?") })
		switch {
		case errors.Is(err, editor.ErrResetDeclined):
			sh.printf("Anulowano.\n")
			return false, nil
		case errors.Is(err, editor.ErrNothingToReset):
			sh.printf("Brak zmian do cofnięcia.\n")
			return false, nil
		case err == nil:
			sh.printf("%s\n", sh.paint(color.Green, "Przywrócono ostatnio zapisaną wersję."))
		}
		return false, err
	case "quit", "exit", "q":
		if msg, warn := sh.sess.ExitWarning(); warn && !sh.confirm(msg) {
			return false, nil
		}
		return true, nil
	default:
		return false, fmt.Errorf("nieznana komenda %q", cmd)
	}
	return false, nil
}

func (sh *Shell) apply(edit editor.Edit, err error) error {
	if err != nil {
		return err
	}
	return sh.sess.Apply(edit)
}

// confirm asks question and reads a y/N answer. Anything but yes declines.
func (sh *Shell) confirm(question string) bool {
	sh.printf("%s [y/N] ", sh.paint(color.Yellow, question))
	line, ok := sh.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "t", "tak":
		return true
	}
	return false
}

func (sh *Shell) readLine() (string, bool) {
	if !sh.in.Scan() {
		return "", false
	}
	return sh.in.Text(), true
}

func (sh *Shell) prompt() string {
	p := "linkadmin"
	if sh.sess.HasUnsavedChanges() {
		p += "*"
	}
	return p + ">"
}

func (sh *Shell) status() {
	state := sh.sess.SaveState()
	var c color.Color
	switch state {
	case editor.StateSuccess:
		c = color.Green
	case editor.StateError:
		c = color.Red
	case editor.StateSaving:
		c = color.Yellow
	default:
		c = color.Cyan
	}
	sh.printf("zapis: %s\n", sh.paint(c, string(state)))
	if sh.sess.HasUnsavedChanges() {
		sh.printf("zmiany: %s\n", sh.paint(color.Yellow, "niezapisane"))
	} else {
		sh.printf("zmiany: brak\n")
	}
	if t := sh.sess.LastSaved(); !t.IsZero() {
		sh.printf("ostatni zapis: %s\n", t.Format("15:04:05"))
	}
}

func (sh *Shell) show() {
	doc := sh.sess.Working()
	if doc == nil {
		sh.printf("Brak wczytanej treści. Użyj 'reload'.\n")
		return
	}
	sh.printf("%s  %s\n", sh.paint(color.Cyan, doc.Profile.Name), doc.Profile.Tagline)
	sh.printf("preferowany kontakt: %s\n", doc.Profile.Preferred)
	avail := sh.paint(color.Red, "niedostępny")
	if doc.Status.Available {
		avail = sh.paint(color.Green, "dostępny")
	}
	sh.printf("status: %s  %q  stream: %q\n", avail, doc.Status.Text, doc.Status.StreamInfo)
	for _, m := range models.Metrics {
		s := doc.Stats.Get(m)
		sh.printf("  %-12s %d  %q  %q\n", m, s.Value, s.Display, s.Suffix)
	}
	sh.printf("linki:\n")
	for i, l := range doc.Links {
		sh.printf("  %d. %s %s %s %s %s%s\n", i+1, l.Emoji, l.Label, l.URL, l.Color, l.ID, hidden(l.Visible))
	}
	sh.printf("powiadomienia:\n")
	if len(doc.Notifications) == 0 {
		sh.printf("  (brak)\n")
	}
	for i, n := range doc.Notifications {
		sh.printf("  %d. [%s] %s %q %q%s\n", i+1, n.Variant, n.Emoji, n.Title, n.Message, hidden(n.Visible))
	}
}

func (sh *Shell) printToast() {
	t, ok := sh.sess.Toast()
	if !ok {
		return
	}
	c := color.Cyan
	switch t.Kind {
	case editor.ToastSuccess:
		c = color.Green
	case editor.ToastError:
		c = color.Red
	}
	sh.printf("%s\n", sh.paint(c, t.Message))
}

func (sh *Shell) paint(c color.Color, s string) string {
	if sh.plain {
		return s
	}
	return c.Sprint(s)
}

func (sh *Shell) printf(format string, a ...any) {
	fmt.Fprintf(sh.out, format, a...)
}

func hidden(visible bool) string {
	if visible {
		return ""
	}
	return " (ukryty)"
}

// index parses a 1-based position as typed by the operator.
func index(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("niepoprawny numer %q", s)
	}
	return n - 1, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "tak", "1":
		return true, nil
	case "off", "false", "no", "nie", "0":
		return false, nil
	}
	return false, fmt.Errorf("oczekiwano on/off, otrzymano %q", s)
}

// rest returns the raw text of line after skipping n whitespace-separated
// fields, so values keep their inner spacing.
func rest(line string, n int) string {
	s := strings.TrimSpace(line)
	for range n {
		i := strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' })
		if i < 0 {
			return ""
		}
		s = strings.TrimLeft(s[i:], " \t")
	}
	return s
}

const helpText = `Komendy:
  show                                 pokaż bieżącą wersję roboczą
  status                               stan zapisu i niezapisanych zmian
  set status|stream|name|tagline|preferred <tekst>
  set available on|off
  set stat <subscribers|views|followers> value|display|suffix <wartość>
  link add [etykieta] | del <n> | up <n> | down <n> | show <n> | hide <n>
  link set <n> label|sub|url|emoji|color <wartość>
  notif add [wariant] | del <n> | up <n> | down <n> | show <n> | hide <n>
  notif set <n> emoji|title|message|url|urlLabel|expiresAt <wartość>
  notif variant <n> <stream|info|alert|success|promo|top-donate>
  notif dismissible <n> on|off
  save                                 zapisz zmiany
  reset                                odrzuć niezapisane zmiany
  reload                               wczytaj treść ponownie
  quit                                 wyjdź
`
