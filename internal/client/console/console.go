// Package console implements the operator terminal: a badge password prompt
// followed by a serial number prompt.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/service"
)

// Authenticator logs operators in and out.
type Authenticator interface {
	Authenticate(ctx context.Context, password string) (models.UserInfo, error)
	Logout()
}

// LabelPreparer prepares the labels for a serial number.
type LabelPreparer interface {
	Prepare(ctx context.Context, serial string) ([]models.LabelJob, error)
}

// SessionReader exposes the operator currently logged in.
type SessionReader interface {
	User() (models.UserInfo, bool)
}

const helpText = `Available commands:
  print <serial>   prepare labels for a serial number
  whoami           show the operator logged in
  logout           end the session and ask for a badge again
  help             show this help
  exit             quit`

// Console is an interactive operator session on a reader/writer pair.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
	auth    Authenticator
	labels  LabelPreparer
	session SessionReader

	// readPassword reads a password without echo. When nil the password
	// is read as a plain input line.
	readPassword func() (string, error)
}

// New creates a Console reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, auth Authenticator, labels LabelPreparer, sess SessionReader) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
		auth:    auth,
		labels:  labels,
		session: sess,
	}
}

// NewTerminal creates a Console on stdin/stdout. Password input is hidden
// when stdin is a terminal.
func NewTerminal(auth Authenticator, labels LabelPreparer, sess SessionReader) *Console {
	c := New(os.Stdin, os.Stdout, auth, labels, sess)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		c.readPassword = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(c.out)
			return string(b), err
		}
	}
	return c
}

// Run alternates between the login prompt and the command prompt until the
// input ends, the operator types exit, or ctx is canceled.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := c.session.User(); !ok {
			done, err := c.login(ctx)
			if err != nil || done {
				return err
			}
			continue
		}
		done, err := c.command(ctx)
		if err != nil || done {
			return err
		}
	}
}

// login asks for one badge password. done reports end of input.
func (c *Console) login(ctx context.Context) (done bool, err error) {
	fmt.Fprint(c.out, "Badge password: ")
	password, ok, err := c.password()
	if err != nil || !ok {
		return true, err
	}
	if strings.TrimSpace(password) == "" {
		return false, nil
	}

	user, err := c.auth.Authenticate(ctx, password)
	if err != nil {
		fmt.Fprintln(c.out, failureMessage(err))
		return false, nil
	}
	fmt.Fprintf(c.out, "Logged in as %s %s (%s)\n", user.Name, user.Surname, user.Prefix)
	return false, nil
}

func (c *Console) password() (string, bool, error) {
	if c.readPassword != nil {
		p, err := c.readPassword()
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		return p, err == nil, err
	}
	if !c.scanner.Scan() {
		return "", false, c.scanner.Err()
	}
	return c.scanner.Text(), true, nil
}

// command reads and executes one command line. done reports exit or end of input.
func (c *Console) command(ctx context.Context) (done bool, err error) {
	fmt.Fprint(c.out, "station> ")
	if !c.scanner.Scan() {
		return true, c.scanner.Err()
	}
	args := strings.Fields(c.scanner.Text())
	if len(args) == 0 {
		return false, nil
	}

	switch args[0] {
	case "help":
		fmt.Fprintln(c.out, helpText)
	case "print":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: print <serial>")
			return false, nil
		}
		c.print(ctx, args[1])
	case "whoami":
		if u, ok := c.session.User(); ok {
			fmt.Fprintf(c.out, "%s %s (%s)\n", u.Name, u.Surname, u.Prefix)
		}
	case "logout":
		c.auth.Logout()
		fmt.Fprintln(c.out, "Logged out")
	case "exit", "quit":
		return true, nil
	default:
		fmt.Fprintf(c.out, "Unknown command %q, type help\n", args[0])
	}
	return false, nil
}

func (c *Console) print(ctx context.Context, serial string) {
	jobs, err := c.labels.Prepare(ctx, serial)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrEmptySerial):
		fmt.Fprintln(c.out, "Serial number is required")
		return
	case errors.Is(err, service.ErrNoLabels):
		fmt.Fprintln(c.out, "No labels are configured for this station")
		return
	case errors.Is(err, service.ErrNotAuthenticated):
		fmt.Fprintln(c.out, "Not logged in")
		return
	default:
		fmt.Fprintf(c.out, "Failed to prepare labels: %v\n", err)
		return
	}
	for _, j := range jobs {
		fmt.Fprintf(c.out, "%s: %s -> %s x%d (%s)\n", j.Key, j.Serial, j.Printer, j.Copies, j.RecordPath)
	}
}

func failureMessage(err error) string {
	reason, _ := service.ReasonOf(err)
	switch reason {
	case models.NotFound:
		return "Password not found"
	case models.MalformedRecord:
		return "Credential record is incomplete, contact the administrator"
	case models.FileUnavailable:
		return "Credential file is not available"
	case models.DecodeError:
		return "Credential file is corrupt"
	default:
		return "Unexpected problem, try again"
	}
}
