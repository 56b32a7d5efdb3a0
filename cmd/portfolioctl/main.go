// portfolioctl signs in to a portfolio site and edits its content from the
// terminal.
//
// Usage:
//
//	portfolioctl [--api URL] [--session FILE] [--timeout D] [--verbose] <command> [flags]
//
// Run "portfolioctl help" for the command list.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rpupo63/portfolio-site/client"
	"github.com/rpupo63/portfolio-site/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const defaultAPI = "http://localhost:8080"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &environment{
		stdin:  bufio.NewReader(os.Stdin),
		stdout: os.Stdout,
		stderr: os.Stderr,
		readPassword: func(prompt string) (string, error) {
			fd := int(os.Stdin.Fd())
			if !term.IsTerminal(fd) {
				return "", nil
			}
			fmt.Fprint(os.Stderr, prompt)
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stderr)
			return string(b), err
		},
	}
	if err := run(ctx, os.Args[1:], env); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// environment is what a command may touch outside its arguments.
type environment struct {
	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer
	// readPassword prompts without echo. An empty result with a nil error
	// means no terminal is available and the password is read from stdin.
	readPassword func(prompt string) (string, error)

	api  *client.Client
	sess *session.Session
}

type command struct {
	usage string
	run   func(ctx context.Context, env *environment, args []string) error
}

var commands = map[string]command{
	"login":        {"login [--email EMAIL]", runLogin},
	"signup":       {"signup [--name NAME] [--email EMAIL]", runSignup},
	"logout":       {"logout", runLogout},
	"whoami":       {"whoami", runWhoami},
	"admin":        {"admin", runAdmin},
	"seed":         {"seed", runSeed},
	"users":        {"users", runUsers},
	"verify-admin": {"verify-admin <user-id> [--revoke]", runVerifyAdmin},
	"delete":       {"delete <categories|clients|projects|testimonials> <id> [--yes]", runDelete},
	"testimonial":  {"testimonial --name NAME --quote TEXT [--role R] [--company C] [--rating N]", runTestimonial},
	"contact":      {"contact --name NAME --email EMAIL --message TEXT [--category C]", runContact},
}

func run(ctx context.Context, args []string, env *environment) error {
	var (
		apiURL      string
		sessionFile string
		timeout     time.Duration
		verbose     bool
	)
	flagSet := pflag.NewFlagSet("portfolioctl", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.SetOutput(env.stderr)
	flagSet.StringVar(&apiURL, "api", envOr("PORTFOLIO_API_URL", defaultAPI), "base URL of the portfolio API")
	flagSet.StringVar(&sessionFile, "session", session.FilePath(), "session file")
	flagSet.DurationVar(&timeout, "timeout", 15*time.Second, "limit for each API request")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log every request")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(env.stdout)
			return nil
		}
		return err
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: env.stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
	log.Logger = logger

	rest := flagSet.Args()
	if len(rest) == 0 || rest[0] == "help" {
		printHelp(env.stdout)
		return nil
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("unknown command %q (see portfolioctl help)", rest[0])
	}

	sess, err := session.Open(session.NewStore(sessionFile))
	if err != nil {
		return err
	}
	env.sess = sess
	env.api = client.New(apiURL,
		client.WithHTTPClient(&http.Client{Timeout: timeout}),
		client.WithTokenSource(sess.Token),
		client.WithLogger(logger.With().Str("component", "client").Logger()),
	)
	return cmd.run(ctx, env, rest[1:])
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "portfolioctl manages the content of a portfolio site.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, name := range []string{"login", "signup", "logout", "whoami", "admin", "seed", "users", "verify-admin", "delete", "testimonial", "contact"} {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags: --api URL (or PORTFOLIO_API_URL), --session FILE (or PORTFOLIO_SESSION_FILE), --timeout D, --verbose")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// prompt asks for a line on stdin unless value is already set.
func (env *environment) prompt(label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(env.stderr, "%s: ", label)
	line, err := env.stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

func (env *environment) password() (string, error) {
	if pw, err := env.readPassword("Password: "); err != nil || pw != "" {
		return pw, err
	}
	return env.prompt("Password", "")
}

// confirm asks a yes/no question, defaulting to no.
func (env *environment) confirm(question string) bool {
	fmt.Fprintf(env.stderr, "%s [y/N] ", question)
	line, _ := env.stdin.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
