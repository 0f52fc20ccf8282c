package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"finance-tracker/internal/api"
	"finance-tracker/internal/categories"
	"finance-tracker/internal/charts"
	"finance-tracker/internal/config"
	"finance-tracker/internal/i18n"
	"finance-tracker/internal/models"
	"finance-tracker/internal/session"
	"finance-tracker/internal/storage"
	"finance-tracker/internal/summary"
)

const usage = `Usage: finctl [-db <db_path>] [-api <url>] <command> [flags]

Commands:
  login -email <email> [-password <password>] [-remember]
  logout
  status
  summary
  lang [code]`

func main() {
	config.LoadEnvFile()
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is what every command needs: the device store, the session and the localizer.
type env struct {
	cfg       *config.Config
	db        *storage.DB
	sessions  *session.Store
	localizer *i18n.Localizer
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("finctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to database file")
	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "Backend base URL")
	fs.Usage = func() {
		fmt.Fprintln(stdout, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stdout, usage)
		return fmt.Errorf("missing command")
	}

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	sessions, err := session.Open(db)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	localizer := i18n.New(cfg.DefaultLanguage)
	if lang, err := db.Get(storage.KeyLanguage); err == nil {
		localizer.SetLanguage(lang)
	}

	e := &env{cfg: cfg, db: db, sessions: sessions, localizer: localizer, stdin: stdin, stdout: stdout, stderr: stderr}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		return e.login(rest)
	case "logout":
		return e.logout()
	case "status":
		return e.status()
	case "summary":
		return e.summary()
	case "lang":
		return e.lang(rest)
	default:
		fmt.Fprintln(stdout, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (e *env) client() (*api.Client, error) {
	return api.New(e.cfg.APIBaseURL,
		api.WithTimeout(e.cfg.APITimeout),
		api.WithTokenSource(func() string {
			token, _ := e.sessions.Read()
			return token
		}),
	)
}

func (e *env) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	email := fs.String("email", "", "Account email")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	remember := fs.Bool("remember", false, "Keep the session across restarts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(e.stdout, "Usage: finctl login -email <email> [-password <password>] [-remember]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(e.stdout, "Password: ")
		var err error
		password, err = readPassword(e.stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(e.stdout)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	client, err := e.client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.APITimeout)
	defer cancel()

	token, err := client.Login(ctx, api.Credentials{Email: strings.TrimSpace(*email), Password: password})
	if err != nil {
		if api.IsUnauthorized(err) {
			return errors.New(e.localizer.Translate(i18n.KeyLoginFailed))
		}
		return fmt.Errorf("login failed: %w", err)
	}
	if err := e.sessions.Save(token, *remember); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	current, _ := e.sessions.Current()
	fmt.Fprintf(e.stdout, "Signed in as %s until %s\n", displaySubject(token), current.ExpiresAt.Local().Format(time.RFC1123))
	return nil
}

func displaySubject(token string) string {
	if sub := session.Subject(token); sub != "" {
		return sub
	}
	return "unknown user"
}

func (e *env) logout() error {
	if err := e.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Fprintln(e.stdout, e.localizer.Translate(i18n.KeyLoggedOut))
	return nil
}

func (e *env) status() error {
	current, ok := e.sessions.Current()
	if !ok {
		fmt.Fprintln(e.stdout, "Not signed in")
		return nil
	}
	state := "active"
	if e.sessions.IsExpired() {
		state = "expired"
	}
	fmt.Fprintf(e.stdout, "Session %s (user %s, expires %s, remember me: %t)\n",
		state, displaySubject(current.Token), current.ExpiresAt.Local().Format(time.RFC1123), current.RememberMe)
	return nil
}

func (e *env) summary() error {
	if _, ok := e.sessions.Read(); !ok || e.sessions.IsExpired() {
		_ = e.sessions.Clear()
		return errors.New(e.localizer.Translate(i18n.KeySessionExpired))
	}

	client, err := e.client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.APITimeout)
	defer cancel()

	var expenses, incomes []models.Transaction
	var cats []models.Category
	var g errgroup.Group
	errs := make([]error, 3)
	g.Go(func() error { expenses, errs[0] = client.ListExpenses(ctx); return errs[0] })
	g.Go(func() error { incomes, errs[1] = client.ListIncomes(ctx); return errs[1] })
	g.Go(func() error { cats, errs[2] = client.ListCategories(ctx); return errs[2] })
	if err := g.Wait(); err != nil {
		if slices.ContainsFunc(errs, api.IsUnauthorized) {
			_ = e.sessions.Clear()
			return errors.New(e.localizer.Translate(i18n.KeySessionExpired))
		}
		fmt.Fprintln(e.stderr, e.localizer.Translate(i18n.KeyLoadingFailed))
		return fmt.Errorf("failed to load data: %w", err)
	}

	t := e.localizer.Translate
	sum := summary.Summarize(expenses, incomes)

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s:\t%s\n", t(i18n.KeyTotalIncome), sum.TotalIncome.StringFixed(2))
	fmt.Fprintf(tw, "%s:\t%s\n", t(i18n.KeyTotalExpense), sum.TotalExpense.StringFixed(2))
	fmt.Fprintf(tw, "%s:\t%s\n", t(i18n.KeyBalance), sum.Balance.StringFixed(2))
	fmt.Fprintf(tw, "%s:\t%.0f%%\n", t(i18n.KeySpent), sum.DisplayRatio()*100)
	if err := tw.Flush(); err != nil {
		return err
	}
	if sum.ExceedsIncome {
		fmt.Fprintf(e.stdout, "! %s\n", t(i18n.KeyOverspending))
	}

	byCategory := summary.ByCategory(expenses, categories.NewResolver(cats))
	if len(byCategory) == 0 {
		fmt.Fprintln(e.stdout, t(i18n.KeyNoData))
		return nil
	}

	values := make([]float64, len(byCategory))
	labels := make([]string, len(byCategory))
	for i, ct := range byCategory {
		values[i] = ct.Total.InexactFloat64()
		labels[i] = ct.Category.Name
	}

	fmt.Fprintf(e.stdout, "\n%s\n", t(i18n.KeyExpenses))
	tw = tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	for i, slice := range charts.ShapePie(values, labels) {
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\t%s\n",
			slice.Label, byCategory[i].Total.StringFixed(2), byCategory[i].Percentage, slice.Color.Hex())
	}
	return tw.Flush()
}

func (e *env) lang(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(e.stdout, "%s (supported: %s)\n", e.localizer.Language(), strings.Join(e.localizer.Supported(), ", "))
		return nil
	}

	active := e.localizer.SetLanguage(args[0])
	if err := e.db.Set(storage.KeyLanguage, active); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	fmt.Fprintln(e.stdout, active)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
