// Command portfolioctl drives the portfolio admin from a terminal: login, the
// dashboard, confirmed deletes and the entity forms with their uploads.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/dashboard"
	"github.com/garnizeh/portfolio/internal/forms"
	"github.com/garnizeh/portfolio/internal/logging"
	"github.com/garnizeh/portfolio/internal/profile"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/portfolio"
	"github.com/garnizeh/portfolio/pkg/upload"
)

const usage = `usage: portfolioctl <command> [flags]

commands:
  hash-password  print a bcrypt hash for the admin password
  login          exchange admin credentials for a token
  profile        print the public profile page
  dashboard      print counts, recent records and statistics
  delete         delete a record after confirmation
  submit         fill an entity form from JSON and submit it with its images
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "portfolioctl: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config YAML file")
	verbose := fs.Bool("v", false, "Log requests to stderr")

	switch cmd {
	case "hash-password":
		cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
		if err := fs.Parse(args); err != nil {
			return err
		}
		password := strings.TrimSpace(readLine(in))
		if password == "" {
			return errors.New("password expected on stdin")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(hash))
		return nil

	case "login":
		username := fs.String("username", "admin", "Admin username")
		if err := fs.Parse(args); err != nil {
			return err
		}
		app, err := newApp(*configPath, *verbose, in, out)
		if err != nil {
			return err
		}
		defer app.client.Close()
		token, err := app.client.Login(ctx, *username, strings.TrimSpace(readLine(in)))
		if err != nil {
			return fmt.Errorf("login: %s", portfolio.Message(err))
		}
		fmt.Fprintln(out, token)
		return nil

	case "profile":
		format := fs.String("o", "yaml", "Output format: yaml or json")
		if err := fs.Parse(args); err != nil {
			return err
		}
		app, err := newApp(*configPath, *verbose, in, out)
		if err != nil {
			return err
		}
		defer app.client.Close()
		page, err := profile.Load(ctx, app.client, app.logger)
		if err != nil {
			return err
		}
		for section, err := range page.Errors {
			app.logger.Warn("section unavailable", slog.String("section", section), slog.Any("err", err))
		}
		return render(out, *format, page)

	case "dashboard":
		format := fs.String("o", "yaml", "Output format: yaml or json")
		if err := fs.Parse(args); err != nil {
			return err
		}
		app, err := newApp(*configPath, *verbose, in, out)
		if err != nil {
			return err
		}
		defer app.client.Close()
		dash := dashboard.New(app.client, app.shell, app.logger)
		if err := dash.Refresh(ctx); err != nil {
			return err
		}
		snapshot, _ := dash.Snapshot()
		return render(out, *format, snapshot)

	case "delete":
		kind := fs.String("kind", "", "Entity kind")
		id := fs.String("id", "", "Record id")
		name := fs.String("name", "", "Name shown in the confirmation prompt")
		yes := fs.Bool("yes", false, "Skip the confirmation prompt")
		if err := fs.Parse(args); err != nil {
			return err
		}
		k, err := models.ParseKind(*kind)
		if err != nil {
			return err
		}
		if *id == "" {
			return errors.New("-id is required")
		}
		app, err := newApp(*configPath, *verbose, in, out)
		if err != nil {
			return err
		}
		defer app.client.Close()
		app.shell.yes = *yes
		if *name == "" {
			*name = *id
		}
		_, err = dashboard.New(app.client, app.shell, app.logger).Delete(ctx, k, *id, *name)
		return err

	case "submit":
		var opts submitOptions
		kind := fs.String("kind", "", "Entity kind")
		fs.StringVar(&opts.id, "id", "", "Record id, updates instead of creating")
		fs.StringVar(&opts.formPath, "form", "", "JSON file with the form values")
		fs.StringVar(&opts.photo, "photo", "", "Photo for users and certificates")
		fs.StringVar(&opts.mainPhoto, "main", "", "Competition main photo")
		gallery := fs.String("gallery", "", "Comma separated competition gallery images")
		if err := fs.Parse(args); err != nil {
			return err
		}
		k, err := models.ParseKind(*kind)
		if err != nil {
			return err
		}
		if *gallery != "" {
			opts.gallery = strings.Split(*gallery, ",")
		}
		app, err := newApp(*configPath, *verbose, in, out)
		if err != nil {
			return err
		}
		defer app.client.Close()
		return app.submit(ctx, k, opts)
	}

	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("unknown command %q", cmd)
}

type app struct {
	client *portfolio.Client
	shell  *terminalShell
	logger *slog.Logger
	out    io.Writer
}

func newApp(configPath string, verbose bool, in io.Reader, out io.Writer) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Client.Validate(); err != nil {
		return nil, err
	}

	logger := logging.Discard()
	if verbose {
		logger = logging.NewWithWriter(cfg.Env, os.Stderr)
	}
	portfolio.SetLogger(logger)
	upload.SetLogger(logger)

	client, err := portfolio.NewDefaultClient(cfg.Client)
	if err != nil {
		return nil, err
	}
	return &app{
		client: client,
		shell:  &terminalShell{in: bufio.NewReader(in), out: out},
		logger: logger,
		out:    out,
	}, nil
}

type submitOptions struct {
	id        string
	formPath  string
	photo     string
	mainPhoto string
	gallery   []string
}

func (a *app) submit(ctx context.Context, kind models.Kind, opts submitOptions) error {
	var events []forms.FileEvent
	add := func(field string, paths ...string) error {
		if len(paths) == 0 || paths[0] == "" {
			return nil
		}
		files := make([]upload.File, 0, len(paths))
		for _, p := range paths {
			f, err := upload.Open(strings.TrimSpace(p))
			if err != nil {
				return err
			}
			files = append(files, f)
		}
		events = append(events, forms.FileSelected{Field: field, Files: files})
		return nil
	}
	if err := add("photo", opts.photo); err != nil {
		return err
	}
	if err := add("mainPhoto", opts.mainPhoto); err != nil {
		return err
	}
	if err := add("gallery", opts.gallery...); err != nil {
		return err
	}

	var form []byte
	if opts.formPath != "" {
		b, err := os.ReadFile(opts.formPath)
		if err != nil {
			return err
		}
		form = b
	}

	deps := forms.Deps{
		Shell:    a.shell,
		Uploader: upload.NewClient(a.client.HTTPClient(), a.client.Token),
		Links:    a.client,
		Logger:   a.logger,
		OnProgress: func(p int) {
			fmt.Fprintf(a.out, "upload progress: %d%%\n", p)
		},
	}

	c := a.client
	switch kind {
	case models.KindUser:
		return submitForm(ctx, a, forms.NewUserController(c.Users(), deps, opts.id).Controller, form, events)
	case models.KindObjective:
		return submitForm(ctx, a, forms.NewObjectiveController(c.Objectives(), c.Objective, deps, opts.id), form, events)
	case models.KindSkill:
		return submitForm(ctx, a, forms.NewSkillController(c.Skills(), deps, opts.id), form, events)
	case models.KindProject:
		return submitForm(ctx, a, forms.NewProjectController(c.Projects(), deps, opts.id), form, events)
	case models.KindCertificate:
		return submitForm(ctx, a, forms.NewCertificateController(c.Certificates(), deps, opts.id).Controller, form, events)
	case models.KindCompetition:
		return submitForm(ctx, a, forms.NewCompetitionController(c.Competitions(), deps, opts.id).Controller, form, events)
	case models.KindExperience:
		return submitForm(ctx, a, forms.NewExperienceController(c.Experiences(), deps, opts.id), form, events)
	case models.KindInternship:
		return submitForm(ctx, a, forms.NewInternshipController(c.Internships(), deps, opts.id), form, events)
	}
	return fmt.Errorf("unknown kind %q", kind)
}

// submitForm loads the stored record, overlays the JSON values and submits.
func submitForm[F, T, In any](ctx context.Context, a *app, c *forms.Controller[F, T, In], form []byte, events []forms.FileEvent) error {
	if err := c.Load(ctx); err != nil {
		a.logger.Warn("continuing with an empty form", slog.Any("err", err))
	}
	if form != nil {
		var err error
		c.Edit(func(f *F) { err = json.Unmarshal(form, f) })
		if err != nil {
			return fmt.Errorf("decode form: %w", err)
		}
	}
	for _, ev := range events {
		if err := c.HandleFileEvent(ev); err != nil {
			return fmt.Errorf("%s form: %w", c.Kind(), err)
		}
	}
	c.WaitPreviews()

	res, err := c.Submit(ctx)
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr.Errors {
				fmt.Fprintf(a.out, "%s: %s\n", field, msg)
			}
		}
		return err
	}
	for _, f := range res.Failed() {
		fmt.Fprintf(a.out, "upload %s failed: %v\n", f.Name, f.Err)
	}
	fmt.Fprintf(a.out, "%s %s saved (%s)\n", c.Kind(), res.ID, c.Mode())
	return nil
}

// terminalShell prompts on the terminal. Navigation has no meaning here and is only logged.
type terminalShell struct {
	in  *bufio.Reader
	out io.Writer
	yes bool
}

func (s *terminalShell) Alert(message string) { fmt.Fprintln(s.out, message) }

func (s *terminalShell) Navigate(path string) {
	slog.Debug("navigate", slog.String("path", path))
}

func (s *terminalShell) Confirm(message string) bool {
	if s.yes {
		return true
	}
	fmt.Fprintf(s.out, "%s [y/N] ", message)
	answer := strings.ToLower(strings.TrimSpace(readLine(s.in)))
	return answer == "y" || answer == "yes"
}

func readLine(r io.Reader) string {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	line, _ := br.ReadString('\n')
	return line
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", format)
}
