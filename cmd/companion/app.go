package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/KirkDiggler/dnd-companion/internal/domain/account"
	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/services"
	charService "github.com/KirkDiggler/dnd-companion/internal/services/character"
	"github.com/KirkDiggler/dnd-companion/internal/services/session"
)

// passwordEnv lets scripts pass a password without it showing in ps
const passwordEnv = "COMPANION_PASSWORD"

const usage = `usage: companion <command> [flags]

commands:
  login -email EMAIL [-password PASSWORD]
  register -name NAME -email EMAIL [-password PASSWORD] -accept-terms
  verify -token TOKEN
  logout
  whoami
  characters
  sheet CHARACTER_ID
  create -file CHARACTER.json [-fixed-hp N]
  update -file CHARACTER.json [-fixed-hp N] [-recalculate-hp] CHARACTER_ID
  classes [-search TERM]
  profiles
`

type app struct {
	provider *services.Provider
	out      io.Writer
	getenv   func(string) string
	readFile func(string) ([]byte, error)
}

func newApp(provider *services.Provider, out io.Writer) *app {
	return &app{provider: provider, out: out, getenv: os.Getenv, readFile: os.ReadFile}
}

// run dispatches one command. Errors are returned for main to print.
func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return dnderr.InvalidArgument("a command is required")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "verify":
		return a.verify(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "characters":
		return a.characters(ctx)
	case "sheet":
		return a.sheet(ctx, rest)
	case "create":
		return a.create(ctx, rest)
	case "update":
		return a.update(ctx, rest)
	case "classes":
		return a.classes(ctx, rest)
	case "profiles":
		return a.profiles(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return dnderr.InvalidArgumentf("unknown command %q", cmd)
	}
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) password(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return a.getenv(passwordEnv)
}

// restore loads the persisted login before commands that need one
func (a *app) restore(ctx context.Context) error {
	state, err := a.provider.SessionService.Init(ctx)
	if err != nil {
		return err
	}
	if state != session.StateAuthenticated {
		return dnderr.Unauthenticated("not logged in, run `companion login` first")
	}
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (or "+passwordEnv+")")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.provider.SessionService.Login(ctx, &account.LoginInput{
		Email:    *email,
		Password: a.password(*password),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (or "+passwordEnv+")")
	acceptTerms := fs.Bool("accept-terms", false, "accept the terms of service")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pw := a.password(*password)
	resp, err := a.provider.SessionService.Register(ctx, &account.RegisterInput{
		Name:            *name,
		Email:           *email,
		Password:        pw,
		ConfirmPassword: pw,
		AcceptTerms:     *acceptTerms,
	})
	if err != nil {
		return err
	}

	if resp.Message != "" {
		fmt.Fprintln(a.out, resp.Message)
	}
	fmt.Fprintf(a.out, "Check %s for a verification link, then run `companion verify -token TOKEN`\n", *email)
	return nil
}

func (a *app) verify(ctx context.Context, args []string) error {
	fs := a.newFlagSet("verify")
	token := fs.String("token", "", "token from the verification email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := a.provider.SessionService.VerifyEmail(ctx, *token)
	if err != nil {
		return err
	}

	if msg == "" {
		msg = "Email verified"
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	// Restore so the remote logout carries the token; local state is cleared either way
	_, _ = a.provider.SessionService.Init(ctx)
	if err := a.provider.SessionService.Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if err := a.restore(ctx); err != nil {
		return err
	}

	user := a.provider.SessionService.User()
	if user == nil {
		return dnderr.Internal("session has no user")
	}

	fmt.Fprintf(a.out, "%s <%s> (%s)\n", user.Name, user.Email, user.ID)
	return nil
}

func (a *app) characters(ctx context.Context) error {
	if err := a.restore(ctx); err != nil {
		return err
	}

	dashboard, err := a.provider.CharacterService.Dashboard(ctx)
	if err != nil {
		return err
	}

	if len(dashboard.Characters) == 0 {
		fmt.Fprintln(a.out, "No characters yet")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCLASS\tLEVEL\tHP\tAC\tHEALTH")
	for _, c := range dashboard.Characters {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d/%d\t%d\t%s\n",
			c.ID, c.Name, c.ClassName, c.Level, c.CurrentHP, c.MaxHP, c.ArmorClass, c.Health)
	}
	return w.Flush()
}

func (a *app) sheet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return dnderr.InvalidArgument("usage: companion sheet CHARACTER_ID")
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	sheet, err := a.provider.CharacterService.Sheet(ctx, args[0])
	if err != nil {
		return err
	}

	char := sheet.Character
	fmt.Fprintf(a.out, "%s - Level %d %s %s\n", char.Name, char.Level, char.Specie.Name, char.Class.Name)
	fmt.Fprintf(a.out, "HP %d/%d  AC %d  Initiative %+d  Proficiency %+d\n\n",
		char.HP.Current, sheet.MaxHP, sheet.ArmorClass, sheet.Initiative, sheet.ProficiencyBonus)

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, ability := range sheet.Abilities {
		save := ""
		if ability.SavingThrow {
			save = "save"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			ability.Attribute.Short(), ability.Score, ability.Formatted, ability.Tier, save)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(a.out)

	w = tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, skill := range sheet.Skills {
		marker := " "
		if skill.Proficient {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\t%+d\n", marker, skill.Skill.DisplayName(), skill.Ability.Short(), skill.Bonus)
	}
	return w.Flush()
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := a.newFlagSet("create")
	file := fs.String("file", "", "character JSON as served by the API")
	fixedHP := fs.Int("fixed-hp", 0, "maximum hit points instead of the class formula")
	if err := fs.Parse(args); err != nil {
		return err
	}

	char, err := a.loadCharacter(*file)
	if err != nil {
		return err
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	created, err := a.provider.CharacterService.Create(ctx, &charService.CreateInput{
		Character: char,
		FixedHP:   *fixedHP,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created %s (%s)  HP %d/%d  AC %d\n",
		created.Name, created.ID, created.HP.Current, created.HP.Max, created.ArmorClass)
	return nil
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := a.newFlagSet("update")
	file := fs.String("file", "", "character JSON as served by the API")
	fixedHP := fs.Int("fixed-hp", 0, "new maximum hit points")
	recalculate := fs.Bool("recalculate-hp", false, "replace the stored maximum with the class formula")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return dnderr.InvalidArgument("usage: companion update -file CHARACTER.json CHARACTER_ID")
	}

	char, err := a.loadCharacter(*file)
	if err != nil {
		return err
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	updated, err := a.provider.CharacterService.Update(ctx, fs.Arg(0), &charService.UpdateInput{
		Character:     char,
		FixedHP:       *fixedHP,
		RecalculateHP: *recalculate,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Updated %s (%s)  HP %d/%d  AC %d\n",
		updated.Name, updated.ID, updated.HP.Current, updated.HP.Max, updated.ArmorClass)
	return nil
}

func (a *app) loadCharacter(path string) (*character.Character, error) {
	if path == "" {
		return nil, dnderr.InvalidArgument("-file is required").WithMeta("field", "file")
	}

	raw, err := a.readFile(path)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "failed to read character file").
			WithMeta("path", path)
	}

	var char character.Character
	if err := json.Unmarshal(raw, &char); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "character file is not valid JSON").
			WithMeta("path", path)
	}
	return &char, nil
}

func (a *app) classes(ctx context.Context, args []string) error {
	fs := a.newFlagSet("classes")
	search := fs.String("search", "", "filter by name or description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	classes, err := a.provider.ClassesService.Search(ctx, *search)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLASS\tHIT DIE\tPRIMARY")
	for _, class := range classes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", class.Name, class.HitDieLabel(), class.GetPrimaryAbility())
	}
	return w.Flush()
}

func (a *app) profiles(ctx context.Context) error {
	profiles, err := a.provider.TokenRepository.ListProfiles(ctx)
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		fmt.Fprintln(a.out, "No saved logins")
		return nil
	}
	fmt.Fprintln(a.out, strings.Join(profiles, "\n"))
	return nil
}
