package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/questkit/pkg/account"
	"github.com/dmitrymomot/questkit/pkg/authstate"
	"github.com/dmitrymomot/questkit/pkg/gateway"
	"github.com/dmitrymomot/questkit/pkg/logger"
	"github.com/dmitrymomot/questkit/pkg/progression"
)

var errUsage = errors.New("usage")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string) error
}

func (a *app) commands() []command {
	return []command{
		{"login", "sign in and persist the session", a.cmdLogin},
		{"register", "create an account and sign in", a.cmdRegister},
		{"logout", "forget the stored session", a.cmdLogout},
		{"whoami", "print the signed-in user", a.cmdWhoami},
		{"profile", "update profile fields (key=value ...)", a.cmdProfile},
		{"delete-account", "delete the account and log out", a.cmdDeleteAccount},
		{"exercises", "list catalog exercises", a.cmdExercises},
		{"logs", "list recent workout logs", a.cmdLogs},
		{"rank", "print the rank for a level", a.cmdRank},
		{"board", "summarize a quest/dungeon catalog", a.cmdBoard},
		{"ping", "check the session backend", a.cmdPing},
	}
}

// Run dispatches args to a subcommand and returns the process exit code.
func (a *app) Run(ctx context.Context, args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage(a.stdout)
		if len(args) == 0 {
			return exitUsage
		}
		return exitOK
	}

	for _, c := range a.commands() {
		if c.name != args[0] {
			continue
		}
		err := c.run(ctx, args[1:])
		switch {
		case err == nil:
			return exitOK
		case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
			return exitUsage
		default:
			a.log.DebugContext(ctx, "command failed", logger.Operation(c.name), logger.Error(err))
			fmt.Fprintf(a.stderr, "%s: %s\n", c.name, userMessage(err))
			return exitError
		}
	}

	fmt.Fprintf(a.stderr, "unknown command %q\n\n", args[0])
	a.usage(a.stderr)
	return exitUsage
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, authstate.ErrNotAuthenticated):
		return "not signed in, run: questctl login"
	case errors.Is(err, authstate.ErrSessionExpired):
		return authstate.MessageSessionExpired
	case errors.Is(err, authstate.ErrPersistSession):
		return authstate.MessagePersistFailed
	}
	return gateway.Message(err)
}

func (a *app) usage(w io.Writer) {
	fmt.Fprintln(w, "usage: questctl <command> [flags] [args]")
	fmt.Fprintln(w)
	for _, c := range a.commands() {
		fmt.Fprintf(w, "  %-15s %s\n", c.name, c.summary)
	}
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		fs.Usage()
		return errUsage
	}

	if err := a.engine.Login(ctx, account.LoginCredentials{Email: *email, Password: *password}); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Signed in as %s\n", a.engine.State().User.Email)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := a.flagSet("register")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" || *name == "" {
		fs.Usage()
		return errUsage
	}

	creds := account.RegisterCredentials{Email: *email, Password: *password, Name: *name}
	if err := a.engine.Register(ctx, creds); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Welcome, %s\n", a.engine.State().User.Name)
	return nil
}

func (a *app) cmdLogout(ctx context.Context, _ []string) error {
	a.engine.Logout(ctx)
	fmt.Fprintln(a.stdout, "Signed out")
	return nil
}

func (a *app) cmdWhoami(ctx context.Context, args []string) error {
	fs := a.flagSet("whoami")
	refresh := fs.Bool("refresh", false, "fetch the full profile from the API")
	asJSON := fs.Bool("json", false, "print the user as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st := a.engine.State()
	if !st.IsAuthenticated {
		return authstate.ErrNotAuthenticated
	}
	user := *st.User
	if *refresh {
		u, err := a.engine.RefreshProfile(ctx)
		if err != nil {
			return err
		}
		user = u
	}

	if *asJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(user)
	}
	printUser(a.stdout, user)
	return nil
}

func printUser(w io.Writer, u account.User) {
	fmt.Fprintf(w, "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	if u.Age != nil {
		fmt.Fprintf(w, "  age:            %d\n", *u.Age)
	}
	if u.Gender != nil {
		fmt.Fprintf(w, "  gender:         %s\n", progression.Humanize(string(*u.Gender)))
	}
	if u.Height != nil {
		fmt.Fprintf(w, "  height:         %.1f cm\n", *u.Height)
	}
	if u.Weight != nil {
		fmt.Fprintf(w, "  weight:         %.1f kg\n", *u.Weight)
	}
	if u.FitnessGoal != nil {
		fmt.Fprintf(w, "  fitness goal:   %s\n", progression.Humanize(string(*u.FitnessGoal)))
	}
	activity := "Not set"
	if u.ActivityLevel != nil {
		activity = progression.Humanize(string(*u.ActivityLevel))
	}
	fmt.Fprintf(w, "  activity level: %s\n", activity)
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "usage: questctl profile key=value ...")
		fmt.Fprintln(a.stderr, "keys: name age gender height weight fitness_goal activity_level")
		return errUsage
	}
	values := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(a.stderr, "profile: expected key=value, got %q\n", arg)
			return errUsage
		}
		values[strings.TrimSpace(k)] = v
	}

	upd, problems := account.ParseProfileForm(values)
	for _, p := range problems {
		fmt.Fprintf(a.stderr, "warning: %s\n", p.Error())
	}
	if upd.Empty() {
		fmt.Fprintln(a.stderr, "profile: nothing to update")
		return errUsage
	}

	u, err := a.engine.SaveProfile(ctx, upd)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Profile updated")
	printUser(a.stdout, u)
	return nil
}

func (a *app) cmdDeleteAccount(ctx context.Context, args []string) error {
	fs := a.flagSet("delete-account")
	yes := fs.Bool("yes", false, "confirm deletion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes {
		fmt.Fprintln(a.stderr, "delete-account: pass -yes to confirm")
		return errUsage
	}
	if err := a.engine.DeleteAccount(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Account deleted")
	return nil
}

// apiCall runs a token-bound request outside the engine and drops the
// session when the server rejects the token.
func (a *app) apiCall(ctx context.Context, fn func(context.Context) error) error {
	if !a.engine.State().IsAuthenticated {
		return authstate.ErrNotAuthenticated
	}
	err := fn(ctx)
	if gateway.IsUnauthorized(err) {
		a.engine.Logout(ctx)
		return errors.Join(authstate.ErrSessionExpired, err)
	}
	return err
}

func (a *app) cmdExercises(ctx context.Context, args []string) error {
	fs := a.flagSet("exercises")
	category := fs.String("category", "", "filter by category")
	muscle := fs.String("muscle", "", "filter by muscle group")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var list []gateway.Exercise
	err := a.apiCall(ctx, func(ctx context.Context) (err error) {
		list, err = a.client.ListExercises(ctx, gateway.ExerciseFilter{Category: *category, MuscleGroup: *muscle})
		return err
	})
	if err != nil {
		return err
	}
	for _, ex := range list {
		fmt.Fprintf(a.stdout, "%4d  %-24s %-10s %-10s %s\n", ex.ID, ex.Name, ex.Category, ex.MuscleGroup,
			progression.Difficulty(ex.Difficulty).StarString())
	}
	return nil
}

func (a *app) cmdLogs(ctx context.Context, args []string) error {
	fs := a.flagSet("logs")
	limit := fs.Int("limit", 10, "number of logs to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var logs []gateway.WorkoutLog
	err := a.apiCall(ctx, func(ctx context.Context) (err error) {
		logs, err = a.client.ListWorkoutLogs(ctx, *limit)
		return err
	})
	if err != nil {
		return err
	}
	for _, l := range logs {
		fmt.Fprintf(a.stdout, "%s  exercise %d  %d sets x %d reps  %d kcal\n",
			l.WorkoutDate, l.ExerciseID, l.SetsCompleted, l.RepsCompleted, l.CaloriesBurned)
	}
	return nil
}

func (a *app) cmdRank(_ context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.stderr, "usage: questctl rank <level>")
		return errUsage
	}
	level, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(a.stderr, "rank: level must be an integer, got %q\n", args[0])
		return errUsage
	}

	r := progression.RankFromLevel(level)
	fmt.Fprintln(a.stdout, r.Label())
	if r < progression.RankS {
		next := r + 1
		fmt.Fprintf(a.stdout, "%s at level %d (%d to go)\n", next.Label(), next.MinLevel(), next.MinLevel()-max(level, 0))
	}
	return nil
}

func (a *app) cmdBoard(ctx context.Context, args []string) error {
	fs := a.flagSet("board")
	level := fs.Int("level", 0, "player level")
	animate := fs.Bool("animate", false, "animate the pending XP counter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: questctl board [-level N] [-animate] <catalog.yaml>")
		return errUsage
	}

	catalog, err := progression.LoadCatalog(fs.Arg(0))
	if err != nil {
		return err
	}
	b := progression.Summarize(*level, catalog)

	fmt.Fprintf(a.stdout, "Level %d  %s\n", b.Level, b.Rank.Label())
	fmt.Fprintf(a.stdout, "Quests:   %d actionable, %d completed of %d (avg progress %.0f%%)\n",
		b.QuestsActionable, b.QuestsCompleted, b.Quests, b.QuestProgress)
	fmt.Fprintf(a.stdout, "Dungeons: %d actionable, %d completed, %d blocked of %d\n",
		b.DungeonsActionable, b.DungeonsCompleted, b.DungeonsBlocked, b.Dungeons)

	for _, q := range catalog.ActionableQuests() {
		fmt.Fprintf(a.stdout, "  [%s] %-28s %-13s %3.0f%%  +%d XP\n",
			q.Rank, q.Title, q.Type.Label(), q.PercentComplete(), q.XPReward)
	}
	for _, d := range catalog.Dungeons {
		fmt.Fprintf(a.stdout, "  [%s] %-28s %-11s %-12s %s\n",
			d.Rank, d.Name, d.Type.Label(), progression.Badge(string(d.EffectiveStatus())), d.Difficulty.StarString())
	}
	if len(b.Recommended) > 0 {
		fmt.Fprintf(a.stdout, "Recommended: %s\n", strings.Join(b.Recommended, ", "))
	}

	if !*animate {
		fmt.Fprintf(a.stdout, "Pending XP: %d\n", b.PendingXP)
		return nil
	}
	animator := progression.NewAnimator(progression.WithAnimatorLogger(a.log))
	defer animator.Close()
	done := animator.Start(ctx, "pending-xp", b.PendingXP, func(v int) {
		fmt.Fprintf(a.stdout, "\rPending XP: %d", v)
	})
	<-done
	fmt.Fprintln(a.stdout)
	return nil
}

func (a *app) cmdPing(ctx context.Context, _ []string) error {
	if a.health == nil {
		fmt.Fprintln(a.stdout, "ok")
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.health(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "ok")
	return nil
}
