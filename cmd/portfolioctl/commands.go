package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/admin"
	"github.com/rpupo63/portfolio-site/client"
	"github.com/rpupo63/portfolio-site/tui"
	"github.com/spf13/pflag"
)

func newFlagSet(env *environment, name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}

func runLogin(ctx context.Context, env *environment, args []string) error {
	var email string
	fs := newFlagSet(env, "login")
	fs.StringVar(&email, "email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email, err := env.prompt("Email", email)
	if err != nil {
		return err
	}
	password, err := env.password()
	if err != nil {
		return err
	}

	auth, err := env.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return signedIn(env, auth)
}

func runSignup(ctx context.Context, env *environment, args []string) error {
	var name, email string
	fs := newFlagSet(env, "signup")
	fs.StringVar(&name, "name", "", "display name")
	fs.StringVar(&email, "email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	name, err := env.prompt("Name", name)
	if err != nil {
		return err
	}
	email, err = env.prompt("Email", email)
	if err != nil {
		return err
	}
	password, err := env.password()
	if err != nil {
		return err
	}

	auth, err := env.api.Signup(ctx, name, email, password)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}
	return signedIn(env, auth)
}

func signedIn(env *environment, auth client.Auth) error {
	if err := env.sess.SignIn(auth.Token, auth.User); err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "Signed in as %s\n", auth.User.Email)
	if !auth.User.CanEdit() {
		fmt.Fprintln(env.stdout, "This account cannot edit content until an admin verifies it.")
	}
	return nil
}

func runLogout(_ context.Context, env *environment, _ []string) error {
	if err := env.sess.SignOut(); err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, "Signed out")
	return nil
}

func runWhoami(ctx context.Context, env *environment, _ []string) error {
	if env.sess.Token() == "" {
		fmt.Fprintln(env.stdout, "Not signed in")
		return nil
	}
	user, err := env.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "%s <%s> admin=%t verified=%t\n", user.Name, user.Email, user.IsAdmin, user.IsVerified)
	return nil
}

func runAdmin(ctx context.Context, env *environment, _ []string) error {
	// The panel asks its own y/n question before calling Remove.
	ctrl := admin.New(env.api, env.sess, admin.WithConfirmer(func(string) bool { return true }))
	return tui.Run(ctx, ctrl, env.sess)
}

func runSeed(ctx context.Context, env *environment, _ []string) error {
	ctrl := admin.New(env.api, env.sess)
	err := ctrl.Seed(ctx)
	fmt.Fprintln(env.stdout, ctrl.Message())
	return err
}

func runUsers(ctx context.Context, env *environment, _ []string) error {
	users, err := env.api.Users(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(env.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tADMIN\tVERIFIED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\n", u.ID, u.Email, u.Name, u.IsAdmin, u.IsVerified)
	}
	return w.Flush()
}

func runVerifyAdmin(ctx context.Context, env *environment, args []string) error {
	var revoke bool
	fs := newFlagSet(env, "verify-admin")
	fs.BoolVar(&revoke, "revoke", false, "remove admin rights instead")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: portfolioctl verify-admin <user-id> [--revoke]")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", fs.Arg(0), err)
	}

	user, err := env.api.VerifyAdmin(ctx, id, !revoke)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "%s admin=%t verified=%t\n", user.Email, user.IsAdmin, user.IsVerified)
	return nil
}

func runDelete(ctx context.Context, env *environment, args []string) error {
	var yes bool
	fs := newFlagSet(env, "delete")
	fs.BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: portfolioctl delete <collection> <id>")
	}

	collection := admin.Collection(fs.Arg(0))
	known := false
	for _, c := range admin.Collections {
		known = known || c == collection
	}
	if !known {
		return fmt.Errorf("unknown collection %q", collection)
	}
	id, err := uuid.Parse(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", fs.Arg(1), err)
	}

	confirm := env.confirm
	if yes {
		confirm = func(string) bool { return true }
	}
	ctrl := admin.New(env.api, env.sess, admin.WithConfirmer(confirm))
	if err := ctrl.Remove(ctx, collection, id); err != nil {
		return err
	}
	if msg := ctrl.Message(); msg != "" {
		fmt.Fprintln(env.stdout, msg)
	} else {
		fmt.Fprintln(env.stdout, "Cancelled")
	}
	return nil
}

func runTestimonial(ctx context.Context, env *environment, args []string) error {
	var t client.TestimonialSubmission
	fs := newFlagSet(env, "testimonial")
	fs.StringVar(&t.Name, "name", "", "your name")
	fs.StringVar(&t.Role, "role", "", "your role")
	fs.StringVar(&t.Company, "company", "", "your company")
	fs.IntVar(&t.Rating, "rating", 5, "rating from 1 to 5")
	fs.StringVar(&t.Quote, "quote", "", "what you want to say")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if t.Name == "" || t.Quote == "" {
		return fmt.Errorf("--name and --quote are required")
	}

	if _, err := env.api.SubmitTestimonial(ctx, t); err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, "Thank you! Your testimonial will appear once it is approved.")
	return nil
}

func runContact(ctx context.Context, env *environment, args []string) error {
	var msg client.ContactRequest
	fs := newFlagSet(env, "contact")
	fs.StringVar(&msg.Name, "name", "", "your name")
	fs.StringVar(&msg.Email, "email", "", "your email")
	fs.StringVar(&msg.Category, "category", "", "what it is about")
	fs.StringVar(&msg.Message, "message", "", "the message")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if msg.Name == "" || msg.Email == "" {
		return fmt.Errorf("--name and --email are required")
	}

	if err := env.api.Contact(ctx, msg); err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, "Message sent")
	return nil
}
