// Package cli is the interactive front end of the registry. It owns every
// prompt and message; the store never touches the terminal.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"userRegistry/models"
	"userRegistry/repository"
)

// Registry is the part of the user store the CLI needs.
type Registry interface {
	Initialize(ctx context.Context) error
	List(ctx context.Context) ([]models.Account, error)
	Authenticate(ctx context.Context, username, password string) (bool, error)
	Insert(ctx context.Context, username, email, password string) (repository.InsertResult, error)
}

// App runs one login-or-register session against a Registry.
type App struct {
	store      Registry
	in         *bufio.Reader
	out        io.Writer
	readSecret func(prompt string) (string, error)
}

// NewApp builds an App reading from in and writing to out.
func NewApp(store Registry, in io.Reader, out io.Writer) *App {
	reader := bufio.NewReader(in)
	return &App{
		store:      store,
		in:         reader,
		out:        out,
		readSecret: newSecretReader(in, reader, out),
	}
}

// Run initializes the store, shows the registered users, asks for a
// selection and performs it. Only storage and I/O failures are returned.
func (a *App) Run(ctx context.Context) error {
	if err := a.store.Initialize(ctx); err != nil {
		return err
	}
	if err := a.showUsers(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "1. Log in")
	fmt.Fprintln(a.out, "2. Register")
	choice, err := readLine(a.in, a.out, "Enter your choice (1/2): ")
	if err != nil {
		return fmt.Errorf("read choice: %w", err)
	}

	action := ParseChoice(choice)
	switch action.Kind {
	case ActionLogin:
		return a.login(ctx)
	case ActionRegister:
		return a.register(ctx)
	default:
		fmt.Fprintln(a.out, "Invalid input. Enter 1 to log in or 2 to register.")
		return nil
	}
}

func (a *App) showUsers(ctx context.Context) error {
	accounts, err := a.store.List(ctx)
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		fmt.Fprintf(a.out, "Username: %s, Email: %s\n", acc.Username, acc.Email)
	}
	return nil
}

func (a *App) login(ctx context.Context) error {
	username, err := readLine(a.in, a.out, "Enter username: ")
	if err != nil {
		return fmt.Errorf("read username: %w", err)
	}
	password, err := a.readSecret("Enter password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	ok, err := a.store.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(a.out, "Login successful.")
	} else {
		fmt.Fprintln(a.out, "Invalid username or password.")
	}
	return nil
}

func (a *App) register(ctx context.Context) error {
	username, err := readLine(a.in, a.out, "Enter new username: ")
	if err != nil {
		return fmt.Errorf("read username: %w", err)
	}
	email, err := readLine(a.in, a.out, "Enter email: ")
	if err != nil {
		return fmt.Errorf("read email: %w", err)
	}
	password, err := a.readSecret("Enter password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	res, err := a.store.Insert(ctx, username, email, password)
	if err != nil {
		return err
	}
	if res.OK() {
		fmt.Fprintln(a.out, "Registration successful.")
	} else {
		fmt.Fprintf(a.out, "Registration failed: %s.\n", rejectMessage(res.Reason))
	}
	return nil
}

func rejectMessage(r repository.RejectReason) string {
	switch r {
	case repository.RejectDuplicateUsername:
		return "username is already taken"
	case repository.RejectEmptyUsername:
		return "username must not be empty"
	case repository.RejectEmptyEmail:
		return "email must not be empty"
	case repository.RejectEmptyPassword:
		return "password must not be empty"
	default:
		return string(r)
	}
}
