// ABOUTME: CLI client for the taskdeck API
// ABOUTME: Manages accounts and tasks with a persisted login session

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/passi/taskdeck/internal/api"
	"github.com/passi/taskdeck/internal/auth"
	"github.com/passi/taskdeck/internal/client"
	"github.com/passi/taskdeck/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	sess, err := session.NewStore(filepath.Join(configDir(), "session.json"))
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	c := client.New(cfg.Server.URL, sess)
	c.OnSessionExpired = newExpiredSessionHandler(sess)

	cmd := os.Args[1]
	args := os.Args[2:]

	// An expiry detected outside this process (state left behind by an
	// older build or edited by hand) blocks everything except commands
	// that start a fresh session or need none.
	if sess.Expired() && requiresSession(cmd) {
		newExpiredSessionHandler(sess)()
		os.Exit(1)
	}

	switch cmd {
	case "register":
		err = cmdRegister(ctx, c, args)
	case "login":
		err = cmdLogin(ctx, c, args)
	case "logout":
		err = cmdLogout(c)
	case "list", "ls":
		err = cmdList(ctx, c)
	case "add":
		err = cmdAdd(ctx, c, args)
	case "show":
		err = cmdShow(ctx, c, args)
	case "done":
		err = cmdDone(ctx, c, args)
	case "edit":
		err = cmdEdit(ctx, c, args)
	case "delete", "rm":
		err = cmdDelete(ctx, c, args)
	case "me":
		err = cmdMe(ctx, c)
	case "rename":
		err = cmdRename(ctx, c, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) || !isSessionCode(apiErr.Code) {
			// Session rejections already printed the expiry notice
			color.Red("Error: %v", err)
		}
		os.Exit(1)
	}
}

// requiresSession reports whether a command needs a live login session.
func requiresSession(cmd string) bool {
	switch cmd {
	case "register", "login", "logout", "help", "-h", "--help":
		return false
	}
	return true
}

func isSessionCode(code string) bool {
	switch code {
	case auth.CodeMissingToken, auth.CodeInvalidToken, auth.CodeTokenExpired:
		return true
	}
	return false
}

// newExpiredSessionHandler returns the callback run when a session expiry
// is detected. It prints the notice and clears the persisted state so the
// notice shows once per transition, not again on the next invocation.
func newExpiredSessionHandler(sess *session.Store) func() {
	return func() {
		yellow := color.New(color.FgYellow, color.Bold)
		yellow.Println("Your session has expired. Run 'taskdeck-cli login' to sign in again.")
		if err := sess.Acknowledge(); err != nil {
			color.Red("Error: %v", err)
		}
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Println("taskdeck-cli - task manager client")
	fmt.Println()
	fmt.Println("Usage: taskdeck-cli <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  register                Create an account (interactive)")
	fmt.Println("  login [email]           Sign in and store the session")
	fmt.Println("  logout                  Discard the stored session")
	fmt.Println("  list                    List your tasks")
	fmt.Println("  add <title> [desc]      Create a task")
	fmt.Println("  show <id>               Show one task")
	fmt.Println("  done <id>               Mark a task completed")
	fmt.Println("  edit <id> <title>       Rename a task")
	fmt.Println("  delete <id>             Delete a task")
	fmt.Println("  me                      Show your profile")
	fmt.Println("  rename <name>           Change your display name")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  TASKDECK_SERVER         Server URL (default: http://localhost:8080)")
	fmt.Println()
	yellow.Println("Config:")
	fmt.Printf("  %s\n", filepath.Join(configDir(), "cli.toml"))
	fmt.Println()
}

func prompt(reader *bufio.Reader, question string) string {
	fmt.Printf("%s: ", question)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		return ""
	}
	return strings.TrimSpace(input)
}

func cmdRegister(ctx context.Context, c *client.Client, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	name := prompt(reader, "Display name")
	email := prompt(reader, "Email")
	password := prompt(reader, "Password")

	if name == "" || email == "" || password == "" {
		return fmt.Errorf("name, email, and password are required")
	}

	if err := c.Register(ctx, name, email, password); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Code == api.CodeDuplicateEmail {
			return fmt.Errorf("an account with that email already exists")
		}
		return err
	}

	green := color.New(color.FgGreen)
	green.Println("  ✓ Account created")
	fmt.Println("Run 'taskdeck-cli login' to sign in.")
	return nil
}

func cmdLogin(ctx context.Context, c *client.Client, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		email = prompt(reader, "Email")
	}
	password := prompt(reader, "Password")

	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	if err := c.Login(ctx, email, password); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Code == api.CodeInvalidCredentials {
			return fmt.Errorf("invalid email or password")
		}
		return err
	}

	green := color.New(color.FgGreen)
	green.Println("  ✓ Logged in")
	return nil
}

func cmdLogout(c *client.Client) error {
	if err := c.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func cmdList(ctx context.Context, c *client.Client) error {
	tasks, err := c.ListTasks(ctx)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks. Create one with 'taskdeck-cli add <title>'.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  \tID\tTITLE\tUPDATED")
	for _, t := range tasks {
		marker := " "
		if t.Completed {
			marker = color.GreenString("✓")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, t.ID, t.Title, t.UpdatedAt)
	}
	return w.Flush()
}

func cmdAdd(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskdeck-cli add <title> [description]")
	}
	title := args[0]
	description := strings.Join(args[1:], " ")

	created, err := c.CreateTask(ctx, title, description, false)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Created task %s\n", created.ID)
	return nil
}

func cmdShow(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskdeck-cli show <id>")
	}

	t, err := c.GetTask(ctx, args[0])
	if err != nil {
		return taskError(err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Task")
	cyan.Println("  ----")
	fmt.Printf("  ID:          %s\n", t.ID)
	fmt.Printf("  Title:       %s\n", t.Title)
	if t.Description != "" {
		fmt.Printf("  Description: %s\n", t.Description)
	}
	fmt.Printf("  Completed:   %t\n", t.Completed)
	fmt.Printf("  Created:     %s\n", t.CreatedAt)
	fmt.Printf("  Updated:     %s\n", t.UpdatedAt)
	fmt.Println()
	return nil
}

func cmdDone(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskdeck-cli done <id>")
	}

	done := true
	updated, err := c.UpdateTask(ctx, args[0], api.PatchTaskRequest{Completed: &done})
	if err != nil {
		return taskError(err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Completed: %s\n", updated.Title)
	return nil
}

func cmdEdit(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: taskdeck-cli edit <id> <title>")
	}

	title := strings.Join(args[1:], " ")
	updated, err := c.UpdateTask(ctx, args[0], api.PatchTaskRequest{Title: &title})
	if err != nil {
		return taskError(err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Updated: %s\n", updated.Title)
	return nil
}

func cmdDelete(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskdeck-cli delete <id>")
	}

	if err := c.DeleteTask(ctx, args[0]); err != nil {
		return taskError(err)
	}

	fmt.Println("Task deleted.")
	return nil
}

func cmdMe(ctx context.Context, c *client.Client) error {
	profile, err := c.Me(ctx)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Profile")
	cyan.Println("  -------")
	fmt.Printf("  ID:      %s\n", profile.ID)
	fmt.Printf("  Name:    %s\n", profile.Name)
	fmt.Printf("  Email:   %s\n", profile.Email)
	fmt.Printf("  Created: %s\n", profile.CreatedAt)
	fmt.Println()
	return nil
}

func cmdRename(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskdeck-cli rename <name>")
	}

	name := strings.Join(args, " ")
	profile, err := c.UpdateMe(ctx, name)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Display name is now %s\n", profile.Name)
	return nil
}

// taskError translates structured task errors into friendly messages.
func taskError(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case api.CodeNotFound:
			return fmt.Errorf("no such task")
		case api.CodeForbidden:
			return fmt.Errorf("that task belongs to another account")
		}
	}
	return err
}
