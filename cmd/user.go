package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/tasktracker/internal/credential"
	"github.com/jon4hz/tasktracker/internal/database"
	"github.com/mergestat/timediff"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var userCreateCmdFlags struct {
	Admin         bool
	PasswordStdin bool
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user",
	Long:  `Create a user. Admins can only be created here, the web registration always creates regular users.`,
	Example: `tasktracker user create alice
echo "s3cret" | tasktracker user create admin --admin --password-stdin`,
	Args: cobra.ExactArgs(1),
	RunE: createUser,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE:  listUsers,
}

func init() {
	userCreateCmd.Flags().BoolVar(&userCreateCmdFlags.Admin, "admin", false, "Create the user with admin rights")
	userCreateCmd.Flags().BoolVar(&userCreateCmdFlags.PasswordStdin, "password-stdin", false, "Read the password from stdin even when it is a terminal")

	userCmd.AddCommand(userCreateCmd, userListCmd)
	rootCmd.AddCommand(userCmd)
}

func createUser(cmd *cobra.Command, args []string) error {
	cfg, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close() //nolint: errcheck

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	credentials := credential.NewStore(db, credential.NewPasswordHasher(cfg.Auth.BcryptCost))
	register := credentials.Register
	if userCreateCmdFlags.Admin {
		register = credentials.RegisterAdmin
	}

	id, err := register(cmd.Context(), args[0], password)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUsername) {
			return fmt.Errorf("user %q already exists", args[0])
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created", "id", id, "username", args[0], "admin", userCreateCmdFlags.Admin)
	return nil
}

// readPassword prompts without echo on a terminal, anything else is read as a single line.
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec
	if !userCreateCmdFlags.PasswordStdin && term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	password, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(password, "\r\n"), nil
}

func listUsers(cmd *cobra.Command, _ []string) error {
	_, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close() //nolint: errcheck

	users, err := db.GetAllUsers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	counts, err := db.CountTasksByOwner(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-6s %-24s %-6s %-6s %s\n", "ID", "USERNAME", "ADMIN", "TASKS", "CREATED")
	for _, u := range users {
		fmt.Fprintf(out, "%-6d %-24s %-6t %-6d %s\n", u.ID, u.Username, u.IsAdmin, counts[u.ID], timediff.TimeDiff(u.CreatedAt))
	}
	return nil
}
