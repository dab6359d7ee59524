package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/reklai/harpoon-telescope/internal/cli/model"
	"github.com/reklai/harpoon-telescope/internal/cli/styles"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

var sessionsJSON bool

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved sessions",
	Long: `View, rename and delete named sessions.

Without a subcommand this opens an interactive browser that previews what
loading each session would do to the current slots. With --json it prints
the list instead.

Sessions are saved and loaded from the extension. Names are matched
case-insensitively.`,
	Args: cobra.NoArgs,
	RunE: runSessionsBrowser,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the tabs stored in a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a saved session",
	Long: `Rename a saved session. The new name must not belong to another session.

Example:
  harpoon sessions rename work "deep work"`,
	Args: cobra.ExactArgs(2),
	RunE: runSessionsRename,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd, sessionsDeleteCmd, sessionsRenameCmd)
	sessionsCmd.PersistentFlags().BoolVar(&sessionsJSON, "json", false, "output as JSON")
}

func runSessionsBrowser(cmd *cobra.Command, args []string) error {
	if sessionsJSON {
		return runSessionsList(cmd, args)
	}
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	m := model.NewSessionsModel(app.Ctx(), app.Theme, app.Sessions)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func runSessionsList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	sessions, err := app.Sessions.ListSorted(app.Ctx())
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if sessionsJSON {
		if sessions == nil {
			sessions = entity.SessionList{}
		}
		return printJSON(sessions)
	}

	fmt.Println(styles.NewSessionsCLIRenderer(app.Theme).RenderList(sessions))
	return nil
}

func runSessionsShow(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	session, err := app.Sessions.Get(app.Ctx(), args[0])
	if err != nil {
		return fmt.Errorf("show session: %w", err)
	}
	if sessionsJSON {
		return printJSON(session)
	}

	fmt.Println(styles.NewSessionsCLIRenderer(app.Theme).RenderSession(session))
	return nil
}

func runSessionsDelete(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if err := app.Sessions.Delete(app.Ctx(), args[0]); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	fmt.Println(styles.NewSessionsCLIRenderer(app.Theme).RenderDeleted(args[0]))
	return nil
}

func runSessionsRename(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if err := app.Sessions.Rename(app.Ctx(), args[0], args[1]); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}
	fmt.Println(styles.NewSessionsCLIRenderer(app.Theme).RenderRenamed(args[0], entity.NormalizeSessionName(args[1])))
	return nil
}
