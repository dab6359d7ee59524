package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/reklai/harpoon-telescope/internal/cli/styles"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

var slotsJSON bool

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Inspect and edit pinned slots",
	Long: `Show the pinned slot list as last saved by the daemon.

Closed entries keep their slot and are reopened by the extension when you
jump to them.`,
	Args: cobra.NoArgs,
	RunE: runSlotsList,
}

var slotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pinned slots",
	Args:  cobra.NoArgs,
	RunE:  runSlotsList,
}

var slotsRemoveCmd = &cobra.Command{
	Use:   "remove <slot>",
	Short: "Unpin a slot",
	Long: `Remove the entry at the given 1-based slot. Later slots move up.

Example:
  harpoon slots remove 2`,
	Args: cobra.ExactArgs(1),
	RunE: runSlotsRemove,
}

var slotsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Unpin every slot",
	Args:  cobra.NoArgs,
	RunE:  runSlotsClear,
}

func init() {
	rootCmd.AddCommand(slotsCmd)
	slotsCmd.AddCommand(slotsListCmd, slotsRemoveCmd, slotsClearCmd)
	slotsCmd.PersistentFlags().BoolVar(&slotsJSON, "json", false, "output as JSON")
}

func runSlotsList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	slots, err := app.Slots.Slots(app.Ctx())
	if err != nil {
		return fmt.Errorf("load slots: %w", err)
	}
	if slotsJSON {
		if slots == nil {
			slots = entity.SlotList{}
		}
		return printJSON(slots)
	}

	renderer := styles.NewSlotsCLIRenderer(app.Theme)
	fmt.Println(renderer.RenderList(slots))
	if len(slots) > 0 {
		if at, ok, err := app.SlotsSavedAt(); err == nil && ok {
			fmt.Println()
			fmt.Println(renderer.RenderSavedAt(at))
		}
	}
	return nil
}

func runSlotsRemove(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewSlotsCLIRenderer(app.Theme)

	n, err := parseSlot(args[0])
	if err != nil {
		return err
	}
	removed, err := app.Slots.RemoveSlot(app.Ctx(), n)
	if err != nil {
		return fmt.Errorf("remove slot: %w", err)
	}
	if !removed {
		fmt.Println(renderer.RenderError(fmt.Errorf("slot %d is empty", n)))
		return nil
	}
	fmt.Println(renderer.RenderRemoved(n))
	return nil
}

func runSlotsClear(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if err := app.Slots.Clear(app.Ctx()); err != nil {
		return fmt.Errorf("clear slots: %w", err)
	}
	fmt.Println(styles.NewSlotsCLIRenderer(app.Theme).RenderCleared())
	return nil
}

func parseSlot(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > entity.MaxSlots {
		return 0, fmt.Errorf("slot must be a number from 1 to %d, got %q", entity.MaxSlots, arg)
	}
	return n, nil
}
