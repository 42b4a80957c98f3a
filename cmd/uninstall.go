package cmd

import (
	"fmt"
	"os"

	"github.com/jfmyers9/pctl/internal/watch"
	"github.com/spf13/cobra"
)

// uninstallCmd represents the uninstall command
var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the watcher systemd user service",
	Long: `Uninstall the pctl watcher service and stop it from running
automatically.

This command will:
  - Stop the running watcher (if any)
  - Disable the systemd user service
  - Remove the unit file from ~/.config/systemd/user/

After uninstalling, the watcher will no longer run automatically on login.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get unit path
		unitPath, err := watch.GetUnitPath()
		if err != nil {
			return fmt.Errorf("failed to get unit path: %w", err)
		}

		// Check if unit exists
		if _, err := os.Stat(unitPath); os.IsNotExist(err) {
			fmt.Println("Watcher is not installed (unit not found)")
			return nil
		}

		// Stop and disable the watcher
		fmt.Println("Stopping watcher...")
		if err := stopUnit(); err != nil {
			fmt.Printf("Warning: failed to stop watcher: %v\n", err)
			fmt.Println("Continuing with unit removal...")
		} else {
			fmt.Println("✓ Watcher stopped")
		}

		// Remove unit file
		if err := os.Remove(unitPath); err != nil {
			return fmt.Errorf("failed to remove unit file: %w", err)
		}

		fmt.Printf("✓ Removed unit from %s\n", unitPath)

		// Let systemd forget the removed unit
		if err := reloadUnits(); err != nil {
			fmt.Printf("Warning: failed to reload systemd: %v\n", err)
		}

		fmt.Println("\nThe pctl watcher has been uninstalled successfully.")
		fmt.Println("It will no longer run automatically on login.")
		fmt.Println("\nTo reinstall, run:")
		fmt.Println("  pctl install")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
