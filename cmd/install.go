package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jfmyers9/pctl/internal/watch"
	"github.com/spf13/cobra"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the watcher as a systemd user service",
	Long: `Install the pctl watcher as a systemd user service that runs
automatically on login.

This command will:
  - Generate a systemd unit file for the pctl watcher
  - Install it to ~/.config/systemd/user/
  - Reload the systemd user daemon
  - Enable and start the service

The watcher will run in the background, record your listening
history, and publish Discord Rich Presence when enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get the path to the current executable
		binaryPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get executable path: %w", err)
		}

		// Resolve symlinks to get the actual binary path
		binaryPath, err = filepath.EvalSymlinks(binaryPath)
		if err != nil {
			return fmt.Errorf("failed to resolve executable path: %w", err)
		}

		// Get the log path
		logPath, err := watch.GetDefaultLogPath()
		if err != nil {
			return fmt.Errorf("failed to get log path: %w", err)
		}

		// Create log directory if it doesn't exist
		if err := os.MkdirAll(logPath, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		// Get home directory for working directory
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Generate unit file
		config := watch.UnitConfig{
			BinaryPath:       binaryPath,
			LogPath:          logPath,
			WorkingDirectory: home,
		}

		unitContent, err := watch.GenerateUnit(config)
		if err != nil {
			return fmt.Errorf("failed to generate unit: %w", err)
		}

		// Get unit path
		unitPath, err := watch.GetUnitPath()
		if err != nil {
			return fmt.Errorf("failed to get unit path: %w", err)
		}

		// Create systemd user directory if it doesn't exist
		unitDir := filepath.Dir(unitPath)
		if err := os.MkdirAll(unitDir, 0755); err != nil {
			return fmt.Errorf("failed to create systemd user directory: %w", err)
		}

		// Check if unit already exists
		if _, err := os.Stat(unitPath); err == nil {
			fmt.Println("Watcher is already installed. Stopping it first...")
			if err := stopUnit(); err != nil {
				fmt.Printf("Warning: failed to stop existing watcher: %v\n", err)
			}
		}

		// Write unit file
		if err := os.WriteFile(unitPath, []byte(unitContent), 0644); err != nil {
			return fmt.Errorf("failed to write unit file: %w", err)
		}

		fmt.Printf("✓ Installed unit to %s\n", unitPath)

		// Pick up the new unit and start it
		if err := reloadUnits(); err != nil {
			return fmt.Errorf("failed to reload systemd: %w", err)
		}
		if err := startUnit(); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}

		fmt.Println("✓ Watcher enabled and started successfully")
		fmt.Printf("✓ Logs will be written to %s\n", logPath)
		fmt.Println("\nThe pctl watcher is now running and will start automatically on login.")
		fmt.Println("\nYou can check the watcher status with:")
		fmt.Println("  systemctl --user status pctl.service")
		fmt.Println("\nTo uninstall, run:")
		fmt.Println("  pctl uninstall")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}

// reloadUnits makes systemd pick up unit file changes
func reloadUnits() error {
	cmd := exec.Command("systemctl", "--user", "daemon-reload")
	output, err := cmd.CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			return fmt.Errorf("systemctl daemon-reload failed: %s", strings.TrimSpace(string(output)))
		}
		return fmt.Errorf("failed to run systemctl daemon-reload: %w", err)
	}

	return nil
}

// startUnit enables and starts the watcher unit
func startUnit() error {
	cmd := exec.Command("systemctl", "--user", "enable", "--now", "pctl.service")
	output, err := cmd.CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			return fmt.Errorf("systemctl enable failed: %s", strings.TrimSpace(string(output)))
		}
		return fmt.Errorf("failed to run systemctl enable: %w", err)
	}

	return nil
}

// stopUnit disables and stops the watcher unit
func stopUnit() error {
	cmd := exec.Command("systemctl", "--user", "disable", "--now", "pctl.service")
	output, err := cmd.CombinedOutput()
	if err != nil {
		// Disable fails when the unit was never enabled, which is OK
		if len(output) > 0 {
			fmt.Printf("Warning: %s\n", strings.TrimSpace(string(output)))
			return nil
		}
		return fmt.Errorf("failed to run systemctl disable: %w", err)
	}

	return nil
}
