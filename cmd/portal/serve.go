package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portal SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each connection gets its own listing page and game host. Visits, play time
and scores are shared by every user. Use --store valkey to share analytics
between several servers.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  portal serve                           # Listen on the configured address
  portal serve --ssh :2222               # Listen on port 2222
  portal serve --host-key ./my_host_key  # Use specific host key
  portal serve --store valkey            # Analytics on the configured Valkey

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()
	rt.discardOrphan(ctx)
	rt.discardPlayerOrphans(ctx)

	sshCfg := rt.cfg.SSH
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(sshCfg, rt.deps)
	if err != nil {
		return err
	}

	fmt.Printf("Starting portal SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe(ctx)
}
