// Package main is the entry point for the hapticctl CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/haptics-runtime/ahap"
	"github.com/wippyai/haptics-runtime/api"
	"github.com/wippyai/haptics-runtime/bridge"
	"github.com/wippyai/haptics-runtime/device"
	"github.com/wippyai/haptics-runtime/device/procon"
	"github.com/wippyai/haptics-runtime/engine"
	"github.com/wippyai/haptics-runtime/feedback"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	serverPort int
	loopFor    time.Duration
	deviceName string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hapticctl",
	Short: "Play and inspect AHAP haptic patterns",
	Long: `hapticctl drives haptic patterns on an attached controller, or a
simulated device when no hardware is present.

Examples:
  hapticctl inspect tap.ahap
  hapticctl play tap.ahap
  hapticctl play rumble.ahap --loop 5s
  hapticctl feedback impact heavy
  hapticctl serve --port 8080
  hapticctl tui`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.ahap>",
	Short: "Decode a pattern and print its contents",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var playCmd = &cobra.Command{
	Use:   "play <file.ahap>",
	Short: "Play a pattern on the attached device",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback <impact|notification|selection> [style]",
	Short: "Fire a one-shot trigger",
	Long: `Fires a built-in trigger. Impact styles: light, medium, heavy, soft,
rigid. Notification kinds: success, warning, error.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFeedback,
}

var capsCmd = &cobra.Command{
	Use:   "caps",
	Short: "Report haptic hardware availability",
	RunE:  runCaps,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	RunE:  runServe,
}

var tuiCmd = &cobra.Command{
	Use:   "tui [file.ahap]",
	Short: "Launch the interactive haptic pad",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine activity")

	playCmd.Flags().DurationVar(&loopFor, "loop", 0, "Loop the pattern for this long")
	playCmd.Flags().StringVarP(&deviceName, "device", "d", "auto", "Output device (auto, procon, sim)")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(capsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func runInspect(cmd *cobra.Command, args []string) error {
	pat, err := ahap.DecodeFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Pattern: %s\n", args[0])
	fmt.Printf("Version: %g\n", pat.Version())
	fmt.Printf("Duration: %.3fs\n", pat.Duration())

	events := pat.Events()
	fmt.Printf("\nEvents: %d\n", len(events))
	for _, e := range events {
		line := fmt.Sprintf("  %.3fs  %s", e.Time, e.Type)
		if e.Duration > 0 {
			line += fmt.Sprintf("  dur=%.3fs", e.Duration)
		}
		var parts []string
		for _, p := range e.Parameters {
			parts = append(parts, fmt.Sprintf("%s=%.2f", p.ID, p.Value))
		}
		if len(parts) > 0 {
			line += "  " + strings.Join(parts, " ")
		}
		fmt.Println(line)
	}

	if params := pat.Parameters(); len(params) > 0 {
		fmt.Printf("\nDynamic parameters: %d\n", len(params))
		for _, p := range params {
			fmt.Printf("  %.3fs  %s=%.2f\n", p.Time, p.ID, p.Value)
		}
	}
	if curves := pat.Curves(); len(curves) > 0 {
		fmt.Printf("\nParameter curves: %d\n", len(curves))
		for _, c := range curves {
			fmt.Printf("  %.3fs  %s (%d points)\n", c.Time, c.ID, len(c.Points))
		}
	}
	return nil
}

func selectDevice() (device.Device, error) {
	switch strings.ToLower(deviceName) {
	case "", "auto":
		return feedback.DefaultDevice(), nil
	case "procon":
		return procon.New(), nil
	case "sim":
		return device.NewSim(), nil
	default:
		return nil, fmt.Errorf("unknown device %q", deviceName)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	pat, err := ahap.DecodeFile(args[0])
	if err != nil {
		return err
	}

	dev, err := selectDevice()
	if err != nil {
		return err
	}

	eng, err := engine.New(dev, engine.WithLogger(newLogger()))
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.Start(context.Background()); err != nil {
		return err
	}

	player, err := eng.NewPlayer(pat)
	if err != nil {
		return err
	}

	wait := time.Duration(pat.Duration() * float64(time.Second))
	if loopFor > 0 {
		if err := player.SetLoop(true, 0, 0); err != nil {
			return err
		}
		wait = loopFor
	}

	fmt.Printf("Playing %s (%.3fs)\n", args[0], pat.Duration())
	if err := player.Play(0); err != nil {
		return err
	}

	time.Sleep(wait + 100*time.Millisecond)
	return player.Stop(0)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	style := ""
	if len(args) > 1 {
		style = strings.ToLower(args[1])
	}

	switch strings.ToLower(args[0]) {
	case "impact":
		styles := map[string]feedback.ImpactStyle{
			"":       feedback.ImpactMedium,
			"light":  feedback.ImpactLight,
			"medium": feedback.ImpactMedium,
			"heavy":  feedback.ImpactHeavy,
			"soft":   feedback.ImpactSoft,
			"rigid":  feedback.ImpactRigid,
		}
		s, known := styles[style]
		if !known {
			return fmt.Errorf("unknown impact style %q", style)
		}
		feedback.Impact(s)
	case "notification":
		kinds := map[string]feedback.NotificationKind{
			"":        feedback.NotificationSuccess,
			"success": feedback.NotificationSuccess,
			"warning": feedback.NotificationWarning,
			"error":   feedback.NotificationError,
		}
		k, known := kinds[style]
		if !known {
			return fmt.Errorf("unknown notification kind %q", style)
		}
		feedback.Notification(k)
	case "selection":
		feedback.Selection()
	default:
		return fmt.Errorf("unknown trigger %q", args[0])
	}

	// Triggers are asynchronous; give the frames time to reach the device.
	time.Sleep(500 * time.Millisecond)
	return nil
}

func runCaps(cmd *cobra.Command, args []string) error {
	if feedback.Supported() {
		fmt.Println("Haptic hardware: attached")
	} else {
		fmt.Println("Haptic hardware: none (simulated device in use)")
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	b := bridge.New(bridge.WithLogger(newLogger()))
	srv, err := api.NewServer(b)
	if err != nil {
		return err
	}
	defer srv.Close()

	fmt.Printf("Serving haptics API on :%d\n", serverPort)
	return srv.Run(serverPort)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires a terminal")
	}
	file := ""
	if len(args) > 0 {
		file = args[0]
	}
	return runInteractive(file)
}
