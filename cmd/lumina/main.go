package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yanmxa/lumina/internal/log"
	"github.com/yanmxa/lumina/internal/tui"

	// Import providers for registration
	_ "github.com/yanmxa/lumina/internal/provider/anthropic"
	_ "github.com/yanmxa/lumina/internal/provider/google"
	_ "github.com/yanmxa/lumina/internal/provider/moonshot"
	_ "github.com/yanmxa/lumina/internal/provider/openai"
)

var (
	version = "0.1.0"
)

func init() {
	// Load .env file if it exists (silent fail if not found)
	_ = godotenv.Load()

	// Initialize logging (enabled via LUMINA_DEBUG=1)
	_ = log.Init()
}

func main() {
	defer log.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	imageFlag string
	styleFlag string
)

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Lumina - AI room redesign assistant",
	Long: `Lumina restyles a photo of your room and answers design questions about it.

Interactive mode:
  lumina                             Start the terminal UI
  lumina --image room.jpg            Start with a room loaded
  lumina --image room.jpg --style Boho

Non-interactive mode:
  lumina redesign room.jpg --style Coastal -o coastal.png
  lumina batch "photos/**/*.jpg" --style Modern --out redesigns
  lumina serve                       Start the web surface`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		engine, err := newEngine(ctx)
		if err != nil {
			return err
		}
		return tui.Run(ctx, engine, tui.Options{ImagePath: imageFlag, Style: styleFlag})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lumina version %s\n", version)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Room photo to load at start")
	rootCmd.Flags().StringVarP(&styleFlag, "style", "s", "", "Style to apply once the photo is loaded")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(redesignCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(stylesCmd)
	rootCmd.AddCommand(serveCmd)
}
