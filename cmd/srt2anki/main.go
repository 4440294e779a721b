package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/srt2anki/internal/cli"
	"codeberg.org/snonux/srt2anki/internal/logging"
	"codeberg.org/snonux/srt2anki/internal/models"
	"codeberg.org/snonux/srt2anki/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Config file and environment fill in what the command line left out
	flags.LoadFromViper()
	if err := flags.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: flags.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(models.Config{
			OpenAIKey: cli.GetOpenAIKey(),
			GeminiKey: cli.GetGeminiKey(),
		})
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	proc, err := processor.NewProcessor(ctx, flags, logger)
	if err != nil {
		return err
	}

	outputPath, err := proc.Run(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println(outputPath)
	return nil
}
