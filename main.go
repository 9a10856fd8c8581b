package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:   "fieldpath",
		Usage:  "Draw robot waypoint paths on a field and generate motion-control code",
		Flags:  append([]cli.Flag{configFlag()}, editFlags()...),
		Action: runEditor,
		Commands: []*cli.Command{
			{
				Name:   "edit",
				Usage:  "Open the field editor (default)",
				Flags:  editFlags(),
				Action: runEditor,
			},
			{
				Name:      "code",
				Usage:     "Print the code encoded in a share link",
				ArgsUsage: "SHARE_URL",
				Action:    runCode,
			},
			{
				Name:      "share",
				Usage:     "Print a share link for a code file",
				ArgsUsage: "CODE_FILE",
				Action:    runShare,
			},
			{
				Name:      "png",
				Usage:     "Render a code file's path as a PNG image",
				ArgsUsage: "CODE_FILE OUT.png",
				Action:    runPNG,
			},
			{
				Name:   "serve",
				Usage:  "Serve the code/share conversion API",
				Action: runServe,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config file (default ~/" + defaultConfigName + ")",
		Sources: cli.EnvVars("FIELDPATH_CONFIG"),
	}
}

func editFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "code",
			Usage: "Import a code file on startup",
		},
		&cli.BoolFlag{
			Name:  "watch",
			Usage: "Re-import the code file whenever it changes",
		},
		&cli.StringFlag{
			Name:  "share",
			Usage: "Open the path encoded in a share link",
		},
	}
}

func runCode(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	link := cmd.Args().First()
	if link == "" {
		return fmt.Errorf("share link is required")
	}
	path, _, err := DecodeShareURL(link, cfg.Share.Param)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, Serialize(path))
	return err
}

func runShare(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	path, err := readCodeFile(cmd.Args().First())
	if err != nil {
		return err
	}
	link, err := ShareURL(cfg.Share.BaseURL, cfg.Share.Param, path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, link)
	return err
}

func runPNG(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("usage: fieldpath png CODE_FILE OUT.png")
	}
	path, err := readCodeFile(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	return ExportPNG(cmd.Args().Get(1), path, cfg.Field, pngExportSize)
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return runServer(ctx, cfg, logger)
}

func readCodeFile(filename string) ([]Waypoint, error) {
	if filename == "" {
		return nil, fmt.Errorf("code file is required")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read code file: %w", err)
	}
	path, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := ValidatePath(path); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return path, nil
}

// openLogFile points slog at the configured log file; the terminal belongs
// to the editor.
func openLogFile(cfg *Config) (*slog.Logger, func(), error) {
	file, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger, func() { file.Close() }, nil
}
