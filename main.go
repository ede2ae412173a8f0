package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"pic-to-github/config"
	"pic-to-github/ctxlog"
	"pic-to-github/gh"
	"pic-to-github/helpers"
)

// ErrNoImagePaths is returned when the tool is invoked without arguments.
var ErrNoImagePaths = errors.New("No image paths provided")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	logger := ctxlog.New(os.Stderr, os.Getenv(ctxlog.DebugEnv) != "")
	ctx = ctxlog.WithLogger(ctx, logger)

	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, helpers.Colorize("error:", helpers.Red), err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return ErrNoImagePaths
	}

	logger := ctxlog.FromContext(ctx)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Debug("Loaded config", "owner", cfg.Repo.Owner, "repo", cfg.Repo.Repo, "path", cfg.Repo.Path)

	client, err := gh.NewClient(cfg.Token)
	if err != nil {
		return err
	}

	uploader := gh.NewUploader(client, cfg.Repo, cfg.Committer, cfg.GithubProxy)
	bar := helpers.NewProgress(os.Stderr, len(args), showProgress(helpers.IsTerminal(os.Stdout), helpers.IsTerminal(os.Stderr)))
	return uploadAll(ctx, uploader, args, stdout, bar)
}

// showProgress enables the bar only when stderr is a terminal and stdout is
// not, so bar redraws never share a screen with the printed URLs.
func showProgress(stdoutTerminal, stderrTerminal bool) bool {
	return stderrTerminal && !stdoutTerminal
}

// uploadAll uploads images in argument order and prints one URL per line.
// It stops at the first failure.
func uploadAll(ctx context.Context, uploader *gh.Uploader, paths []string, stdout io.Writer, bar *helpers.Progress) error {
	defer bar.Finish()

	for _, imgPath := range paths {
		url, err := uploader.Upload(ctx, imgPath)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(stdout, url); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
		bar.Increment()
	}
	return nil
}
