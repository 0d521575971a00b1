package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/renderers/tui"
	"github.com/goliatone/go-heroform/pkg/submission"
)

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Add a new hero from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := buildStore(a.cfg, a.logger)
			if err != nil {
				return err
			}
			return runPrompt(cmd.Context(), cmd.OutOrStdout(), a, store, hero.NewFormState(nil))
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a stored hero from the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := buildStore(a.cfg, a.logger)
			if err != nil {
				return err
			}
			record, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load hero %s: %w", args[0], err)
			}
			return runPrompt(cmd.Context(), cmd.OutOrStdout(), a, store, hero.NewFormState(&record))
		},
	}
}

func runPrompt(ctx context.Context, out io.Writer, a *app, store submission.RecordStore, state *hero.FormState, opts ...tui.Option) error {
	controller, err := submission.New(store,
		submission.WithImageRules(a.cfg.Images.Rules()),
		submission.WithNotifier(submission.LogNotifier{Logger: a.logger}),
		submission.WithLogger(a.logger.Named("submission")),
	)
	if err != nil {
		return err
	}

	prompterOpts := append([]tui.Option{
		tui.WithPromptDriver(tui.NewSurveyDriver(out)),
		tui.WithImageRules(a.cfg.Images.Rules()),
		tui.WithLogger(a.logger.Named("tui")),
	}, opts...)
	result, err := tui.NewPrompter(prompterOpts...).Run(ctx, controller, state)
	switch {
	case errors.Is(err, tui.ErrAborted), errors.Is(err, tui.ErrGaveUp):
		a.logger.Debug("terminal form closed", zap.Error(err))
		return nil
	case err != nil:
		return err
	}
	_, err = fmt.Fprintf(out, "Stored hero %s (%s)\n", result.Record.ID, result.Record.Nickname)
	return err
}
