package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/simplevi/internal/config"
	"github.com/willibrandon/simplevi/internal/editor"
	"github.com/willibrandon/simplevi/internal/logger"
	"github.com/willibrandon/simplevi/internal/terminal"
	"github.com/willibrandon/simplevi/internal/textbuf"
)

var errNotATerminal = errors.New("not a terminal")

// runEditor starts the editor on the controlling terminal. The terminal
// state is put back however the program ends.
func runEditor(scrollFlagSet bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}
	if scrollFlagSet {
		cfg.Editor.ScrollOnLeft = scrollOnLeft
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if cfg.Debug {
		level = logger.LevelDebug
	}
	if err := logger.InitLogger(level, cfg.Log.File); err != nil {
		return err
	}
	defer logger.Close()

	in, out := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	if !terminal.IsTerminal(in) || !terminal.IsTerminal(out) {
		return errNotATerminal
	}

	session, err := terminal.Acquire(in)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Restore(); err != nil {
			logger.Error("terminal restore failed", "error", err)
		}
	}()

	rows, cols, err := terminal.Size(out)
	if err != nil {
		logger.Warn("terminal size unavailable, using default", "rows", rows, "cols", cols, "error", err)
	}

	ttyErase, err := terminal.EraseChar(in)
	if err != nil {
		logger.Debug("erase character unavailable, using DEL", "error", err)
	}
	opts, err := editorOptions(cfg, ttyErase, rows, cols)
	if err != nil {
		return err
	}

	logger.Info("editor starting",
		"version", version,
		"config", cfg.File,
		"rows", rows,
		"cols", cols,
		"max_lines", cfg.Editor.MaxLines,
		"capacity", cfg.Editor.Capacity,
	)

	p := tea.NewProgram(editor.New(opts...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run editor: %w", err)
	}
	logger.Info("editor exited")
	return nil
}

// editorOptions turns the configuration into editor options. ttyErase is
// used unless the config names an erase character.
func editorOptions(cfg *config.Config, ttyErase rune, rows, cols int) ([]editor.Option, error) {
	erase, auto, err := cfg.Editor.EraseRune()
	if err != nil {
		return nil, err
	}
	if auto {
		erase = ttyErase
	}

	return []editor.Option{
		editor.WithLimits(textbuf.Limits{
			MaxLines:  cfg.Editor.MaxLines,
			Capacity:  cfg.Editor.Capacity,
			EraseChar: erase,
		}),
		editor.WithSize(rows, cols),
		editor.WithScrollOnLeft(cfg.Editor.ScrollOnLeft),
		editor.WithShowTildes(cfg.Editor.ShowTildes),
		editor.WithDebug(cfg.Debug),
	}, nil
}
