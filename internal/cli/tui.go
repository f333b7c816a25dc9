package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/j-veylop/stopwatch-tui/internal/app"
	"github.com/j-veylop/stopwatch-tui/internal/config"
	"github.com/j-veylop/stopwatch-tui/internal/logger"
	"github.com/j-veylop/stopwatch-tui/internal/services"
	"github.com/j-veylop/stopwatch-tui/internal/stopwatch"
	"github.com/j-veylop/stopwatch-tui/internal/ui/tabs/history"
	"github.com/j-veylop/stopwatch-tui/internal/ui/tabs/info"
	swtab "github.com/j-veylop/stopwatch-tui/internal/ui/tabs/stopwatch"
)

// runTUI runs the interactive stopwatch until the user quits or a signal
// arrives. Time still on the stopwatch is saved on the way out.
func runTUI(out io.Writer, cfg *config.Config) error {
	logCloser, err := logger.Init(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer logCloser.Close()

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	state := app.NewState(stopwatch.New(stopwatch.MonotonicClock{}), cfg)
	model := app.NewModel(svcManager, state)
	model.SetTabs([]app.Tab{
		swtab.New(state),
		history.New(state, svcManager),
		info.New(state),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	logger.Info("stopwatch started", "database", cfg.DatabasePath)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	session, err := model.Finish()
	if err != nil {
		return fmt.Errorf("failed to save the running session: %w", err)
	}
	if session != nil {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(out, "%s Saved %s (%s)\n", green("✓"), stopwatch.Format(session.Elapsed), session.ID)
	}

	return nil
}
