package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/fibviz/internal/driver"
	"github.com/san-kum/fibviz/internal/logging"
)

// Run drives the interactive view until the user quits or ctx ends. It
// closes drv before returning so no tick outlives the program. updates is
// left open: a stopped ticker may still be signalling it when the program
// exits.
func Run(ctx context.Context, drv *driver.Driver, log *logging.Logger) error {
	updates := make(chan struct{}, 1)
	drv.Subscribe(func(driver.State) {
		// One pending wake-up is enough; the model reads the latest state.
		select {
		case updates <- struct{}{}:
		default:
		}
	})

	p := tea.NewProgram(New(drv, updates, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()

	drv.Close()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
