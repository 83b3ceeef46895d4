package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/at-ishikawa/dictlens/internal/history"
	"github.com/at-ishikawa/dictlens/internal/lookup"
	"github.com/at-ishikawa/dictlens/internal/search"
	"github.com/at-ishikawa/dictlens/internal/store"
)

var errEnd = errors.New("end")

const helpText = `Commands:
  <text>     look the text up
  :prev      go to the previous word in the history
  :next      go to the next word in the history
  :history   list the history, newest first
  :open N    show history entry N
  :word W    look up W as a new search
  :word      list the words of the annotated result
  :mode      toggle between plain and annotated definitions
  :clear     clear the history
  :dismiss   hide the privacy notice
  :quit      exit`

// Session is the interactive lookup loop. Every line is submitted like a keystroke in a search box.
type Session struct {
	kv          store.KV
	coordinator *search.Coordinator
	navigator   *history.Navigator
	terminal    *Terminal
	stdinReader *bufio.Reader
	logger      *slog.Logger
}

func NewSession(client lookup.Client, kv store.KV, stdin io.Reader, stdout io.Writer, opts search.Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	terminal := NewTerminal(stdout)
	navigator := history.NewNavigator(kv, opts.Logger)
	coordinator := search.NewCoordinator(client, terminal, navigator, opts)
	navigator.Bind(coordinator)
	navigator.OnButtonsChange(terminal.SetButtons)

	return &Session{
		kv:          kv,
		coordinator: coordinator,
		navigator:   navigator,
		terminal:    terminal,
		stdinReader: bufio.NewReader(stdin),
		logger:      opts.Logger,
	}
}

// Run reads commands until :quit, EOF or an interrupt.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()
	defer s.coordinator.Close()

	if err := s.navigator.Load(ctx); err != nil {
		return fmt.Errorf("navigator.Load > %w", err)
	}
	dismissed, err := store.NoticeDismissed(ctx, s.kv)
	if err != nil {
		s.logger.Warn("failed to read the privacy notice flag", slog.Any("error", err))
	}
	if !dismissed {
		s.terminal.ShowNotice()
	}
	s.terminal.ShowIdle()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			s.terminal.Prompt()
			line, readErr := s.stdinReader.ReadString('\n')
			if line != "" || readErr == nil {
				if err := s.handle(ctx, strings.TrimRight(line, "\r\n")); err != nil {
					if !errors.Is(err, errEnd) {
						errCh <- err
					}
					return
				}
			}
			if readErr != nil {
				if !errors.Is(readErr, io.EOF) {
					errCh <- fmt.Errorf("stdinReader.ReadString > %w", readErr)
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		s.terminal.Info("Received interrupt signal, exiting...")
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Session) handle(ctx context.Context, line string) error {
	if !strings.HasPrefix(strings.TrimSpace(line), ":") {
		s.coordinator.Submit(line, true)
		return nil
	}

	command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	switch command {
	case ":prev":
		if !s.navigator.GoPrev() {
			s.terminal.Info("There is no previous word.")
		}
	case ":next":
		if !s.navigator.GoNext() {
			s.terminal.Info("There is no next word.")
		}
	case ":history":
		s.terminal.ShowHistory(s.navigator.Snapshot())
	case ":open":
		n, err := strconv.Atoi(arg)
		if err != nil {
			s.terminal.Info("Usage: :open N")
			return nil
		}
		if err := s.navigator.Select(n - 1); err != nil {
			if errors.Is(err, history.ErrIndexOutOfRange) {
				s.terminal.Info("No history entry %d.", n)
				return nil
			}
			return fmt.Errorf("navigator.Select > %w", err)
		}
	case ":word":
		if arg == "" {
			if words := s.terminal.Words(); len(words) > 0 {
				s.terminal.Info("Words: %s", strings.Join(words, ", "))
			}
			s.terminal.Info("Usage: :word W")
			return nil
		}
		s.coordinator.SelectWord(arg)
	case ":mode":
		mode := s.coordinator.ToggleDisplayMode()
		s.terminal.Info("Display mode: %s", mode)
	case ":clear":
		if err := s.navigator.Clear(ctx); err != nil {
			s.logger.Error("failed to clear the history", slog.Any("error", err))
			s.terminal.ShowError("Failed to clear the history")
			return nil
		}
		s.terminal.Info("History cleared.")
	case ":dismiss":
		if err := store.DismissNotice(ctx, s.kv); err != nil {
			s.logger.Error("failed to dismiss the privacy notice", slog.Any("error", err))
			return nil
		}
		s.terminal.Info("Privacy notice dismissed.")
	case ":help":
		s.terminal.Info("%s", helpText)
	case ":quit", ":q":
		return errEnd
	default:
		s.terminal.Info("Unknown command %s. Type :help for the commands.", command)
	}
	return nil
}

// Wait blocks until the lookups started so far have settled.
func (s *Session) Wait() {
	s.coordinator.Wait()
}
