// Package session owns one interactive shell: its current directory, the
// line being typed, and the guarantee that only one command runs at a time.
package session

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/chmouel/gitbash/internal/log"
	"github.com/chmouel/gitbash/internal/models"
	"github.com/chmouel/gitbash/internal/paths"
	"github.com/chmouel/gitbash/internal/repo"
	"github.com/chmouel/gitbash/internal/shell"
	"github.com/chmouel/gitbash/internal/term"
	"github.com/chmouel/gitbash/internal/theme"
	"github.com/chmouel/gitbash/internal/vfs"
)

// DefaultWelcome is written by Start.
const DefaultWelcome = "Welcome to Git Bash"

const eraseChar = "\b \b"

// Options configures a Session.
type Options struct {
	Store     vfs.Store
	History   shell.HistoryReader
	Out       term.Display
	Home      string
	User      string
	Host      string
	Welcome   string
	ShowIcons bool
	// Submitted sees every non-blank line before it runs. Front ends use it
	// to record history.
	Submitted func(line string)
}

// Status is a snapshot of what the front end shows next to the prompt.
type Status struct {
	Cwd    string
	IsRepo bool
	Staged int
}

// Session is a single shell. All methods are safe for concurrent use;
// commands are serialized.
type Session struct {
	run sync.Mutex // held while a key or line is processed

	mu     sync.Mutex
	cwd    string
	buffer string
	closed bool
	status Status

	id         string
	opts       Options
	repos      *repo.Registry
	dispatcher *shell.Dispatcher
	env        *shell.Env
	log        log.Logger
}

// New returns a session positioned at opts.Home.
func New(opts Options) *Session {
	if opts.Home == "" {
		opts.Home = paths.Root
	}
	opts.Home = paths.Clean(opts.Home)
	if opts.User == "" {
		opts.User = "user"
	}
	if opts.Host == "" {
		opts.Host = "winsim"
	}
	if opts.Welcome == "" {
		opts.Welcome = DefaultWelcome
	}

	id := uuid.New().String()
	s := &Session{
		cwd:        opts.Home,
		id:         id,
		opts:       opts,
		repos:      repo.NewRegistry(),
		dispatcher: shell.NewDispatcher(),
		log:        log.For("session=" + id[:8]),
	}
	s.status = Status{Cwd: s.cwd}
	s.env = &shell.Env{
		Store:     opts.Store,
		Repos:     s.repos,
		History:   opts.History,
		Out:       opts.Out,
		Dir:       s,
		Home:      opts.Home,
		ShowIcons: opts.ShowIcons,
		Exit:      s.markClosed,
		Log:       s.log,
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Cwd returns the current directory.
func (s *Session) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cwd
}

// SetCwd moves the session. Only `cd` calls it.
func (s *Session) SetCwd(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cwd = paths.Clean(dir)
}

// Buffer returns the line typed so far.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// Closed reports whether `exit` ran.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Status returns the snapshot taken after the last command.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Prompt renders user@host:<cwd>$ with the home prefix shown as "~".
func (s *Session) Prompt() string {
	cwd := paths.Abbreviate(s.Cwd(), s.opts.Home)
	return theme.Paint(theme.RolePromptUser, s.opts.User+"@"+s.opts.Host) + ":" +
		theme.Paint(theme.RolePromptPath, cwd) + "$ "
}

// Start writes the welcome banner and the first prompt.
func (s *Session) Start() {
	s.run.Lock()
	defer s.run.Unlock()
	s.opts.Out.Writeln(s.opts.Welcome)
	s.opts.Out.Write(s.Prompt())
	s.log.Printf("started at %s", s.Cwd())
}

// Greet writes only the welcome banner, for front ends that draw their own
// prompt.
func (s *Session) Greet() {
	s.run.Lock()
	defer s.run.Unlock()
	s.opts.Out.Writeln(s.opts.Welcome)
	s.log.Printf("started at %s", s.Cwd())
}

// HandleKey applies one key event. Enter runs the buffered line to
// completion before returning. Keys are ignored once the session is closed.
func (s *Session) HandleKey(ctx context.Context, key models.Key) {
	s.run.Lock()
	defer s.run.Unlock()

	if s.Closed() {
		return
	}

	switch key.Type {
	case models.KeyRune:
		s.mu.Lock()
		s.buffer += string(key.Rune)
		s.mu.Unlock()
		s.opts.Out.Write(string(key.Rune))
	case models.KeyBackspace:
		s.mu.Lock()
		removed := dropLastGrapheme(&s.buffer)
		s.mu.Unlock()
		if removed != "" {
			// The echo wrote one cell per rune.
			s.opts.Out.Write(strings.Repeat(eraseChar, utf8.RuneCountInString(removed)))
		}
	case models.KeyEnter:
		s.mu.Lock()
		line := s.buffer
		s.buffer = ""
		s.mu.Unlock()
		s.opts.Out.Write("\r\n")
		s.exec(ctx, line)
		if !s.Closed() {
			s.opts.Out.Write(s.Prompt())
		}
	}
}

// Exec runs line without echo or prompt.
func (s *Session) Exec(ctx context.Context, line string) {
	s.run.Lock()
	defer s.run.Unlock()
	if s.Closed() {
		return
	}
	s.exec(ctx, line)
}

func (s *Session) exec(ctx context.Context, line string) {
	if strings.TrimSpace(line) != "" {
		s.log.Printf("exec %q in %s", line, s.Cwd())
		if s.opts.Submitted != nil {
			s.opts.Submitted(line)
		}
	}
	s.dispatcher.Dispatch(ctx, s.env, line)

	cwd := s.Cwd()
	st, ok := s.repos.State(cwd)
	s.mu.Lock()
	s.status = Status{Cwd: cwd, IsRepo: ok && st.Initialized, Staged: len(st.Staged)}
	s.mu.Unlock()
}

func (s *Session) markClosed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.log.Printf("exit requested")
}

// dropLastGrapheme removes the last user-perceived character of *buf and
// returns it.
func dropLastGrapheme(buf *string) string {
	if *buf == "" {
		return ""
	}
	last := 0
	g := uniseg.NewGraphemes(*buf)
	for g.Next() {
		last, _ = g.Positions()
	}
	removed := (*buf)[last:]
	*buf = (*buf)[:last]
	return removed
}
