package agent

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/reelpick/reelpick/internal/models"
)

const (
	// narrowThreshold is the full-result count above which the agent asks a
	// narrowing question while still returning the first page.
	narrowThreshold = 10

	staticClarifyPrompt = "I couldn't find anything. Could you add genre, year/range, actors, directors, or relax constraints?"
	staticNarrowPrompt  = "I found many matches. Want to narrow by sub-genre, year range, specific actors/directors, or exclude something?"
	helpMessage         = "Help: type natural language (e.g., 'lighthearted sci-fi from the 90s'). Commands: more, details N, refine ..., restart."
	restartMessage      = "Restarted. Tell me what you're in the mood for."
	picksMessage        = "Here are some picks:"
	lastPageMessage     = "No more results. You can refine your request."
)

var detailsRe = regexp.MustCompile(`details\s+(\d+)`)

// Agent processes one conversation: it owns a Session and the injected
// providers, and dispatches the small command vocabulary plus free-text
// searches. Like the Session it drives, an Agent handles one turn at a time.
type Agent struct {
	session   *Session
	parser    FilterParser
	questions QuestionProvider
	logger    *slog.Logger
}

// Response is the outcome of one user turn.
type Response struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Filters string         `json:"filters"`
	Page    int            `json:"page"`
	HasMore bool           `json:"has_more"`
	Results []models.Movie `json:"results"`
}

// New creates an Agent. questions may be nil; static prompts are used then.
func New(session *Session, parser FilterParser, questions QuestionProvider) *Agent {
	return &Agent{
		session:   session,
		parser:    parser,
		questions: questions,
		logger:    slog.Default().With("component", "agent"),
	}
}

// Session exposes the underlying session, mainly for transports that render
// results themselves.
func (a *Agent) Session() *Session {
	return a.session
}

// Message processes one user turn: a command from the fixed vocabulary
// (help, restart, more, details N, refine <text>) or free text starting a
// new or refined search. User-input problems and provider failures are both
// returned as errors; IsUserError tells them apart.
func (a *Agent) Message(ctx context.Context, text string) (Response, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Response{}, ErrEmptyInput
	}

	lower := strings.ToLower(text)
	switch {
	case lower == "help":
		return a.respond("ok", helpMessage, nil), nil

	case lower == "restart":
		a.session.Reset()
		return a.respond("ok", restartMessage, []models.Movie{}), nil

	case lower == "more":
		return a.more()

	case strings.HasPrefix(lower, "details"):
		return a.details(ctx, lower)
	}

	if strings.HasPrefix(lower, "refine ") {
		text = strings.TrimSpace(text[len("refine "):])
	}

	return a.search(ctx, text)
}

func (a *Agent) more() (Response, error) {
	if len(a.session.Results()) == 0 {
		return Response{}, ErrNoSearchYet
	}

	hadMore := a.session.HasMore()
	page := a.session.NextPage()

	message := fmt.Sprintf("Showing more results (page %d).", a.session.Page()+1)
	if !hadMore {
		message = lastPageMessage
	}
	return a.respond("ok", message, page), nil
}

func (a *Agent) details(ctx context.Context, lower string) (Response, error) {
	m := detailsRe.FindStringSubmatch(lower)
	if m == nil {
		return Response{}, ErrMissingDetailsIndex
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return Response{}, ErrMissingDetailsIndex
	}

	page := a.session.CurrentPage()
	if idx < 1 || idx > len(page) {
		return Response{}, ErrDetailsOutOfRange
	}

	movie := page[idx-1]
	if a.session.enricher != nil {
		if err := a.session.enricher.Enrich(ctx, &movie); err != nil {
			a.logger.Warn("on-demand enrichment failed", "title", movie.Title, "err", err)
		}
	}

	return a.respond("ok", "Details", []models.Movie{movie}), nil
}

func (a *Agent) search(ctx context.Context, text string) (Response, error) {
	merged, err := a.parser.ParseFilters(ctx, text, a.session.Filters())
	if err != nil {
		return Response{}, fmt.Errorf("parsing request: %w", err)
	}
	a.session.SetFilters(merged)

	if _, err := a.session.Search(ctx); err != nil {
		return Response{}, fmt.Errorf("searching movies: %w", err)
	}

	total := len(a.session.Results())
	if total == 0 {
		question := a.clarify(ctx, text)
		return a.respond("ok", question, []models.Movie{}), nil
	}

	message := picksMessage
	if total > narrowThreshold {
		message = a.narrow(ctx, text, total)
	}
	return a.respond("ok", message, a.session.CurrentPage()), nil
}

func (a *Agent) clarify(ctx context.Context, text string) string {
	if a.questions != nil {
		q, err := a.questions.ClarifyingQuestion(ctx, text, a.session.Filters())
		if err != nil {
			a.logger.Warn("clarifying question failed, using static prompt", "err", err)
		} else if q != "" {
			return q
		}
	}
	return staticClarifyPrompt
}

func (a *Agent) narrow(ctx context.Context, text string, total int) string {
	if a.questions != nil {
		q, err := a.questions.NarrowingQuestion(ctx, text, a.session.Filters(), total)
		if err != nil {
			a.logger.Warn("narrowing question failed, using static prompt", "err", err)
		} else if q != "" {
			return q
		}
	}
	return staticNarrowPrompt
}

func (a *Agent) respond(status, message string, results []models.Movie) Response {
	if results == nil {
		results = []models.Movie{}
	}
	return Response{
		Status:  status,
		Message: message,
		Filters: a.session.Filters().Describe(),
		Page:    a.session.Page(),
		HasMore: a.session.HasMore(),
		Results: results,
	}
}
