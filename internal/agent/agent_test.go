package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelpick/reelpick/internal/filter"
)

type fakeParser struct {
	result   filter.Filter
	err      error
	lastText string
	prior    filter.Filter
}

func (f *fakeParser) ParseFilters(ctx context.Context, userText string, prior filter.Filter) (filter.Filter, error) {
	f.lastText = userText
	f.prior = prior
	if f.err != nil {
		return filter.Filter{}, f.err
	}
	return f.result, nil
}

type fakeQuestions struct {
	clarify    string
	narrow     string
	err        error
	narrowCall bool
}

func (f *fakeQuestions) ClarifyingQuestion(ctx context.Context, userText string, _ filter.Filter) (string, error) {
	return f.clarify, f.err
}

func (f *fakeQuestions) NarrowingQuestion(ctx context.Context, userText string, _ filter.Filter, total int) (string, error) {
	f.narrowCall = true
	return f.narrow, f.err
}

func newTestAgent(cat Catalog, parser FilterParser, questions QuestionProvider) *Agent {
	return New(NewSession(cat, nil), parser, questions)
}

func TestAgent_Message_EmptyInput(t *testing.T) {
	a := newTestAgent(&fakeCatalog{}, &fakeParser{}, nil)

	_, err := a.Message(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.True(t, IsUserError(err))
}

func TestAgent_Message_Help(t *testing.T) {
	a := newTestAgent(&fakeCatalog{}, &fakeParser{}, nil)

	resp, err := a.Message(context.Background(), "HELP")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, helpMessage, resp.Message)
	assert.NotNil(t, resp.Results)
}

func TestAgent_Message_Restart(t *testing.T) {
	cat := &fakeCatalog{candidates: nCandidates(7)}
	parser := &fakeParser{result: filter.Filter{Query: "space"}}
	a := newTestAgent(cat, parser, nil)

	_, err := a.Message(context.Background(), "something in space")
	require.NoError(t, err)
	require.NotEmpty(t, a.Session().Results())

	resp, err := a.Message(context.Background(), "restart")
	require.NoError(t, err)
	assert.Equal(t, restartMessage, resp.Message)
	assert.Empty(t, resp.Results)
	assert.Empty(t, a.Session().Results())
	assert.Equal(t, filter.Filter{}, a.Session().Filters())
}

func TestAgent_Message_MoreBeforeSearch(t *testing.T) {
	a := newTestAgent(&fakeCatalog{}, &fakeParser{}, nil)

	_, err := a.Message(context.Background(), "more")
	assert.ErrorIs(t, err, ErrNoSearchYet)
	assert.True(t, IsUserError(err))
}

func TestAgent_Message_MorePaginates(t *testing.T) {
	cat := &fakeCatalog{candidates: nCandidates(12)}
	parser := &fakeParser{result: filter.Filter{Query: "movies"}}
	a := newTestAgent(cat, parser, nil)

	resp, err := a.Message(context.Background(), "some movies")
	require.NoError(t, err)
	assert.Len(t, resp.Results, 5)
	assert.True(t, resp.HasMore)

	resp, err = a.Message(context.Background(), "more")
	require.NoError(t, err)
	assert.Len(t, resp.Results, 5)
	assert.Equal(t, 1, resp.Page)
	assert.True(t, resp.HasMore)

	resp, err = a.Message(context.Background(), "more")
	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
	assert.False(t, resp.HasMore)

	// Past the last page "more" keeps showing the tail.
	resp, err = a.Message(context.Background(), "more")
	require.NoError(t, err)
	assert.Equal(t, lastPageMessage, resp.Message)
	assert.Len(t, resp.Results, 2)
}

func TestAgent_Message_Details(t *testing.T) {
	cat := &fakeCatalog{candidates: nCandidates(7)}
	parser := &fakeParser{result: filter.Filter{Query: "movies"}}
	a := newTestAgent(cat, parser, nil)

	_, err := a.Message(context.Background(), "some movies")
	require.NoError(t, err)

	resp, err := a.Message(context.Background(), "details 2")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Movie 02", resp.Results[0].Title)
}

func TestAgent_Message_DetailsErrors(t *testing.T) {
	cat := &fakeCatalog{candidates: nCandidates(7)}
	parser := &fakeParser{result: filter.Filter{Query: "movies"}}
	a := newTestAgent(cat, parser, nil)

	_, err := a.Message(context.Background(), "some movies")
	require.NoError(t, err)

	_, err = a.Message(context.Background(), "details")
	assert.ErrorIs(t, err, ErrMissingDetailsIndex)

	// Page one holds five results; 6 is on the next page.
	_, err = a.Message(context.Background(), "details 6")
	assert.ErrorIs(t, err, ErrDetailsOutOfRange)

	_, err = a.Message(context.Background(), "details 0")
	assert.ErrorIs(t, err, ErrDetailsOutOfRange)

	// A failing lookup leaves the session untouched.
	assert.Len(t, a.Session().Results(), 7)
	assert.Equal(t, 0, a.Session().Page())
}

func TestAgent_Message_RefinePrefixStripped(t *testing.T) {
	cat := &fakeCatalog{candidates: nCandidates(3)}
	parser := &fakeParser{result: filter.Filter{Query: "space"}}
	a := newTestAgent(cat, parser, nil)

	_, err := a.Message(context.Background(), "refine only from the 90s")
	require.NoError(t, err)
	assert.Equal(t, "only from the 90s", parser.lastText)
}

func TestAgent_Message_ParserFailureAbortsTurn(t *testing.T) {
	cat := &fakeCatalog{candidates: nCandidates(3)}
	parser := &fakeParser{err: errors.New("llm unavailable")}
	a := newTestAgent(cat, parser, nil)

	_, err := a.Message(context.Background(), "some movies")
	require.Error(t, err)
	assert.False(t, IsUserError(err))
	assert.Empty(t, a.Session().Results())
}

func TestAgent_Message_PriorFiltersPassedToParser(t *testing.T) {
	cat := &fakeCatalog{candidates: nCandidates(3)}
	parser := &fakeParser{result: filter.Filter{Query: "space", Genres: []string{"Comedy"}}}
	a := newTestAgent(cat, parser, nil)

	_, err := a.Message(context.Background(), "a space comedy")
	require.NoError(t, err)

	_, err = a.Message(context.Background(), "more recent ones")
	require.NoError(t, err)
	assert.Equal(t, "space", parser.prior.Query)
	assert.Equal(t, []string{"Comedy"}, parser.prior.Genres)
}

func TestAgent_Message_ZeroResultsAsksClarifying(t *testing.T) {
	cat := &fakeCatalog{}
	parser := &fakeParser{result: filter.Filter{Query: "nothing"}}
	questions := &fakeQuestions{clarify: "Which decade are you thinking of?"}
	a := newTestAgent(cat, parser, questions)

	resp, err := a.Message(context.Background(), "obscure request")
	require.NoError(t, err)
	assert.Equal(t, "Which decade are you thinking of?", resp.Message)
	assert.Empty(t, resp.Results)
}

func TestAgent_Message_ZeroResultsStaticFallback(t *testing.T) {
	cat := &fakeCatalog{}
	parser := &fakeParser{result: filter.Filter{Query: "nothing"}}

	t.Run("nil provider", func(t *testing.T) {
		a := newTestAgent(cat, parser, nil)
		resp, err := a.Message(context.Background(), "obscure request")
		require.NoError(t, err)
		assert.Equal(t, staticClarifyPrompt, resp.Message)
	})

	t.Run("provider error", func(t *testing.T) {
		a := newTestAgent(cat, parser, &fakeQuestions{err: errors.New("llm down")})
		resp, err := a.Message(context.Background(), "obscure request")
		require.NoError(t, err)
		assert.Equal(t, staticClarifyPrompt, resp.Message)
	})

	t.Run("empty question", func(t *testing.T) {
		a := newTestAgent(cat, parser, &fakeQuestions{})
		resp, err := a.Message(context.Background(), "obscure request")
		require.NoError(t, err)
		assert.Equal(t, staticClarifyPrompt, resp.Message)
	})
}

func TestAgent_Message_ManyResultsAsksNarrowing(t *testing.T) {
	cat := &fakeCatalog{candidates: nCandidates(15)}
	parser := &fakeParser{result: filter.Filter{Query: "movies"}}
	questions := &fakeQuestions{narrow: "Any favorite actors?"}
	a := newTestAgent(cat, parser, questions)

	resp, err := a.Message(context.Background(), "some movies")
	require.NoError(t, err)
	assert.True(t, questions.narrowCall)
	assert.Equal(t, "Any favorite actors?", resp.Message)
	// The first page still comes back alongside the question.
	assert.Len(t, resp.Results, 5)
	assert.True(t, resp.HasMore)
}

func TestAgent_Message_ModestResultCountSkipsNarrowing(t *testing.T) {
	cat := &fakeCatalog{candidates: nCandidates(8)}
	parser := &fakeParser{result: filter.Filter{Query: "movies"}}
	questions := &fakeQuestions{narrow: "Any favorite actors?"}
	a := newTestAgent(cat, parser, questions)

	resp, err := a.Message(context.Background(), "some movies")
	require.NoError(t, err)
	assert.False(t, questions.narrowCall)
	assert.Equal(t, picksMessage, resp.Message)
}
