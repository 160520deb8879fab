package httpserver

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/config"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/game"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/session"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/stats"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/store"
	"github.com/robalobadob/scorekeeper/apps/go-server/internal/words"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", RequestTimeout: 5 * time.Second, ClientOrigin: "http://localhost:5173"},
		Auth:   config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, CookieName: "table"},
		Game:   config.GameConfig{RequireValidWords: true},
		Log:    config.LogConfig{Level: "info", Format: "json"},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := testConfig()
	v := words.NewValidator(nil, zerolog.Nop())
	mgr := session.NewManager(store.NewMemoryStore(), v, zerolog.Nop(), session.Options{
		RequireValidWords: cfg.Game.RequireValidWords,
	})
	return New(cfg, mgr, zerolog.Nop())
}

func do(t *testing.T, s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createGame(t *testing.T, s *Server, pin string) createGameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/games", map[string]string{
		"player1Name": "Ada", "player2Name": "Grace", "player2Score": "5", "pin": pin,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[createGameRes](t, rec)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateGameHidesPin(t *testing.T) {
	s := newTestServer(t)
	created := createGame(t, s, "1234")
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, "Ada", created.State.Names.Player1)
	assert.Equal(t, 5, created.State.Scores.Player2)
	assert.True(t, created.State.EditLocked)

	rec := do(t, s, http.MethodGet, "/games/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pinHash")
	assert.NotContains(t, rec.Body.String(), "$2a$")

	rec = do(t, s, http.MethodGet, "/games/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMutationsRequireTableToken(t *testing.T) {
	s := newTestServer(t)
	a := createGame(t, s, "")
	b := createGame(t, s, "")

	rec := do(t, s, http.MethodPost, "/games/"+a.ID+"/switch", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/games/"+a.ID+"/switch", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/games/"+a.ID+"/switch", nil, b.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s, http.MethodPost, "/games/"+a.ID+"/switch", nil, a.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.Player2, decodeBody[stateRes](t, rec).Current)
}

func TestTableCookie(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/games", map[string]string{"player1Name": "Ada"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[createGameRes](t, rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "table", cookies[0].Name)
	assert.Equal(t, "/games/"+created.ID, cookies[0].Path)

	req := httptest.NewRequest(http.MethodPost, "/games/"+created.ID+"/undo", nil)
	req.AddCookie(cookies[0])
	out := httptest.NewRecorder()
	s.Router().ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)
}

func TestTurnFlowAndViews(t *testing.T) {
	s := newTestServer(t)
	g := createGame(t, s, "")
	base := "/games/" + g.ID

	rec := do(t, s, http.MethodPut, base+"/draft", map[string]any{"word": "quiz"}, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodPost, base+"/draft/letters/3", nil, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodPost, base+"/draft/word-multiplier", nil, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeBody[stateRes](t, rec)
	assert.Equal(t, 29, st.Suggestion.Base)
	assert.Equal(t, 78, st.Suggestion.WithBonuses) // (10+1+8+20) * 2

	rec = do(t, s, http.MethodPost, base+"/turn/words", nil, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodPost, base+"/turn/words", map[string]string{"word": "q1"}, g.Token)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = do(t, s, http.MethodPost, base+"/turn/words", map[string]string{"word": "at"}, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	st = decodeBody[stateRes](t, rec)
	assert.Equal(t, 80, st.TurnTotal)
	assert.True(t, st.CanComplete)
	assert.False(t, st.CanSwitch)
	assert.False(t, st.CanAddSingle)
	assert.False(t, st.CanUndo)

	rec = do(t, s, http.MethodDelete, base+"/turn/words/x", nil, g.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, base+"/turn/complete", nil, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	st = decodeBody[stateRes](t, rec)
	assert.Equal(t, 80, st.Scores.Player1)
	assert.Len(t, st.History, 3)
	assert.True(t, st.CanUndo)
	assert.True(t, st.CanAddSingle)
	assert.Equal(t, 1, st.UndoDepth)
	assert.Nil(t, st.Undo)

	rec = do(t, s, http.MethodGet, base+"/stats", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decodeBody[stats.Summary](t, rec)
	assert.Equal(t, 2, sum.Player1.WordsPlayed)
	assert.Equal(t, 2, sum.TotalWords)

	rec = do(t, s, http.MethodGet, base+"/timeline", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	tl := decodeBody[[]stats.Point](t, rec)
	require.Len(t, tl, 2)
	assert.Equal(t, 80, tl[1].Player1)
	assert.Equal(t, 5, tl[1].Player2)

	rec = do(t, s, http.MethodGet, base+"/export.csv", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Time", "Player", "Word", "Points"}, records[0])
	assert.Equal(t, "Ada", records[1][1])
	assert.Equal(t, "QUIZ", records[1][2])
	assert.Equal(t, "78", records[1][3])
	assert.Equal(t, "TURN TOTAL (2 words)", records[3][2])
}

func TestEditScoresAndStatus(t *testing.T) {
	s := newTestServer(t)
	g := createGame(t, s, "4321")
	base := "/games/" + g.ID

	rec := do(t, s, http.MethodPut, base+"/scores", map[string]string{"pin": "0000", "player1": "50", "player2": "60"}, g.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s, http.MethodPut, base+"/scores", map[string]string{"pin": "4321", "player1": "50", "player2": "60"}, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.Scores{Player1: 50, Player2: 60}, decodeBody[stateRes](t, rec).Scores)

	rec = do(t, s, http.MethodPut, base+"/status", map[string]string{"status": "done"}, g.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, s, http.MethodPut, base+"/status", map[string]string{"status": "final"}, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.StatusFinal, decodeBody[stateRes](t, rec).Status)

	rec = do(t, s, http.MethodPost, base+"/reset", nil, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.PhaseSetup, decodeBody[stateRes](t, rec).Phase)

	rec = do(t, s, http.MethodPost, base+"/setup", map[string]string{"player1Name": "Lin"}, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeBody[stateRes](t, rec)
	assert.Equal(t, game.PhaseActive, st.Phase)
	assert.Equal(t, "Lin", st.Names.Player1)
}

func TestSingleScoreAndUndo(t *testing.T) {
	s := newTestServer(t)
	g := createGame(t, s, "")
	base := "/games/" + g.ID

	rec := do(t, s, http.MethodPost, base+"/score", map[string]string{"word": "zap", "points": "14"}, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeBody[stateRes](t, rec)
	assert.Equal(t, 14, st.Scores.Player1)
	assert.Equal(t, game.Player2, st.Current)

	rec = do(t, s, http.MethodPost, base+"/undo", nil, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	st = decodeBody[stateRes](t, rec)
	assert.Equal(t, 0, st.Scores.Player1)
	assert.False(t, st.CanUndo)
}

func TestScorePreviewAndWords(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/score?word=quiz&letters=1,1,1,3&wordMultiplier=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[scorePreviewRes](t, rec)
	assert.Equal(t, "QUIZ", res.Word)
	assert.Equal(t, 29, res.Base)
	assert.Equal(t, 98, res.WithBonuses)

	rec = do(t, s, http.MethodGet, "/score?word=quizzed&tiles=7", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	res = decodeBody[scorePreviewRes](t, rec)
	assert.True(t, res.Multipliers.Bingo)
	assert.Equal(t, res.Base+50, res.WithBonuses)

	rec = do(t, s, http.MethodGet, "/score?word=at&letters=9,0&wordMultiplier=10", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	res = decodeBody[scorePreviewRes](t, rec)
	assert.Equal(t, []int{3, 1}, res.Multipliers.Letters)
	assert.Equal(t, 3, res.Multipliers.Word)
	assert.Equal(t, 12, res.WithBonuses) // (1*3 + 1) * 3

	rec = do(t, s, http.MethodGet, "/words/hello", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	wr := decodeBody[words.Result](t, rec)
	assert.True(t, wr.Valid)
	assert.Equal(t, words.SourceLocal, wr.Source)
}

func TestListAndDeleteGames(t *testing.T) {
	s := newTestServer(t)
	a := createGame(t, s, "")
	createGame(t, s, "")

	rec := do(t, s, http.MethodGet, "/games", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]gameListItem](t, rec), 2)

	rec = do(t, s, http.MethodDelete, "/games/"+a.ID, nil, a.Token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodGet, "/games/"+a.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLiveFeed(t *testing.T) {
	s := newTestServer(t)
	g := createGame(t, s, "")
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/games/" + g.ID + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg liveMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "state", msg.Type)
	assert.Equal(t, g.ID, msg.Payload.ID)

	rec := do(t, s, http.MethodPost, "/games/"+g.ID+"/score", map[string]string{"points": "12"}, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, 12, msg.Payload.Scores.Player1)

	_, _, err = websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/games/missing/live", nil)
	assert.Error(t, err)
}
