package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

func activeGame(t *testing.T) State {
	t.Helper()
	s := Setup(New("g1", t0), SetupInput{Player1Name: "Ada", Player2Name: "Grace"})
	require.Equal(t, PhaseActive, s.Phase)
	return s
}

func TestNew(t *testing.T) {
	s := New("g1", t0)
	assert.Equal(t, "g1", s.ID)
	assert.Equal(t, PhaseSetup, s.Phase)
	assert.Equal(t, Player1, s.Current)
	assert.Equal(t, 1, s.Draft.WordMultiplier)
	assert.Equal(t, t0, s.CreatedAt)
}

func TestSetup(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := Setup(New("g1", t0), SetupInput{Player1Score: "abc", Player2Score: " "})
		assert.Equal(t, Names{Player1: "Player 1", Player2: "Player 2"}, s.Names)
		assert.Equal(t, Scores{}, s.Scores)
		assert.Equal(t, PhaseActive, s.Phase)
	})

	t.Run("starting scores", func(t *testing.T) {
		s := Setup(New("g1", t0), SetupInput{
			Player1Name: "  Ada ", Player2Name: "Grace",
			Player1Score: "12", Player2Score: "30",
		})
		assert.Equal(t, Names{Player1: "Ada", Player2: "Grace"}, s.Names)
		assert.Equal(t, Scores{Player1: 12, Player2: 30}, s.Scores)
		assert.Equal(t, s.Scores, s.Starting)
	})

	t.Run("ignored once active", func(t *testing.T) {
		s := activeGame(t)
		s = AddSingleScore(s, "QUIZ", "29", t0)
		again := Setup(s, SetupInput{Player1Name: "X"})
		assert.Equal(t, s, again)
	})
}

func TestOperationsIgnoredDuringSetup(t *testing.T) {
	s := New("g1", t0)
	assert.Equal(t, s, AddSingleScore(s, "QUIZ", "29", t0))
	assert.Equal(t, s, EditScores(s, 5, 5))
	assert.Equal(t, s, SwitchTurn(s))
	assert.Equal(t, s, AddWordToTurn(s, "QUIZ", ""))
	assert.Equal(t, s, SetStatus(s, StatusFinal))
	assert.Equal(t, s, SetDraftWord(s, "QUIZ"))
}

func TestAddSingleScore_Quiz(t *testing.T) {
	s := activeGame(t)
	s = AddSingleScore(s, "quiz", "29", t0)

	assert.Equal(t, 29, s.Scores.Player1)
	assert.Equal(t, Player2, s.Current)
	require.Len(t, s.History, 1)
	assert.Equal(t, HistoryEntry{
		Player:    Player1,
		Word:      "QUIZ",
		Points:    29,
		Timestamp: "2026-03-14 19:30:00",
	}, s.History[0])
	assert.Len(t, s.Undo, 1)
}

func TestAddSingleScore_UnparseablePoints(t *testing.T) {
	s := activeGame(t)
	s = SetDraftWord(s, "ZAX")
	s = AddSingleScore(s, "ZAX", "lots", t0)
	assert.Equal(t, 0, s.Scores.Player1)
	assert.Equal(t, 0, s.History[0].Points)
	assert.Equal(t, newDraft(), s.Draft)
	assert.Equal(t, Player2, s.Current)
}

func TestUndoAfterAddSingleScore(t *testing.T) {
	before := activeGame(t)
	before = AddSingleScore(before, "AT", "2", t0)
	before = AddSingleScore(before, "QI", "11", t0)

	after := Undo(AddSingleScore(before, "QUIZ", "29", t0))
	assert.Equal(t, before, after)
}

func TestAddSingleScore_RefusedDuringTurn(t *testing.T) {
	s := activeGame(t)
	s = AddWordToTurn(s, "QUIZ", "")
	s = AddWordToTurn(s, "AT", "")
	assert.False(t, CanAddSingle(s))
	assert.Equal(t, s, AddSingleScore(s, "OX", "9", t0))

	s = CompleteTurn(s, t0)
	assert.Equal(t, Scores{Player1: 31}, s.Scores)
	assert.Equal(t, Player2, s.Current)
	for _, e := range s.History {
		assert.Equal(t, Player1, e.Player)
	}
	assert.True(t, CanAddSingle(s))
}

func TestUndo_RefusedDuringTurn(t *testing.T) {
	s := activeGame(t)
	s = AddSingleScore(s, "AT", "2", t0)
	s = AddWordToTurn(s, "QUIZ", "")
	require.Equal(t, Player2, s.Current)
	assert.False(t, CanUndo(s))
	assert.Equal(t, s, Undo(s))

	s = CompleteTurn(s, t0)
	assert.Equal(t, Scores{Player1: 2, Player2: 29}, s.Scores)
	assert.True(t, CanUndo(s))
}

func TestUndo(t *testing.T) {
	t.Run("empty stack is a no-op", func(t *testing.T) {
		s := activeGame(t)
		assert.False(t, CanUndo(s))
		assert.Equal(t, s, Undo(s))
	})

	t.Run("multi-level", func(t *testing.T) {
		s0 := activeGame(t)
		s1 := AddSingleScore(s0, "A", "1", t0)
		s2 := AddSingleScore(s1, "B", "2", t0)
		s3 := AddSingleScore(s2, "C", "3", t0)

		u := Undo(s3)
		assert.Equal(t, s2.Scores, u.Scores)
		assert.Equal(t, s2.History, u.History)
		u = Undo(u)
		assert.Equal(t, s1.Scores, u.Scores)
		u = Undo(u)
		assert.Equal(t, s0.Scores, u.Scores)
		assert.Equal(t, Player1, u.Current)
		assert.Empty(t, u.History)
		assert.False(t, CanUndo(u))
	})

	t.Run("bounded depth", func(t *testing.T) {
		s := activeGame(t)
		for n := 0; n < MaxUndo+5; n++ {
			s = AddSingleScore(s, "A", "1", t0)
		}
		assert.Len(t, s.Undo, MaxUndo)

		for n := 0; n < MaxUndo+5; n++ {
			s = Undo(s)
		}
		assert.Len(t, s.History, 5)
		assert.Equal(t, 3, s.Scores.Player1)
		assert.Equal(t, 2, s.Scores.Player2)
	})
}

func TestEditScores(t *testing.T) {
	s := activeGame(t)
	s = AddSingleScore(s, "QUIZ", "29", t0)
	edited := EditScores(s, 100, 7)

	assert.Equal(t, Scores{Player1: 100, Player2: 7}, edited.Scores)
	assert.Equal(t, s.History, edited.History)
	assert.Equal(t, s.Undo, edited.Undo)
	assert.Equal(t, s.Current, edited.Current)

	// Undo skips over the edit and restores the pre-commit snapshot.
	u := Undo(edited)
	assert.Equal(t, Scores{}, u.Scores)
}

func TestSwitchTurn(t *testing.T) {
	s := activeGame(t)
	s = SwitchTurn(s)
	assert.Equal(t, Player2, s.Current)
	s = SwitchTurn(s)
	assert.Equal(t, Player1, s.Current)

	s = AddWordToTurn(s, "CAT", "")
	assert.False(t, CanSwitch(s))
	assert.Equal(t, s, SwitchTurn(s))

	s = RemoveWordFromTurn(s, 0)
	assert.True(t, CanSwitch(s))
	assert.Equal(t, Player2, SwitchTurn(s).Current)
}

func TestReset(t *testing.T) {
	s := activeGame(t)
	s = AddSingleScore(s, "QUIZ", "29", t0)
	s = AddWordToTurn(s, "CAT", "")
	s = SetStatus(s, StatusFinal)

	r := Reset(s)
	assert.Equal(t, PhaseSetup, r.Phase)
	assert.Equal(t, StatusActive, r.Status)
	assert.Equal(t, Scores{}, r.Scores)
	assert.Equal(t, Player1, r.Current)
	assert.Nil(t, r.History)
	assert.Nil(t, r.Turn)
	assert.Nil(t, r.Undo)
	assert.Equal(t, s.ID, r.ID)

	// Play needs a fresh setup.
	assert.Equal(t, r, AddSingleScore(r, "A", "1", t0))
	assert.Equal(t, PhaseActive, Setup(r, SetupInput{}).Phase)
}

func TestSetStatus(t *testing.T) {
	s := activeGame(t)
	assert.Equal(t, StatusPaused, SetStatus(s, StatusPaused).Status)
	assert.Equal(t, StatusFinal, SetStatus(s, StatusFinal).Status)
	assert.Equal(t, s, SetStatus(s, Status("done")))
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	s := activeGame(t)
	s = AddSingleScore(s, "A", "1", t0)
	s = SetDraftWord(s, "QUIZ")
	s = CycleLetterMultiplier(s, 0)
	s = AddWordToTurn(s, "QUIZ", "")
	s = AddWordToTurn(s, "AT", "")

	historyBefore := append([]HistoryEntry(nil), s.History...)
	turnBefore := append([]WordEntry(nil), s.Turn...)

	_ = CompleteTurn(s, t0)
	_ = RemoveWordFromTurn(s, 0)
	_ = Undo(s)

	assert.Equal(t, historyBefore, s.History)
	assert.Equal(t, turnBefore, s.Turn)
}

func TestPlayerHelpers(t *testing.T) {
	assert.Equal(t, Player2, Player1.Other())
	assert.Equal(t, Player1, Player2.Other())
	assert.True(t, Player1.Valid())
	assert.False(t, Player(3).Valid())

	sc := Scores{}.Add(Player2, 5).Add(Player1, 3)
	assert.Equal(t, 3, sc.Of(Player1))
	assert.Equal(t, 5, sc.Of(Player2))

	n := Names{Player1: "Ada", Player2: "Grace"}
	assert.Equal(t, "Grace", n.Of(Player2))
}
