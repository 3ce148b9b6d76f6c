package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/Akhileshvankayala/quiz-for-IP/internal/bank"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/models"
)

// correctAnswers lists the correct option of each built-in question
var correctAnswers = []int{2, 1, 0, 1, 0, 1, 1, 2, 2, 1}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewEngine(bank.Default(), opts...), clock
}

func checkInvariants(t *testing.T, e *Engine) {
	t.Helper()
	s, ok := e.Results()
	if !ok {
		return
	}
	if s.CorrectAnswers > s.CurrentQuestionIndex || s.CurrentQuestionIndex > s.TotalQuestions || s.CurrentQuestionIndex < 0 {
		t.Fatalf("invariant broken: correct=%d index=%d total=%d", s.CorrectAnswers, s.CurrentQuestionIndex, s.TotalQuestions)
	}
	if s.Completed != (s.CurrentQuestionIndex == s.TotalQuestions) {
		t.Fatalf("completed=%v but index=%d total=%d", s.Completed, s.CurrentQuestionIndex, s.TotalQuestions)
	}
}

func TestNoSession(t *testing.T) {
	e, _ := newTestEngine(t)

	if e.State() != models.StateNotStarted {
		t.Errorf("expected not_started, got %s", e.State())
	}
	if _, err := e.CurrentQuestion(); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("expected ErrNoActiveQuestion, got %v", err)
	}
	if _, err := e.SubmitAnswer(0, 100); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("expected ErrNoActiveQuestion, got %v", err)
	}
	if _, ok := e.Results(); ok {
		t.Error("expected no results without a session")
	}
	if _, ok := e.Snapshot(); ok {
		t.Error("expected no snapshot without a session")
	}
	if len(e.AllAnswers()) != 0 {
		t.Error("expected no answers without a session")
	}
	if _, ok, err := e.UndoLast(); ok || err != nil {
		t.Errorf("expected no-op undo, got ok=%v err=%v", ok, err)
	}
}

func TestStartResetsState(t *testing.T) {
	e, _ := newTestEngine(t)

	first := e.Start("Ada")
	if first.PlayerName != "Ada" || first.TotalQuestions != 10 || first.CurrentQuestionIndex != 0 {
		t.Fatalf("unexpected session %+v", first)
	}

	for i := 0; i < 3; i++ {
		if _, err := e.SubmitAnswer(correctAnswers[i], 1000); err != nil {
			t.Fatal(err)
		}
	}

	second := e.Start("")
	if second.ID == first.ID {
		t.Error("expected a new session id")
	}
	if second.PlayerName != models.DefaultPlayerName {
		t.Errorf("expected default player name, got %q", second.PlayerName)
	}
	if second.CurrentQuestionIndex != 0 || second.Score != 0 {
		t.Errorf("new session carries state: %+v", second)
	}
	if len(e.AllAnswers()) != 0 {
		t.Errorf("history not cleared on start: %d answers", len(e.AllAnswers()))
	}

	q, err := e.CurrentQuestion()
	if err != nil || q.ID != 1 {
		t.Errorf("expected question 1, got %d (err=%v)", q.ID, err)
	}
}

func TestSubmitAnswerScoring(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Start("Ada")

	q, _ := e.CurrentQuestion()
	if q.ID != 1 || len(q.Options) != 4 {
		t.Fatalf("unexpected first question %+v", q)
	}

	out, err := e.SubmitAnswer(2, 4000)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Correct || out.Session.Score != 10 || out.Session.CorrectAnswers != 1 {
		t.Errorf("unexpected outcome %+v", out)
	}
	if out.Question.ID != 1 || out.Record.QuestionID != 1 || out.Record.TimeSpentMs != 4000 {
		t.Errorf("outcome refers to wrong question: %+v", out)
	}

	// Wrong answer still advances
	out, err = e.SubmitAnswer(3, 2000)
	if err != nil {
		t.Fatal(err)
	}
	if out.Correct || out.Session.Score != 10 || out.Session.CurrentQuestionIndex != 2 {
		t.Errorf("unexpected outcome for wrong answer %+v", out.Session)
	}

	// Out-of-range option is simply wrong
	out, err = e.SubmitAnswer(7, 0)
	if err != nil || out.Correct {
		t.Errorf("expected wrong answer for option 7, got correct=%v err=%v", out.Correct, err)
	}

	// Hard question is worth 20
	e.Start("Bob")
	for i := 0; i < 4; i++ {
		e.SubmitAnswer(-1, 0)
	}
	out, _ = e.SubmitAnswer(correctAnswers[4], 0)
	if out.Session.Score != 20 {
		t.Errorf("expected 20 points for hard question, got %d", out.Session.Score)
	}
}

func TestFullRunCompletes(t *testing.T) {
	e, clock := newTestEngine(t)
	e.Start("Ada")

	for i, ans := range correctAnswers {
		clock.Advance(30 * time.Second)
		selected := ans
		if i%3 == 0 {
			selected = (ans + 1) % 4
		}
		out, err := e.SubmitAnswer(selected, 30000)
		if err != nil {
			t.Fatalf("answer %d: %v", i+1, err)
		}
		checkInvariants(t, e)
		if want := i == len(correctAnswers)-1; out.Session.Completed != want {
			t.Errorf("answer %d: completed=%v", i+1, out.Session.Completed)
		}
	}

	if _, err := e.CurrentQuestion(); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("expected no question after completion, got %v", err)
	}
	if _, err := e.SubmitAnswer(0, 0); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("expected ErrNoActiveQuestion after completion, got %v", err)
	}

	snap, ok := e.Snapshot()
	if !ok {
		t.Fatal("expected snapshot")
	}
	s := snap.Session
	if s.State() != models.StateCompleted || s.CurrentQuestionIndex != 10 {
		t.Errorf("unexpected final session %+v", s)
	}
	// answers 1, 4, 7, 10 are wrong: Easy, Medium, Medium, Hard
	if s.CorrectAnswers != 6 || s.Score != 150-10-15-15-20 {
		t.Errorf("expected 6 correct / score 90, got %d / %d", s.CorrectAnswers, s.Score)
	}
	if s.TotalTimeSpentMs != (5 * time.Minute).Milliseconds() {
		t.Errorf("expected 5 minutes elapsed, got %dms", s.TotalTimeSpentMs)
	}
	if s.TimeBonus() != 50 || s.FinalScore() != 140 {
		t.Errorf("expected bonus 50 / final 140, got %d / %d", s.TimeBonus(), s.FinalScore())
	}
	if s.Accuracy() != 60 {
		t.Errorf("expected accuracy 60, got %f", s.Accuracy())
	}
	if s.CompletedAt == nil || !s.CompletedAt.Equal(clock.Now()) {
		t.Errorf("unexpected completion time %v", s.CompletedAt)
	}

	if len(snap.Answers) != 10 {
		t.Fatalf("expected 10 answers, got %d", len(snap.Answers))
	}
	for i, a := range snap.Answers {
		if a.QuestionID != i+1 {
			t.Errorf("answer %d has question id %d", i, a.QuestionID)
		}
	}
}

func TestTimeBonusThresholds(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		bonus   int
	}{
		{4*time.Minute + 59*time.Second, 50},
		{8 * time.Minute, 30},
		{12*time.Minute + time.Second, 0},
	}

	for _, tt := range tests {
		e, clock := newTestEngine(t)
		e.Start("Ada")
		for i := 0; i < len(correctAnswers)-1; i++ {
			e.SubmitAnswer(0, 0)
		}
		clock.Advance(tt.elapsed)
		out, err := e.SubmitAnswer(0, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got := out.Session.TimeBonus(); got != tt.bonus {
			t.Errorf("elapsed %s: expected bonus %d, got %d", tt.elapsed, tt.bonus, got)
		}
		if out.Session.FinalScore() != out.Session.Score+tt.bonus {
			t.Errorf("final score mismatch for %s", tt.elapsed)
		}
	}
}

func TestResultsMidQuiz(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Start("Ada")
	e.SubmitAnswer(correctAnswers[0], 100)

	s, ok := e.Results()
	if !ok {
		t.Fatal("expected results mid-quiz")
	}
	if s.Completed || s.TimeBonus() != 0 || s.FinalScore() != 10 {
		t.Errorf("unexpected mid-quiz results %+v", s)
	}
}

func TestUndoLast(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Start("Ada")

	e.SubmitAnswer(correctAnswers[0], 100) // correct, Easy
	e.SubmitAnswer(3, 200)                 // wrong
	e.SubmitAnswer(correctAnswers[2], 300) // correct, Medium

	before, _ := e.Results()
	if before.Score != 25 || before.CorrectAnswers != 2 || before.CurrentQuestionIndex != 3 {
		t.Fatalf("unexpected state before undo %+v", before)
	}

	prev, ok := e.PeekPrevious()
	if !ok || prev.QuestionID != 3 {
		t.Fatalf("expected previous answer for question 3, got %+v", prev)
	}

	rec, ok, err := e.UndoLast()
	if err != nil || !ok {
		t.Fatalf("undo failed: ok=%v err=%v", ok, err)
	}
	if rec.QuestionID != 3 || !rec.IsCorrect || rec.TimeSpentMs != 300 {
		t.Errorf("undo returned wrong record %+v", rec)
	}

	after, _ := e.Results()
	if after.Score != 10 || after.CorrectAnswers != 1 || after.CurrentQuestionIndex != 2 {
		t.Errorf("undo did not reverse the answer: %+v", after)
	}
	checkInvariants(t, e)

	rec, _, _ = e.UndoLast()
	if rec.QuestionID != 2 || rec.IsCorrect {
		t.Errorf("expected wrong answer to question 2, got %+v", rec)
	}
	after, _ = e.Results()
	if after.Score != 10 || after.CorrectAnswers != 1 || after.CurrentQuestionIndex != 1 {
		t.Errorf("undoing a wrong answer changed the score: %+v", after)
	}

	q, _ := e.CurrentQuestion()
	if q.ID != 2 {
		t.Errorf("expected to be back at question 2, got %d", q.ID)
	}

	e.UndoLast()
	_, ok, err = e.UndoLast()
	if ok || err != nil {
		t.Errorf("expected no-op undo on empty history, got ok=%v err=%v", ok, err)
	}
	final, _ := e.Results()
	if final.Score != 0 || final.CurrentQuestionIndex != 0 {
		t.Errorf("empty undo changed session: %+v", final)
	}
}

func completeRun(t *testing.T, e *Engine) {
	t.Helper()
	e.Start("Ada")
	for _, ans := range correctAnswers {
		if _, err := e.SubmitAnswer(ans, 0); err != nil {
			t.Fatal(err)
		}
	}
}

func TestUndoReopensCompletedSession(t *testing.T) {
	e, _ := newTestEngine(t, WithUndoPolicy(UndoReopen))
	completeRun(t, e)

	rec, ok, err := e.UndoLast()
	if err != nil || !ok || rec.QuestionID != 10 {
		t.Fatalf("undo failed: rec=%+v ok=%v err=%v", rec, ok, err)
	}

	s, _ := e.Results()
	if s.Completed || s.CompletedAt != nil || s.TotalTimeSpentMs != 0 {
		t.Errorf("session still marked completed: %+v", s)
	}
	if s.Score != 130 || s.CurrentQuestionIndex != 9 {
		t.Errorf("unexpected session after undo %+v", s)
	}
	checkInvariants(t, e)

	q, err := e.CurrentQuestion()
	if err != nil || q.ID != 10 {
		t.Errorf("expected question 10 to be answerable again, got %d (err=%v)", q.ID, err)
	}

	out, err := e.SubmitAnswer(correctAnswers[9], 0)
	if err != nil || !out.Session.Completed || out.Session.Score != 150 {
		t.Errorf("re-completion failed: %+v err=%v", out.Session, err)
	}
}

func TestUndoLockedAfterCompletion(t *testing.T) {
	e, _ := newTestEngine(t, WithUndoPolicy(UndoLocked))

	e.Start("Ada")
	e.SubmitAnswer(correctAnswers[0], 0)
	if _, ok, err := e.UndoLast(); !ok || err != nil {
		t.Fatalf("undo mid-quiz should work under locked policy: ok=%v err=%v", ok, err)
	}

	completeRun(t, e)
	before, _ := e.Results()

	_, ok, err := e.UndoLast()
	if !errors.Is(err, ErrUndoLocked) || ok {
		t.Errorf("expected ErrUndoLocked, got ok=%v err=%v", ok, err)
	}

	after, _ := e.Results()
	if after.Score != before.Score || after.CurrentQuestionIndex != before.CurrentQuestionIndex || !after.Completed {
		t.Errorf("locked undo changed the session: %+v", after)
	}
	if len(e.AllAnswers()) != 10 {
		t.Errorf("locked undo popped history: %d answers", len(e.AllAnswers()))
	}
}

func TestAllAnswersKeepsHistory(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Start("Ada")
	for i := 0; i < 4; i++ {
		e.SubmitAnswer(i, int64(i*100))
	}

	answers := e.AllAnswers()
	for i, a := range answers {
		if a.QuestionID != i+1 || a.SelectedAnswer != i {
			t.Errorf("answer %d out of order: %+v", i, a)
		}
	}

	prev, _ := e.PeekPrevious()
	if prev.QuestionID != 4 {
		t.Errorf("export changed pop order, top is question %d", prev.QuestionID)
	}
	if len(e.AllAnswers()) != 4 {
		t.Error("export consumed history")
	}
}

func TestReset(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Start("Ada")
	e.SubmitAnswer(2, 0)

	e.Reset()

	if e.State() != models.StateNotStarted {
		t.Errorf("expected not_started after reset, got %s", e.State())
	}
	if _, err := e.CurrentQuestion(); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("expected ErrNoActiveQuestion after reset, got %v", err)
	}
	if _, ok := e.Results(); ok {
		t.Error("expected no results after reset")
	}
	if _, ok := e.PeekPrevious(); ok {
		t.Error("expected history cleared after reset")
	}
}

func TestParseUndoPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    UndoPolicy
		wantErr bool
	}{
		{"", UndoReopen, false},
		{"reopen", UndoReopen, false},
		{" LOCKED ", UndoLocked, false},
		{"sometimes", "", true},
	}

	for _, tt := range tests {
		got, err := ParseUndoPolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseUndoPolicy(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestUndoUnknownQuestionLeavesSessionIntact(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Start("Ada")

	for _, c := range correctAnswers[:3] {
		if _, err := e.SubmitAnswer(c, 100); err != nil {
			t.Fatalf("SubmitAnswer failed: %v", err)
		}
	}

	// a bank too small to resolve the last answered question
	small, err := bank.New([]models.Question{{
		Text:          "Only question",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: 0,
	}})
	if err != nil {
		t.Fatalf("bank.New failed: %v", err)
	}
	e.bank = small

	before, _ := e.Results()
	if _, ok, err := e.UndoLast(); err == nil || ok {
		t.Fatalf("expected lookup error, got ok=%v err=%v", ok, err)
	}

	after, _ := e.Results()
	if after.CurrentQuestionIndex != before.CurrentQuestionIndex || after.Score != before.Score || after.CorrectAnswers != before.CorrectAnswers {
		t.Errorf("session changed by failed undo: before %+v after %+v", before, after)
	}
	if got := len(e.AllAnswers()); got != 3 {
		t.Errorf("expected history of 3, got %d", got)
	}
}
