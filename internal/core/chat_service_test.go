package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/huzzai/rizz-coach/internal/logger"
	"github.com/huzzai/rizz-coach/internal/model"
)

func TestChatCreateStartsWithGreeting(t *testing.T) {
	svc := NewChatService(&fakeCompleter{}, logger.Nop())
	chat := svc.CreateChat(context.Background(), model.DifficultyHard)

	if chat.ID == "" || chat.Difficulty != model.DifficultyHard {
		t.Fatalf("unexpected chat %+v", chat)
	}
	if len(chat.Messages) != 1 || chat.Messages[0].Sender != model.SenderMatch || chat.Messages[0].Text != ChatGreeting {
		t.Errorf("expected greeting, got %+v", chat.Messages)
	}
}

func TestChatSend(t *testing.T) {
	fc := &fakeCompleter{reply: "haha, pretty good! you?"}
	svc := NewChatService(fc, logger.Nop())
	chat := svc.CreateChat(context.Background(), model.DifficultyEasy)

	res, err := svc.Send(context.Background(), chat.ID, "hey, how was your weekend?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.Reply == nil || res.Reply.Sender != model.SenderMatch || res.Reply.Text != "haha, pretty good! you?" {
		t.Fatalf("unexpected reply %+v", res.Reply)
	}
	if n := len(res.Chat.Messages); n != 3 {
		t.Fatalf("expected 3 messages, got %d", n)
	}
	for i := 1; i < len(res.Chat.Messages); i++ {
		if res.Chat.Messages[i].ID <= res.Chat.Messages[i-1].ID {
			t.Errorf("message ids not increasing: %q then %q", res.Chat.Messages[i-1].ID, res.Chat.Messages[i].ID)
		}
	}

	p := fc.requests()[0].Prompt
	if !strings.Contains(p, "hey, how was your weekend?") || !strings.Contains(p, ChatGreeting) {
		t.Errorf("prompt should include the full conversation: %q", p)
	}
}

func TestChatSendFailureAddsSystemMessage(t *testing.T) {
	svc := NewChatService(&fakeCompleter{err: errors.New("network down")}, logger.Nop())
	chat := svc.CreateChat(context.Background(), model.DifficultyMedium)

	res, err := svc.Send(context.Background(), chat.ID, "hello?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.Reply == nil || res.Reply.Sender != model.SenderSystem || res.Reply.Text != ChatApology {
		t.Errorf("expected system apology, got %+v", res.Reply)
	}
}

func TestChatSendErrors(t *testing.T) {
	svc := NewChatService(&fakeCompleter{reply: "hi"}, logger.Nop())
	chat := svc.CreateChat(context.Background(), model.DifficultyMedium)

	if _, err := svc.Send(context.Background(), chat.ID, "   "); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := svc.Send(context.Background(), "nope", "hi"); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("expected ErrChatNotFound, got %v", err)
	}
}

func TestChatBusyAndResetDiscardsReply(t *testing.T) {
	fc := &fakeCompleter{reply: "late reply", started: make(chan struct{}, 1), block: make(chan struct{})}
	svc := NewChatService(fc, logger.Nop())
	chat := svc.CreateChat(context.Background(), model.DifficultyMedium)

	type outcome struct {
		res SendResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := svc.Send(context.Background(), chat.ID, "first")
		done <- outcome{res, err}
	}()
	<-fc.started

	if _, err := svc.Send(context.Background(), chat.ID, "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}

	reset, err := svc.Reset(context.Background(), chat.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(reset.Messages) != 1 || reset.Messages[0].Text != ChatGreeting {
		t.Errorf("reset should leave only the greeting, got %+v", reset.Messages)
	}

	close(fc.block)
	out := <-done
	if out.err != nil {
		t.Fatalf("send: %v", out.err)
	}
	if out.res.Reply != nil {
		t.Errorf("reply after reset should be discarded, got %+v", out.res.Reply)
	}

	got, _ := svc.GetChat(chat.ID)
	if len(got.Messages) != 1 {
		t.Errorf("expected only the greeting after reset, got %d messages", len(got.Messages))
	}
}

func TestChatDelete(t *testing.T) {
	svc := NewChatService(&fakeCompleter{}, logger.Nop())
	chat := svc.CreateChat(context.Background(), model.DifficultyMedium)

	if err := svc.Delete(context.Background(), chat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetChat(chat.ID); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("expected ErrChatNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), chat.ID); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("expected ErrChatNotFound on second delete, got %v", err)
	}
}

func TestChatSnapshotIsCopied(t *testing.T) {
	svc := NewChatService(&fakeCompleter{}, logger.Nop())
	chat := svc.CreateChat(context.Background(), model.DifficultyMedium)
	chat.Messages[0].Text = "mutated"

	got, _ := svc.GetChat(chat.ID)
	if got.Messages[0].Text != ChatGreeting {
		t.Error("GetChat should not expose internal state")
	}
}
