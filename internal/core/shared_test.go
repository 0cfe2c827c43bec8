package core

import (
	"context"
	"testing"
	"time"

	"github.com/huzzai/rizz-coach/internal/logger"
	"github.com/huzzai/rizz-coach/internal/model"
)

// joinWait gives a second caller time to attach to the call that is already running.
const joinWait = 50 * time.Millisecond

func TestTextReplyJoinedCallerOutlivesCancelledLeader(t *testing.T) {
	fc := &fakeCompleter{reply: "smooth", started: make(chan struct{}, 2), block: make(chan struct{})}
	svc := NewTextService(fc, &fakeExtractor{}, logger.Nop())
	in := TextInput{Conversation: "you up?", Tone: model.ToneCasual}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leader := make(chan TextReply, 1)
	go func() {
		got, _ := svc.Reply(leaderCtx, in)
		leader <- got
	}()
	<-fc.started

	follower := make(chan TextReply, 1)
	go func() {
		got, _ := svc.Reply(context.Background(), in)
		follower <- got
	}()
	time.Sleep(joinWait)

	cancel()
	if got := <-leader; !got.Failed {
		t.Errorf("cancelled caller should give up, got %+v", got)
	}
	close(fc.block)

	got := <-follower
	if got.Failed || got.Text != "smooth" {
		t.Errorf("joined caller should get the reply, got %+v", got)
	}
}

func TestCritiqueJoinedCallerOutlivesCancelledLeader(t *testing.T) {
	fc := &fakeCompleter{
		reply:   `{"vibe":"W","score":8,"feedback":"Good light.","caption_suggestions":[],"would_swipe":"Yes","improvements":[]}`,
		started: make(chan struct{}, 2),
		block:   make(chan struct{}),
	}
	svc := NewCritiqueService(fc, logger.Nop())
	image := model.Attachment{MIMEType: "image/jpeg", Data: []byte("jpeg")}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leader := make(chan CritiqueResult, 1)
	go func() {
		got, _ := svc.Analyze(leaderCtx, image)
		leader <- got
	}()
	<-fc.started

	follower := make(chan CritiqueResult, 1)
	go func() {
		got, _ := svc.Analyze(context.Background(), image)
		follower <- got
	}()
	time.Sleep(joinWait)

	cancel()
	if got := <-leader; !got.Failed {
		t.Errorf("cancelled caller should give up, got %+v", got)
	}
	close(fc.block)

	got := <-follower
	if got.Failed || got.Score != 8 || got.Vibe != model.VibeW {
		t.Errorf("joined caller should get the critique, got %+v", got)
	}
}
