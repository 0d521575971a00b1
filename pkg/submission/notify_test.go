package submission_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-heroform/pkg/submission"
)

func TestMultiNotifier_FansOutInOrder(t *testing.T) {
	var got []string
	record := func(prefix string) submission.Notifier {
		return submission.NotifierFunc(func(_ context.Context, kind submission.NoticeKind, message string) {
			got = append(got, prefix+":"+string(kind)+":"+message)
		})
	}

	n := submission.MultiNotifier(record("a"), nil, record("b"))
	n.Notify(context.Background(), submission.NoticeSuccess, submission.MessageSuccess)

	want := []string{"a:success:Success!", "b:success:Success!"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestLogNotifier_LevelsByKind(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := submission.LogNotifier{Logger: zap.New(core)}

	n.Notify(context.Background(), submission.NoticeSuccess, "Success!")
	n.Notify(context.Background(), submission.NoticeError, "Network error")

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected levels %v %v", entries[0].Level, entries[1].Level)
	}
	if msg := entries[1].ContextMap()["message"]; msg != "Network error" {
		t.Fatalf("expected message field, got %v", msg)
	}

	submission.LogNotifier{}.Notify(context.Background(), submission.NoticeError, "ignored")
}
