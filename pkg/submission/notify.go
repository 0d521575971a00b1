package submission

import (
	"context"

	"go.uber.org/zap"
)

// NoticeKind classifies a notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// MessageSuccess is sent after a record was stored.
const MessageSuccess = "Success!"

// Notifier receives the transient feedback produced by a submission.
type Notifier interface {
	Notify(ctx context.Context, kind NoticeKind, message string)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, kind NoticeKind, message string)

// Notify implements Notifier.
func (fn NotifierFunc) Notify(ctx context.Context, kind NoticeKind, message string) {
	fn(ctx, kind, message)
}

// Notice is a notification captured for rendering.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	Logger *zap.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, kind NoticeKind, message string) {
	logger := n.Logger
	if logger == nil {
		return
	}
	if kind == NoticeError {
		logger.Warn("hero submission failed", zap.String("message", message))
		return
	}
	logger.Info("hero submission notice", zap.String("kind", string(kind)), zap.String("message", message))
}

type multiNotifier []Notifier

func (m multiNotifier) Notify(ctx context.Context, kind NoticeKind, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, kind, message)
		}
	}
}

// MultiNotifier fans a notification out to every notifier in order.
func MultiNotifier(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}
