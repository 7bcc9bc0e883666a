package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notifier resolves recipients for an event and dispatches to them.
type Notifier struct {
	resolver   *Resolver
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func NewNotifier(resolver *Resolver, dispatcher *Dispatcher, logger *zap.Logger) *Notifier {
	return &Notifier{
		resolver:   resolver,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (n *Notifier) Notify(ctx context.Context, ev Event) Report {
	recipients := n.resolver.Resolve(ctx, ev)
	report := n.dispatcher.Dispatch(ctx, ev, recipients)

	n.logger.Info("task event dispatched",
		zap.String("event", string(ev.Kind)),
		zap.String("task_id", ev.Task.ID),
		zap.Int("recipients", len(recipients)),
		zap.Int("failures", len(report.Failures())),
	)
	return report
}
