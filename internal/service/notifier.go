// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-note-sync/internal/logger"
)

type logNotifier struct {
	prefix string
	logger *logger.Logger
}

// NewLogNotifier returns a [Notifier] that writes every message, prefixed
// with prefix, as an info entry of logger.
func NewLogNotifier(prefix string, logger *logger.Logger) Notifier {
	return &logNotifier{prefix: prefix, logger: logger}
}

func (n *logNotifier) Notify(_ context.Context, message string) {
	n.logger.Info().Str("notice", n.prefix+message).Msg("user notice")
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

// MultiNotifier delivers every message to all of its notifiers in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, message string) {
	for _, n := range m {
		n.Notify(ctx, message)
	}
}
