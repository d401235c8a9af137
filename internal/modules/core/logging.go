package core

import (
	"context"

	"github.com/eskrenkovic/mediator-go"

	"go.uber.org/zap"
)

var packageLogger = zap.NewNop()

// SetLogger sets the logger used by the package level helpers.
func SetLogger(logger *zap.Logger) {
	if logger != nil {
		packageLogger = logger
	}
}

func LogError(ctx context.Context, msg string, fields ...zap.Field) {
	packageLogger.Error(msg, append(contextFields(ctx), fields...)...)
}

func contextFields(ctx context.Context) []zap.Field {
	var logFields []zap.Field

	if correlationID := CorrelationID(ctx); correlationID != "" {
		logFields = append(logFields, zap.String("correlation_id", correlationID))
	}

	if session := Session(ctx); session.Authenticated() {
		logFields = append(logFields, zap.Stringer("user_id", session.UserID))
	}

	return logFields
}

var _ mediator.PipelineBehavior = (*RequestLoggingBehavior)(nil)

type RequestLoggingBehavior struct {
	Logger *zap.Logger
}

func (b *RequestLoggingBehavior) Handle(
	ctx context.Context,
	request interface{},
	next mediator.RequestHandlerFunc,
) (interface{}, error) {
	logFields := contextFields(ctx)

	if request != nil {
		// Request bodies may carry passwords and tokens; only the type is logged.
		logFields = append(logFields, zap.String("request_type", requestTypeName(request)))
	}

	b.Logger.Info("processing request", logFields...)

	return next(ctx, request)
}

var _ mediator.PipelineBehavior = (*HandlerErrorLoggingBehavior)(nil)

type HandlerErrorLoggingBehavior struct {
	Logger *zap.Logger
}

func (b *HandlerErrorLoggingBehavior) Handle(
	ctx context.Context,
	request interface{},
	next mediator.RequestHandlerFunc,
) (interface{}, error) {
	response, err := next(ctx, request)
	if err != nil {
		logFields := append(contextFields(ctx), zap.String("request_type", requestTypeName(request)), zap.Error(err))

		if StatusCode(err) >= 500 {
			b.Logger.Error("handler returned error", logFields...)
		} else {
			b.Logger.Info("handler rejected request", logFields...)
		}
	}

	return response, err
}
