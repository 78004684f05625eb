package reply

import (
	"context"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"insurance_desk/pkg/contextx"
	"insurance_desk/pkg/errcodes"
	"insurance_desk/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// ErrorResponse is the body of every non-2xx API answer.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func (e *ErrorResponse) withDefaultCode(code failure.ErrorCode) {
	if e.Code == "" {
		e.Code = code.String()
	}
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

// Error maps failure kinds onto HTTP statuses. Anything that is not a typed
// failure is reported as 500.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	response := ErrorResponse{
		Code:      failure.Code(err).String(),
		Message:   failure.Description(err),
		SupportID: supportID(ctx),
	}

	switch {
	case failure.IsInvalidArgumentError(err):
		logger(ctx).Warn("invalid request", logx.Error(err))
		response.withDefaultCode(errcodes.ValidationError)
		JSON(ctx, w, http.StatusBadRequest, response)
	case failure.IsNotFoundError(err):
		logger(ctx).Warn("not found", logx.Error(err))
		response.withDefaultCode(errcodes.NotFound)
		JSON(ctx, w, http.StatusNotFound, response)
	case failure.IsForbiddenError(err):
		logger(ctx).Warn("forbidden", logx.Error(err))
		response.withDefaultCode(errcodes.Forbidden)
		JSON(ctx, w, http.StatusForbidden, response)
	case failure.IsUnprocessableEntityError(err):
		logger(ctx).Warn("unprocessable entity", logx.Error(err))
		JSON(ctx, w, http.StatusUnprocessableEntity, response)
	default:
		logger(ctx).Error("error", logx.Error(err))
		response.withDefaultCode(errcodes.InternalServerError)
		JSON(ctx, w, http.StatusInternalServerError, response)
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
